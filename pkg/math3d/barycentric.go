package math3d

import "math"

// Barycentric returns the weights of p with respect to the screen-space
// triangle (a, b, c), using only the X and Y components.
//
// The weights come from the cross product of the edge-difference vectors
// (c-a, b-a, a-p) taken per axis. When the triangle's doubled area is below
// one pixel it is treated as degenerate and (-1, 1, 1) is returned, which
// callers reject as "outside".
func Barycentric(a, b, c, p Vec3) Vec3 {
	u := V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if math.Abs(float64(int(u.Z))) < 1 {
		return V3(-1, 1, 1)
	}
	return V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

// Inside reports whether all barycentric weights are non-negative.
func (a Vec3) Inside() bool {
	return a.X >= 0 && a.Y >= 0 && a.Z >= 0
}
