// Package math3d provides the small set of vector and matrix types the
// software rasterizer is built on.
package math3d

import "math"

// Vec3 is a point or direction in model, world or screen space.
// Screen-space values keep depth in Z.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// One3 returns (1, 1, 1).
func One3() Vec3 {
	return Vec3{1, 1, 1}
}

// zip applies f to each pair of matching components.
func zip(a, b Vec3, f func(x, y float64) float64) Vec3 {
	return Vec3{f(a.X, b.X), f(a.Y, b.Y), f(a.Z, b.Z)}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return a.Add(b.Negate())
}

// Scale multiplies every component by s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{s * a.X, s * a.Y, s * a.Z}
}

func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a × b. With X right and Y up the result follows the
// right-hand rule.
func (a Vec3) Cross(b Vec3) Vec3 {
	x := a.Y*b.Z - a.Z*b.Y
	y := a.Z*b.X - a.X*b.Z
	z := a.X*b.Y - a.Y*b.X
	return Vec3{x, y, z}
}

// Len is the Euclidean length.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize scales a to unit length. The zero vector is returned unchanged
// so callers never see NaN components.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Lerp moves from a toward b; t=0 gives a and t=1 gives b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Min keeps the smaller value of each component.
func (a Vec3) Min(b Vec3) Vec3 {
	return zip(a, b, math.Min)
}

// Max keeps the larger value of each component.
func (a Vec3) Max(b Vec3) Vec3 {
	return zip(a, b, math.Max)
}
