package math3d

import "math"

// Mat4 is a 4x4 matrix applied to column vectors, stored column by column:
// element (row, col) lives at index row + col*4.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m.Set(i, i, 1)
	}
	return m
}

// Translate returns a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.Set(0, 3, v.X)
	m.Set(1, 3, v.Y)
	m.Set(2, 3, v.Z)
	return m
}

// Scale returns a matrix that scales each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m.Set(0, 0, v.X)
	m.Set(1, 1, v.Y)
	m.Set(2, 2, v.Z)
	return m
}

// Rotate returns a right-handed rotation of angle radians about axis.
// The axis does not need to be unit length; a zero axis gives the identity.
func Rotate(axis Vec3, angle float64) Mat4 {
	k := axis.Normalize()
	if k == (Vec3{}) {
		return Identity()
	}
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	m := Identity()
	m.Set(0, 0, c+k.X*k.X*t)
	m.Set(0, 1, k.X*k.Y*t-k.Z*s)
	m.Set(0, 2, k.X*k.Z*t+k.Y*s)
	m.Set(1, 0, k.Y*k.X*t+k.Z*s)
	m.Set(1, 1, c+k.Y*k.Y*t)
	m.Set(1, 2, k.Y*k.Z*t-k.X*s)
	m.Set(2, 0, k.Z*k.X*t-k.Y*s)
	m.Set(2, 1, k.Z*k.Y*t+k.X*s)
	m.Set(2, 2, c+k.Z*k.Z*t)
	return m
}

// RotateX rotates about the X axis.
func RotateX(angle float64) Mat4 { return Rotate(Vec3{X: 1}, angle) }

// RotateY rotates about the Y axis.
func RotateY(angle float64) Mat4 { return Rotate(Vec3{Y: 1}, angle) }

// RotateZ rotates about the Z axis.
func RotateZ(angle float64) Mat4 { return Rotate(Vec3{Z: 1}, angle) }

// Projection returns the single-parameter perspective matrix used by the
// rasterizer: identity with row 3, column 2 set to -1/cameraZ, so that a
// transformed point ends up with w = 1 - z/cameraZ.
// A zero cameraZ yields the identity (no perspective).
func Projection(cameraZ float64) Mat4 {
	m := Identity()
	if cameraZ != 0 {
		m.Set(3, 2, -1/cameraZ)
	}
	return m
}

// Viewport maps the [-1,1] cube onto the screen rectangle starting at (x, y)
// with size w×h, and depth onto [0, depth].
func Viewport(x, y, w, h, depth float64) Mat4 {
	m := Identity()
	m.Set(0, 3, x+w/2)
	m.Set(1, 3, y+h/2)
	m.Set(2, 3, depth/2)
	m.Set(0, 0, w/2)
	m.Set(1, 1, h/2)
	m.Set(2, 2, depth/2)
	return m
}

// Mul returns the product a·b, which applies b first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a.Get(row, k) * b.Get(k, col)
			}
			m.Set(row, col, sum)
		}
	}
	return m
}

// MulVec4 returns m·v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	in := [4]float64{v.X, v.Y, v.Z, v.W}
	var out [4]float64
	for row := range 4 {
		for col, x := range in {
			out[row] += m.Get(row, col) * x
		}
	}
	return Vec4{out[0], out[1], out[2], out[3]}
}

// MulVec3 transforms v as a point (w=1) and divides by the resulting w.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction: w=0, so translation and the
// projective row are ignored.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	r := m.MulVec4(Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{r.X, r.Y, r.Z}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
