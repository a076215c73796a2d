package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func approxVec3(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	if !approxVec3(got, V3(0, 0, 1)) {
		t.Errorf("x cross y = %+v, want (0,0,1)", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero.Normalize() = %+v, want zero", got)
	}
	if got := V3(3, 0, 4).Normalize(); !approx(got.Len(), 1) {
		t.Errorf("Normalize length = %f, want 1", got.Len())
	}
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	v := V4(1, 2, 3, 0).PerspectiveDivide()
	if v != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide with w=0 = %+v, want (1,2,3)", v)
	}
}

func TestProjection(t *testing.T) {
	p := Projection(3)
	if got := p.Get(3, 2); !approx(got, -1.0/3) {
		t.Errorf("Projection(3)[3][2] = %f, want -1/3", got)
	}
	// z = 1.5 -> w = 1 - 1.5/3 = 0.5, so x doubles
	v := p.MulVec4(Point(V3(1, 0, 1.5)))
	if !approx(v.W, 0.5) {
		t.Errorf("w = %f, want 0.5", v.W)
	}
	if got := p.MulVec3(V3(1, 0, 1.5)); !approx(got.X, 2) {
		t.Errorf("projected x = %f, want 2", got.X)
	}

	if Projection(0) != Identity() {
		t.Error("Projection(0) should be identity")
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport(100, 75, 600, 450, 255)

	tests := []struct {
		in   Vec3
		want Vec3
	}{
		{V3(0, 0, 0), V3(400, 300, 127.5)},
		{V3(-1, -1, -1), V3(100, 75, 0)},
		{V3(1, 1, 1), V3(700, 525, 255)},
	}
	for _, tt := range tests {
		if got := vp.MulVec3(tt.in); !approxVec3(got, tt.want) {
			t.Errorf("Viewport(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateZ(0.3))
	if got := m.Mul(Identity()); got != m {
		t.Error("m * I != m")
	}
	if got := Identity().Mul(m); got != m {
		t.Error("I * m != m")
	}
}

func TestMulVec3Dir(t *testing.T) {
	m := Translate(V3(10, 10, 10))
	if got := m.MulVec3Dir(V3(1, 0, 0)); got != V3(1, 0, 0) {
		t.Errorf("direction picked up translation: %+v", got)
	}
	if got := m.MulVec3(V3(1, 0, 0)); got != V3(11, 10, 10) {
		t.Errorf("point transform = %+v, want (11,10,10)", got)
	}
}

func TestRotateY(t *testing.T) {
	got := RotateY(math.Pi / 2).MulVec3Dir(V3(1, 0, 0))
	if !approxVec3(got, V3(0, 0, -1)) {
		t.Errorf("RotateY(90°)·x = %+v, want (0,0,-1)", got)
	}
}

func TestBarycentric(t *testing.T) {
	a, b, c := V3(0, 0, 0), V3(10, 0, 0), V3(0, 10, 0)

	tests := []struct {
		name   string
		p      Vec3
		want   Vec3
		inside bool
	}{
		{"vertex a", V3(0, 0, 0), V3(1, 0, 0), true},
		{"vertex b", V3(10, 0, 0), V3(0, 1, 0), true},
		{"vertex c", V3(0, 10, 0), V3(0, 0, 1), true},
		{"interior", V3(2, 3, 0), V3(0.5, 0.2, 0.3), true},
		{"outside", V3(10, 10, 0), V3(-1, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Barycentric(a, b, c, tt.p)
			if !approxVec3(got, tt.want) {
				t.Errorf("Barycentric = %+v, want %+v", got, tt.want)
			}
			if got.Inside() != tt.inside {
				t.Errorf("Inside = %v, want %v", got.Inside(), tt.inside)
			}
			if !approx(got.X+got.Y+got.Z, 1) {
				t.Errorf("weights sum to %f, want 1", got.X+got.Y+got.Z)
			}
		})
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	// Collinear vertices have zero area.
	got := Barycentric(V3(0, 0, 0), V3(5, 5, 0), V3(10, 10, 0), V3(5, 5, 0))
	if got != V3(-1, 1, 1) {
		t.Errorf("degenerate = %+v, want (-1,1,1)", got)
	}
	if got.Inside() {
		t.Error("degenerate weights must be rejected")
	}
}

func TestRotateArbitraryAxis(t *testing.T) {
	// A third of a turn about (1,1,1) cycles the basis vectors.
	r := Rotate(V3(1, 1, 1), 2*math.Pi/3)
	if got := r.MulVec3Dir(V3(1, 0, 0)); !approxVec3(got, V3(0, 1, 0)) {
		t.Errorf("x -> %+v, want (0,1,0)", got)
	}
	if got := r.MulVec3Dir(V3(0, 0, 1)); !approxVec3(got, V3(1, 0, 0)) {
		t.Errorf("z -> %+v, want (1,0,0)", got)
	}
	if Rotate(Vec3{}, 1) != Identity() {
		t.Error("zero axis should give identity")
	}
}

func TestRotateMatchesAxisBuilders(t *testing.T) {
	for _, angle := range []float64{0, 0.3, -1.2, math.Pi} {
		v := V3(0.2, -0.7, 1.5)
		if got, want := RotateX(angle).MulVec3Dir(v), Rotate(V3(2, 0, 0), angle).MulVec3Dir(v); !approxVec3(got, want) {
			t.Errorf("RotateX(%v) = %+v, want %+v", angle, got, want)
		}
		// Rotation preserves length.
		if got := RotateZ(angle).MulVec3Dir(v).Len(); !approx(got, v.Len()) {
			t.Errorf("RotateZ(%v) changed length to %f", angle, got)
		}
	}
}

func TestVec3MinMaxLerp(t *testing.T) {
	a, b := V3(1, 5, -2), V3(3, -1, 0)
	if got := a.Min(b); got != V3(1, -1, -2) {
		t.Errorf("Min = %+v", got)
	}
	if got := a.Max(b); got != V3(3, 5, 0) {
		t.Errorf("Max = %+v", got)
	}
	if got := a.Lerp(b, 0.5); !approxVec3(got, V3(2, 2, -1)) {
		t.Errorf("Lerp = %+v", got)
	}
}
