package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
)

func triangleMesh() *Mesh {
	m := NewMesh("tri")
	m.Vertices = []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	m.UVs = []math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}
	m.Normals = []math3d.Vec3{{X: 0, Y: 0, Z: 1}}
	m.Faces = []Face{{
		{Vertex: 0, Texture: 0, Normal: 0},
		{Vertex: 1, Texture: 1, Normal: 0},
		{Vertex: 2, Texture: 2, Normal: 0},
	}}
	m.CalculateBounds()
	return m
}

func TestFaceIndexAt(t *testing.T) {
	fi := FaceIndex{Vertex: 4, Texture: 5, Normal: 6}
	for i, want := range []int{4, 5, 6, 6} {
		if got := fi.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	m := triangleMesh()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Mesh)
	}{
		{"vertex", func(m *Mesh) { m.Faces[0][1].Vertex = 3 }},
		{"uv", func(m *Mesh) { m.Faces[0][2].Texture = -1 }},
		{"normal", func(m *Mesh) { m.Faces[0][0].Normal = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangleMesh()
			tt.mutate(m)
			if err := m.Validate(); !errors.Is(err, ErrIndexRange) {
				t.Errorf("Validate() = %v, want ErrIndexRange", err)
			}
		})
	}
}

func TestUVScalesByDiffuse(t *testing.T) {
	m := triangleMesh()
	m.Diffuse = pixel.New(64, 32)

	got := m.UV(m.Faces[0], 2)
	if got != math3d.V2(32, 32) {
		t.Errorf("UV = %+v, want (32,32)", got)
	}

	m.Diffuse.SetPixel(32, 31, pixel.Red)
	if got := m.DiffuseAt(math3d.V2(32.9, 31.2)); got != pixel.Red {
		t.Errorf("DiffuseAt = %v, want red", got)
	}
}

func TestUntexturedDiffuseIsWhite(t *testing.T) {
	m := triangleMesh()
	if got := m.DiffuseAt(math3d.V2(3, 3)); got != pixel.White {
		t.Errorf("DiffuseAt on untextured mesh = %v, want white", got)
	}
	if got := m.UV(m.Faces[0], 1); got != math3d.V2(1, 0) {
		t.Errorf("UV on untextured mesh = %+v, want raw (1,0)", got)
	}
}

func TestBounds(t *testing.T) {
	m := triangleMesh()
	if m.BoundsMin != math3d.V3(0, 0, 0) || m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds = %+v..%+v", m.BoundsMin, m.BoundsMax)
	}
	if m.Center() != math3d.V3(0.5, 0.5, 0) {
		t.Errorf("Center = %+v", m.Center())
	}
	if m.Size() != math3d.V3(1, 1, 0) {
		t.Errorf("Size = %+v", m.Size())
	}
}

func TestNormalizedFitsUnitCube(t *testing.T) {
	m := triangleMesh()
	n := m.Transform(m.Normalized())
	if n.BoundsMin != math3d.V3(-1, -1, 0) || n.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("normalized bounds = %+v..%+v", n.BoundsMin, n.BoundsMax)
	}
}

func TestTransformCopies(t *testing.T) {
	m := triangleMesh()
	m.Diffuse = pixel.New(1, 1)

	moved := m.Transform(math3d.Translate(math3d.V3(0, 0, 5)))
	if moved.Vertices[0] != math3d.V3(0, 0, 5) {
		t.Errorf("transformed vertex = %+v", moved.Vertices[0])
	}
	if m.Vertices[0] != math3d.V3(0, 0, 0) {
		t.Error("Transform mutated the source mesh")
	}
	if moved.Normals[0] != math3d.V3(0, 0, 1) {
		t.Errorf("translation should not move normals: %+v", moved.Normals[0])
	}
	if moved.Diffuse != m.Diffuse {
		t.Error("Transform should share the diffuse texture")
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := triangleMesh()
	m.Diffuse = pixel.New(1, 1)
	c := m.Clone()

	c.Vertices[0] = math3d.V3(9, 9, 9)
	c.Faces[0][0].Vertex = 2
	c.Diffuse.SetPixel(0, 0, pixel.Red)

	if m.Vertices[0] == c.Vertices[0] || m.Faces[0][0].Vertex == 2 || m.Diffuse.GetPixel(0, 0) == pixel.Red {
		t.Error("Clone shares state with the source mesh")
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	m := triangleMesh()
	m.Normals = nil
	m.CalculateSmoothNormals()

	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("got %d normals, want %d", len(m.Normals), len(m.Vertices))
	}
	for i, n := range m.Normals {
		if math.Abs(n.Z-1) > 1e-9 {
			t.Errorf("normal %d = %+v, want +Z", i, n)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after CalculateSmoothNormals: %v", err)
	}
}
