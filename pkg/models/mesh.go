// Package models provides the triangle mesh the 3D rasterizer consumes and
// loaders for Wavefront OBJ and binary glTF files.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
)

// ErrIndexRange is returned by Validate when a face references a vertex, UV
// or normal that does not exist.
var ErrIndexRange = errors.New("face index out of range")

// FaceIndex is one corner of a face: zero-based indices into the mesh's
// vertices, UVs and normals.
type FaceIndex struct {
	Vertex  int
	Texture int
	Normal  int
}

// At returns the index component i: 0 vertex, 1 texture, anything else
// normal.
func (fi FaceIndex) At(i int) int {
	switch i {
	case 0:
		return fi.Vertex
	case 1:
		return fi.Texture
	default:
		return fi.Normal
	}
}

// Face is a triangle.
type Face [3]FaceIndex

// Mesh is a triangle mesh with one diffuse texture. It is built once by a
// loader and treated as immutable afterwards.
//
// Face indices are not checked on load; call Validate before rendering data
// from an untrusted source.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	UVs      []math3d.Vec2
	Normals  []math3d.Vec3
	Faces    []Face

	// Diffuse is owned by the mesh. Nil means untextured.
	Diffuse *pixel.Buffer

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty, untextured mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		UVs:      make([]math3d.Vec2, 0),
		Normals:  make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// Vertex returns the position of corner i of face f.
func (m *Mesh) Vertex(f Face, i int) math3d.Vec3 {
	return m.Vertices[f[i].Vertex]
}

// DiffuseAt samples the diffuse texture at pixel coordinates (truncated).
// An untextured mesh is white everywhere.
func (m *Mesh) DiffuseAt(uv math3d.Vec2) pixel.Pixel {
	if m.Diffuse == nil {
		return pixel.White
	}
	x, y := uv.Ints()
	return m.Diffuse.GetPixel(x, y)
}

// UV returns the texture coordinate of corner i of face f, scaled from
// [0, 1] to diffuse pixel units.
func (m *Mesh) UV(f Face, i int) math3d.Vec2 {
	uv := m.UVs[f[i].Texture]
	if m.Diffuse == nil {
		return uv
	}
	return uv.Mul(math3d.V2(float64(m.Diffuse.Width()), float64(m.Diffuse.Height())))
}

// Validate checks that every face index refers to an existing vertex, UV and
// normal.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		for corner, idx := range f {
			switch {
			case idx.Vertex < 0 || idx.Vertex >= len(m.Vertices):
				return fmt.Errorf("face %d corner %d: vertex %d of %d: %w", fi, corner, idx.Vertex, len(m.Vertices), ErrIndexRange)
			case idx.Texture < 0 || idx.Texture >= len(m.UVs):
				return fmt.Errorf("face %d corner %d: uv %d of %d: %w", fi, corner, idx.Texture, len(m.UVs), ErrIndexRange)
			case idx.Normal < 0 || idx.Normal >= len(m.Normals):
				return fmt.Errorf("face %d corner %d: normal %d of %d: %w", fi, corner, idx.Normal, len(m.Normals), ErrIndexRange)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Normalized returns the transform that centers the mesh on the origin and
// fits its largest dimension into [-1, 1].
func (m *Mesh) Normalized() math3d.Mat4 {
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		extent = 2
	}
	s := 2 / extent
	return math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate()))
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals replaces the normals with one averaged normal per
// vertex and points every face's normal indices at its vertex indices.
func (m *Mesh) CalculateSmoothNormals() {
	m.Normals = make([]math3d.Vec3, len(m.Vertices))

	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f[0].Vertex]
		v1 := m.Vertices[f[1].Vertex]
		v2 := m.Vertices[f[2].Vertex]

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet
		for c := range f {
			f[c].Normal = f[c].Vertex
			m.Normals[f[c].Vertex] = m.Normals[f[c].Vertex].Add(normal)
		}
	}

	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// Transform returns a copy of the mesh with mat applied to every position and
// the rotation part of mat applied to every normal. The copy shares the
// diffuse texture and face list with m.
func (m *Mesh) Transform(mat math3d.Mat4) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]math3d.Vec3, len(m.Vertices)),
		UVs:      m.UVs,
		Normals:  make([]math3d.Vec3, len(m.Normals)),
		Faces:    m.Faces,
		Diffuse:  m.Diffuse,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = mat.MulVec3(v)
	}
	for i, n := range m.Normals {
		out.Normals[i] = mat.MulVec3Dir(n).Normalize()
	}
	out.CalculateBounds()
	return out
}

// Clone creates a deep copy of the mesh, including the diffuse texture.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		UVs:       make([]math3d.Vec2, len(m.UVs)),
		Normals:   make([]math3d.Vec3, len(m.Normals)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.UVs, m.UVs)
	copy(clone.Normals, m.Normals)
	copy(clone.Faces, m.Faces)
	if m.Diffuse != nil {
		clone.Diffuse = pixel.Copy(m.Diffuse)
	}
	return clone
}
