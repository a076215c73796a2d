package render

import (
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/pixel"
)

// boxEdges lists the 12 edges of a box whose corners are numbered
// 0-3 on the back face and 4-7 on the front face.
var boxEdges = [12][2]int{
	// Back face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Front face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawLine3D projects both endpoints and draws the line between them.
func (r *Rasterizer3D) DrawLine3D(p1, p2 math3d.Vec3, c pixel.Pixel) {
	a, b := r.ToScreen(p1), r.ToScreen(p2)
	r.DrawLineV(a.XY(), b.XY(), c)
}

// DrawTriangle3D draws the outline of a screen-space triangle, ignoring depth.
func (r *Rasterizer3D) DrawTriangle3D(v0, v1, v2 math3d.Vec3, c pixel.Pixel) {
	r.DrawTriangle(v0.XY(), v1.XY(), v2.XY(), c)
}

// Wireframe draws the outline of every face of mesh directly in screen
// space: each vertex is offset by (1, 1, 1), multiplied by scale, and only X
// and Y are used. No projection, culling or depth testing is applied, and
// faces whose corners share one row are skipped like any flat triangle.
func (r *Rasterizer3D) Wireframe(mesh *models.Mesh, scale float64, c pixel.Pixel) {
	one := math3d.One3()
	for _, f := range mesh.Faces {
		v0 := mesh.Vertex(f, 0).Add(one).Scale(scale)
		v1 := mesh.Vertex(f, 1).Add(one).Scale(scale)
		v2 := mesh.Vertex(f, 2).Add(one).Scale(scale)
		r.DrawTriangle(v0.XY(), v1.XY(), v2.XY(), c)
	}
}

// WireframeProjected draws the edges of every face of mesh through the same
// viewport × projection transform as DrawModel, without culling or depth
// testing.
func (r *Rasterizer3D) WireframeProjected(mesh *models.Mesh, scale float64, c pixel.Pixel) {
	transform := r.viewport.Mul(r.projection)
	var screen [3]math3d.Vec3
	for _, f := range mesh.Faces {
		for i := range f {
			screen[i] = transform.MulVec3(mesh.Vertex(f, i).Scale(scale))
		}
		// Edges, not DrawTriangle: faces seen edge-on still get a line.
		for i := range screen {
			a, b := screen[i], screen[(i+1)%3]
			r.DrawLineV(a.XY(), b.XY(), c)
		}
	}
}

// DrawBounds draws the mesh's axis-aligned bounding box, scaled by scale.
func (r *Rasterizer3D) DrawBounds(mesh *models.Mesh, scale float64, c pixel.Pixel) {
	lo, hi := mesh.BoundsMin.Scale(scale), mesh.BoundsMax.Scale(scale)
	corners := [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0: bottom-left-back
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1: bottom-right-back
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2: top-right-back
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3: top-left-back
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4: bottom-left-front
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5: bottom-right-front
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6: top-right-front
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7: top-left-front
	}
	for _, e := range boxEdges {
		r.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}

// DrawAxes draws the model-space axes from the origin, X red, Y green and
// Z blue.
func (r *Rasterizer3D) DrawAxes(length float64) {
	origin := math3d.Vec3{}
	r.DrawLine3D(origin, math3d.V3(length, 0, 0), pixel.Red)
	r.DrawLine3D(origin, math3d.V3(0, length, 0), pixel.Green)
	r.DrawLine3D(origin, math3d.V3(0, 0, length), pixel.Blue)
}
