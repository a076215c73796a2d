package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/pixel"
)

// Rasterizer3D adds a depth buffer and a fixed projection/viewport transform
// to Rasterizer2D and draws whole meshes with per-face lighting.
//
// Larger depth values are nearer. The projection is the identity with
// -1/camera.Z in row 3, column 2; the viewport maps [-1, 1] onto the central
// three quarters of the target and z onto [0, depth].
type Rasterizer3D struct {
	*Rasterizer2D

	zbuffer    []float64
	projection math3d.Mat4
	viewport   math3d.Mat4

	camera    math3d.Vec3
	light     math3d.Vec3
	depth     float64
	depthMode DepthMode

	mesh *models.Mesh
}

// DrawStats counts what a DrawModel call did with the mesh's faces.
type DrawStats struct {
	Faces  int // faces visited
	Culled int // faces facing away from the light
	Drawn  int // faces filled
}

// NewRasterizer3D creates a rasterizer drawing into target. mesh supplies the
// diffuse texture for textured fills and may be nil.
func NewRasterizer3D(target *pixel.Buffer, mesh *models.Mesh, opts ...Option) *Rasterizer3D {
	r := &Rasterizer3D{
		Rasterizer2D: NewRasterizer2D(target),
		camera:       DefaultCamera,
		light:        DefaultLightDirection,
		depth:        DefaultDepth,
		mesh:         mesh,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.zbuffer = make([]float64, target.Size())
	r.ClearDepth()
	r.updateProjection()
	r.updateViewport()
	return r
}

func (r *Rasterizer3D) updateProjection() {
	r.projection = math3d.Projection(r.camera.Z)
}

func (r *Rasterizer3D) updateViewport() {
	w, h := r.target.Width(), r.target.Height()
	r.viewport = math3d.Viewport(
		float64(w/8), float64(h/8),
		float64(w*3/4), float64(h*3/4),
		r.depth,
	)
}

// SetTarget switches the target buffer, resizing the depth buffer and
// rebuilding the viewport.
func (r *Rasterizer3D) SetTarget(target *pixel.Buffer) {
	r.Rasterizer2D.SetTarget(target)
	if cap(r.zbuffer) < target.Size() {
		r.zbuffer = make([]float64, target.Size())
	}
	r.zbuffer = r.zbuffer[:target.Size()]
	r.ClearDepth()
	r.updateViewport()
}

// Camera returns the camera position; only its Z feeds the projection.
func (r *Rasterizer3D) Camera() math3d.Vec3 { return r.camera }

// LightDirection returns the direction faces are lit from.
func (r *Rasterizer3D) LightDirection() math3d.Vec3 { return r.light }

// Depth returns the far end of the screen depth range.
func (r *Rasterizer3D) Depth() float64 { return r.depth }

// DepthMode returns when the depth buffer is reset.
func (r *Rasterizer3D) DepthMode() DepthMode { return r.depthMode }

// Mesh returns the mesh textured fills sample from, or nil.
func (r *Rasterizer3D) Mesh() *models.Mesh { return r.mesh }

// Projection returns the current projection matrix.
func (r *Rasterizer3D) Projection() math3d.Mat4 { return r.projection }

// Viewport returns the current viewport matrix.
func (r *Rasterizer3D) Viewport() math3d.Mat4 { return r.viewport }

// SetCamera moves the camera and rebuilds the projection.
func (r *Rasterizer3D) SetCamera(v math3d.Vec3) {
	r.camera = v
	r.updateProjection()
}

// SetLightDirection changes the light direction.
func (r *Rasterizer3D) SetLightDirection(v math3d.Vec3) {
	r.light = v
}

// SetDepth changes the depth range and rebuilds the viewport.
func (r *Rasterizer3D) SetDepth(depth float64) {
	r.depth = depth
	r.updateViewport()
}

// SetDepthMode changes when the depth buffer is reset.
func (r *Rasterizer3D) SetDepthMode(m DepthMode) {
	r.depthMode = m
}

// SetMesh sets the mesh whose diffuse texture textured fills sample.
func (r *Rasterizer3D) SetMesh(m *models.Mesh) {
	r.mesh = m
}

// ClearDepth resets every depth to the lowest value so the next write wins.
func (r *Rasterizer3D) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = -math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Clear fills the target with bg and resets the depth buffer.
func (r *Rasterizer3D) Clear(bg pixel.Pixel) {
	r.target.Fill(bg)
	r.ClearDepth()
}

// DepthAt returns the depth recorded at (x, y), or -math.MaxFloat64 outside
// the target.
func (r *Rasterizer3D) DepthAt(x, y int) float64 {
	w, h := r.target.Width(), r.target.Height()
	if x < 0 || x >= w || y < 0 || y >= h {
		return -math.MaxFloat64
	}
	return r.zbuffer[x+y*w]
}

func (r *Rasterizer3D) beginFill() {
	if r.depthMode == DepthPerTriangle {
		r.ClearDepth()
	}
}

// depthTest records z at (x, y) and reports true if z is nearer than what is
// there. (x, y) must be inside the target.
func (r *Rasterizer3D) depthTest(x, y int, z float64) bool {
	idx := x + y*r.target.Width()
	if r.zbuffer[idx] < z {
		r.zbuffer[idx] = z
		return true
	}
	return false
}

// ToScreen transforms a model-space point by viewport × projection with the
// homogeneous divide.
func (r *Rasterizer3D) ToScreen(v math3d.Vec3) math3d.Vec3 {
	return r.viewport.Mul(r.projection).MulVec3(v)
}

// FillTriangle3D fills a screen-space triangle with a flat color, testing
// each pixel against the depth buffer. Pixels are found by evaluating
// barycentric weights over the triangle's bounding box clamped to the target.
func (r *Rasterizer3D) FillTriangle3D(v0, v1, v2 math3d.Vec3, c pixel.Pixel) {
	r.beginFill()

	w, h := r.target.Width(), r.target.Height()
	minX := max(0, int(math.Floor(min(v0.X, v1.X, v2.X))))
	minY := max(0, int(math.Floor(min(v0.Y, v1.Y, v2.Y))))
	maxX := min(w-1, int(math.Ceil(max(v0.X, v1.X, v2.X))))
	maxY := min(h-1, int(math.Ceil(max(v0.Y, v1.Y, v2.Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := math3d.Barycentric(v0, v1, v2, math3d.V3(float64(x), float64(y), 0))
			if !bc.Inside() {
				continue
			}
			z := v0.Z*bc.X + v1.Z*bc.Y + v2.Z*bc.Z
			if r.depthTest(x, y, z) {
				r.target.SetPixel(x, y, c)
			}
		}
	}
	r.target.MarkDirty()
}

// FillTriangleTextured fills a screen-space triangle with the scanline
// half-split method, interpolating depth and texture coordinates along each
// row. Each pixel that passes the depth test gets the current mesh's diffuse
// color at the interpolated UV, with every channel multiplied by intensity
// (truncated to a byte) and alpha forced opaque.
//
// uv0..uv2 are in diffuse pixel units (see models.Mesh.UV). A triangle whose
// vertices all fall on one row is skipped. Rows and columns outside the
// target are never visited.
func (r *Rasterizer3D) FillTriangleTextured(v0, v1, v2 math3d.Vec3, uv0, uv1, uv2 math3d.Vec2, intensity float64) {
	r.beginFill()

	y0, y1, y2 := int(v0.Y), int(v1.Y), int(v2.Y)
	if y0 == y1 && y0 == y2 {
		return
	}
	if y0 > y1 {
		v0, v1, uv0, uv1, y0, y1 = v1, v0, uv1, uv0, y1, y0
	}
	if y0 > y2 {
		v0, v2, uv0, uv2, y0, y2 = v2, v0, uv2, uv0, y2, y0
	}
	if y1 > y2 {
		v1, v2, uv1, uv2, y1, y2 = v2, v1, uv2, uv1, y2, y1
	}

	w, h := r.target.Width(), r.target.Height()
	halfSplitRows(y0, y1, y2, 0, h-1, func(i int, alpha, beta float64, second bool) {
		y := y0 + i

		a, uvA := v0.Lerp(v2, alpha), uv0.Lerp(uv2, alpha)
		var b math3d.Vec3
		var uvB math3d.Vec2
		if second {
			b, uvB = v1.Lerp(v2, beta), uv1.Lerp(uv2, beta)
		} else {
			b, uvB = v0.Lerp(v1, beta), uv0.Lerp(uv1, beta)
		}
		if a.X > b.X {
			a, b = b, a
			uvA, uvB = uvB, uvA
		}

		for x := max(0, int(a.X)); x <= min(w-1, int(b.X)); x++ {
			phi := 1.0
			if b.X != a.X {
				phi = (float64(x) - a.X) / (b.X - a.X)
			}
			z := a.Z + (b.Z-a.Z)*phi
			if r.depthTest(x, y, z) {
				uv := uvA.Lerp(uvB, phi)
				r.target.SetPixel(x, y, r.diffuse(uv).Scale(intensity))
			}
		}
	})
	r.target.MarkDirty()
}

func (r *Rasterizer3D) diffuse(uv math3d.Vec2) pixel.Pixel {
	if r.mesh == nil {
		return pixel.White
	}
	return r.mesh.DiffuseAt(uv)
}

// DrawModel renders every face of mesh and makes it the current mesh.
//
// Vertices are scaled by scale and taken to the screen by viewport ×
// projection. The face normal (w2-w0) × (w1-w0) of the scaled vertices,
// dotted with the light direction, gives the face intensity; faces with
// intensity <= 0 are culled. Textured meshes use FillTriangleTextured, and
// meshes without a diffuse texture are filled flat with c scaled by the
// intensity.
//
// Face indices are not checked; an out-of-range index panics.
func (r *Rasterizer3D) DrawModel(mesh *models.Mesh, scale float64, c pixel.Pixel) DrawStats {
	r.mesh = mesh
	transform := r.viewport.Mul(r.projection)

	stats := DrawStats{Faces: len(mesh.Faces)}
	var world, screen [3]math3d.Vec3
	for _, f := range mesh.Faces {
		for i := range f {
			world[i] = mesh.Vertex(f, i).Scale(scale)
			screen[i] = transform.MulVec3(world[i])
		}

		normal := world[2].Sub(world[0]).Cross(world[1].Sub(world[0])).Normalize()
		intensity := normal.Dot(r.light)
		if intensity <= 0 {
			stats.Culled++
			continue
		}

		if mesh.Diffuse == nil {
			r.FillTriangle3D(screen[0], screen[1], screen[2], c.Scale(intensity))
		} else {
			r.FillTriangleTextured(
				screen[0], screen[1], screen[2],
				mesh.UV(f, 0), mesh.UV(f, 1), mesh.UV(f, 2),
				intensity,
			)
		}
		stats.Drawn++
	}
	return stats
}
