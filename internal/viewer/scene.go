package viewer

import (
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/pixel"
	"github.com/taigrr/softrast/pkg/render"
)

// Camera distance limits and step for Zoom callers.
const (
	ZoomStep  = 0.5
	MinCamera = 1.5
	MaxCamera = 20
)

// Mode selects how the scene draws the mesh.
type Mode int

const (
	ModeShaded Mode = iota
	ModeWireframe
	ModeBounds
)

func (m Mode) String() string {
	switch m {
	case ModeShaded:
		return "shaded"
	case ModeWireframe:
		return "wireframe"
	case ModeBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// Next cycles shaded → wireframe → bounds → shaded.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

// Scene draws one mesh, centered and fitted to [-1, 1], under a rotation.
type Scene struct {
	Raster   *render.Rasterizer3D
	Rotation *RotationState
	Mode     Mode

	Background pixel.Pixel
	Color      pixel.Pixel // fill color for untextured meshes and lines
	Scale      float64

	mesh *models.Mesh // normalized
	home math3d.Vec3  // camera restored by Reset
	last render.DrawStats
}

// NewScene creates a scene drawing mesh into raster's target.
func NewScene(mesh *models.Mesh, raster *render.Rasterizer3D, fps int) *Scene {
	return &Scene{
		Raster:     raster,
		Rotation:   NewRotationState(fps),
		Background: pixel.Black,
		Color:      pixel.RGB(200, 200, 200),
		Scale:      1,
		mesh:       mesh.Transform(mesh.Normalized()),
		home:       raster.Camera(),
	}
}

// Zoom moves the camera along Z by dz, clamped to [MinCamera, MaxCamera].
func (s *Scene) Zoom(dz float64) {
	c := s.Raster.Camera()
	c.Z = min(MaxCamera, max(MinCamera, c.Z+dz))
	s.Raster.SetCamera(c)
}

// Reset stops the rotation and restores the starting camera.
func (s *Scene) Reset() {
	s.Rotation.Reset()
	s.Raster.SetCamera(s.home)
}

// Mesh returns the normalized mesh the scene draws.
func (s *Scene) Mesh() *models.Mesh {
	return s.mesh
}

// Stats returns the counts from the last shaded frame.
func (s *Scene) Stats() render.DrawStats {
	return s.last
}

// Render clears the target, draws the rotated mesh and flips the result so
// +Y points up on screen. It does not advance the rotation.
func (s *Scene) Render() {
	s.Raster.Clear(s.Background)

	m := s.mesh.Transform(s.Rotation.Matrix())
	switch s.Mode {
	case ModeWireframe:
		s.Raster.WireframeProjected(m, s.Scale, s.Color)
	case ModeBounds:
		s.last = s.Raster.DrawModel(m, s.Scale, s.Color)
		s.Raster.DrawBounds(m, s.Scale, pixel.Yellow)
		s.Raster.DrawAxes(s.Scale)
	default:
		s.last = s.Raster.DrawModel(m, s.Scale, s.Color)
	}

	s.Raster.Target().FlipVertical()
}

// Step advances the rotation one frame and renders.
func (s *Scene) Step() {
	s.Rotation.Update()
	s.Render()
}
