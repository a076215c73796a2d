package render

import (
	"fmt"

	"github.com/taigrr/softrast/pkg/math3d"
)

// DepthMode selects when the depth buffer is reset.
type DepthMode int

const (
	// DepthPerTriangle resets the depth buffer at the start of every fill
	// call, so depth only resolves overlaps within a single triangle fill and
	// later triangles always paint over earlier ones.
	DepthPerTriangle DepthMode = iota
	// DepthPerFrame leaves the depth buffer alone during fills; the caller
	// resets it with ClearDepth once per frame.
	DepthPerFrame
)

func (m DepthMode) String() string {
	switch m {
	case DepthPerTriangle:
		return "triangle"
	case DepthPerFrame:
		return "frame"
	default:
		return fmt.Sprintf("DepthMode(%d)", int(m))
	}
}

// ParseDepthMode parses "triangle" or "frame".
func ParseDepthMode(s string) (DepthMode, error) {
	switch s {
	case "triangle":
		return DepthPerTriangle, nil
	case "frame":
		return DepthPerFrame, nil
	default:
		return 0, fmt.Errorf("unknown depth mode %q (want triangle or frame)", s)
	}
}

// Default scene parameters.
var (
	DefaultCamera         = math3d.V3(0, 0, 3)
	DefaultLightDirection = math3d.V3(0, 0, -1)
)

// DefaultDepth is the default depth range of the viewport transform.
const DefaultDepth = 255

// Option configures a Rasterizer3D.
type Option func(*Rasterizer3D)

// WithCamera sets the camera position. Only Z affects the projection.
func WithCamera(v math3d.Vec3) Option {
	return func(r *Rasterizer3D) { r.camera = v }
}

// WithLightDirection sets the light direction used for face intensity.
func WithLightDirection(v math3d.Vec3) Option {
	return func(r *Rasterizer3D) { r.light = v }
}

// WithDepth sets the depth range the viewport maps z onto.
func WithDepth(depth float64) Option {
	return func(r *Rasterizer3D) { r.depth = depth }
}

// WithDepthMode sets when the depth buffer is reset.
func WithDepthMode(m DepthMode) Option {
	return func(r *Rasterizer3D) { r.depthMode = m }
}
