// Package config loads viewer settings from a JSON file and merges them with
// command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
	"github.com/taigrr/softrast/pkg/render"
)

// Defaults used by Resolve.
const (
	DefaultWidth     = 320
	DefaultHeight    = 240
	DefaultFPS       = 60
	DefaultDepthMode = "frame"
	DefaultLight     = "0,0,-1"
	DefaultBG        = "30,30,40"
)

// Config holds scene and output settings.
type Config struct {
	// Target size for render and window output. The terminal viewer sizes
	// its buffer from the terminal instead.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Scene
	CameraZ   float64 `json:"camera_z"`
	Depth     float64 `json:"depth"`
	Light     string  `json:"light"`      // "x,y,z"
	DepthMode string  `json:"depth_mode"` // "triangle" or "frame"
	BG        string  `json:"bg"`         // "r,g,b"
	Scale     float64 `json:"scale"`

	// Viewer
	FPS int `json:"fps"`

	// Loading
	AllowMissingDiffuse bool `json:"allow_missing_diffuse"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	Width     int
	Height    int
	CameraZ   float64
	Depth     float64
	Light     string
	DepthMode string
	BG        string
	Scale     float64
	FPS       int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides, then fills any empty field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.CameraZ != 0 {
		c.CameraZ = flags.CameraZ
	}
	if flags.Depth > 0 {
		c.Depth = flags.Depth
	}
	if flags.Light != "" {
		c.Light = flags.Light
	}
	if flags.DepthMode != "" {
		c.DepthMode = flags.DepthMode
	}
	if flags.BG != "" {
		c.BG = flags.BG
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.CameraZ == 0 {
		c.CameraZ = render.DefaultCamera.Z
	}
	if c.Depth <= 0 {
		c.Depth = render.DefaultDepth
	}
	if c.Light == "" {
		c.Light = DefaultLight
	}
	if c.DepthMode == "" {
		c.DepthMode = DefaultDepthMode
	}
	if c.BG == "" {
		c.BG = DefaultBG
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
}

// Options converts the scene settings into rasterizer options.
func (c Config) Options() ([]render.Option, error) {
	light, err := ParseVec3(c.Light)
	if err != nil {
		return nil, fmt.Errorf("config: light: %w", err)
	}
	mode, err := render.ParseDepthMode(c.DepthMode)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []render.Option{
		render.WithCamera(math3d.V3(0, 0, c.CameraZ)),
		render.WithLightDirection(light),
		render.WithDepth(c.Depth),
		render.WithDepthMode(mode),
	}, nil
}

// Background parses the background color.
func (c Config) Background() (pixel.Pixel, error) {
	bg, err := ParseColor(c.BG)
	if err != nil {
		return pixel.Pixel{}, fmt.Errorf("config: bg: %w", err)
	}
	return bg, nil
}

// ParseVec3 parses "x,y,z".
func ParseVec3(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var f [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d of %q: %w", i+1, s, err)
		}
		f[i] = v
	}
	return math3d.V3(f[0], f[1], f[2]), nil
}

// ParseColor parses "r,g,b" with each channel in 0..255 into an opaque pixel.
func ParseColor(s string) (pixel.Pixel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return pixel.Pixel{}, fmt.Errorf("want r,g,b, got %q", s)
	}
	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return pixel.Pixel{}, fmt.Errorf("channel %d of %q: %w", i+1, s, err)
		}
		c[i] = uint8(v)
	}
	return pixel.RGB(c[0], c[1], c[2]), nil
}
