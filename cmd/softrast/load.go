package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/internal/viewer"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/pixel"
	"github.com/taigrr/softrast/pkg/render"
)

// loadMesh loads an OBJ or GLB/glTF model and checks its face indices.
func loadMesh(path string, cfg config.Config) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, err = models.NewGLTFLoader().Load(path)
	case ".obj", "":
		l := models.NewOBJLoader()
		l.RequireDiffuse = !cfg.AllowMissingDiffuse
		mesh, err = l.Load(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return mesh, nil
}

// newScene builds a scene drawing mesh into a fresh width×height buffer.
func newScene(mesh *models.Mesh, cfg config.Config, width, height int) (*viewer.Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.Background()
	if err != nil {
		return nil, err
	}

	raster := render.NewRasterizer3D(pixel.New(width, height), mesh, opts...)
	scene := viewer.NewScene(mesh, raster, cfg.FPS)
	scene.Background = bg
	scene.Scale = cfg.Scale
	return scene, nil
}
