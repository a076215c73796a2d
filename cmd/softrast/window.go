package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/internal/window"
)

func newWindowCmd(g *globals) *cobra.Command {
	var zoom int

	cmd := &cobra.Command{
		Use:   "window <model>",
		Short: "View a model in a desktop window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			mesh, err := loadMesh(args[0], cfg)
			if err != nil {
				return err
			}
			scene, err := newScene(mesh, cfg, cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			return window.Run("softrast - "+filepath.Base(args[0]), scene, zoom, cfg.FPS)
		},
	}
	cmd.Flags().IntVar(&zoom, "zoom", 2, "window pixels per buffer pixel")
	return cmd
}
