package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/internal/viewer"
	"github.com/taigrr/softrast/pkg/pixel"
	"github.com/taigrr/softrast/pkg/render"
)

func newRenderCmd(g *globals) *cobra.Command {
	var (
		out              string
		pitch, yaw, roll float64
		mode             string
		checker, upscale int
	)

	cmd := &cobra.Command{
		Use:   "render <model>",
		Short: "Draw one frame to a PNG or WebP file",
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
			if checker > 0 {
				// UV preview: replace (or supply) the diffuse with a checkerboard.
				mesh.Diffuse = pixel.NewChecker(checkerSize, checkerSize, checker, pixel.White, pixel.Magenta)
			}
			scene, err := newScene(mesh, cfg, cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			if scene.Mode, err = parseMode(mode); err != nil {
				return err
			}

			scene.Rotation.Pitch.Position = pitch
			scene.Rotation.Yaw.Position = yaw
			scene.Rotation.Roll.Position = roll
			scene.Render()

			frame := scene.Raster.Target()
			if upscale > 1 {
				frame = frame.Scaled(frame.Width()*upscale, frame.Height()*upscale)
			}
			if err := frame.Save(out); err != nil {
				return fmt.Errorf("save frame: %w", err)
			}
			st := scene.Stats()
			render.Logger().Info("frame written",
				slog.String("path", out),
				slog.Int("faces", st.Faces),
				slog.Int("drawn", st.Drawn),
				slog.Int("culled", st.Culled),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "frame.png", "output file (.png or .webp)")
	f.Float64Var(&pitch, "pitch", 0, "rotation about X in radians")
	f.Float64Var(&yaw, "yaw", 0, "rotation about Y in radians")
	f.Float64Var(&roll, "roll", 0, "rotation about Z in radians")
	f.StringVar(&mode, "mode", "shaded", "shaded, wireframe or bounds")
	f.IntVar(&checker, "checker", 0, "replace the diffuse with a checkerboard of this cell size (0 keeps it)")
	f.IntVar(&upscale, "upscale", 1, "integer nearest-neighbour upscale of the saved frame")
	return cmd
}

const checkerSize = 256

func parseMode(s string) (viewer.Mode, error) {
	for m := viewer.ModeShaded; m <= viewer.ModeBounds; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want shaded, wireframe or bounds)", s)
}
