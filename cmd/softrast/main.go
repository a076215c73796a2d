// softrast - software rasterizer for OBJ and GLB models.
//
// Subcommands:
//
//	view <model>     interactive terminal viewer
//	window <model>   desktop window viewer
//	render <model>   draw one frame to a PNG or WebP file
//	info <model>     print mesh statistics and validate indices
//
// Viewer controls:
//
//	W/S, arrows  - Pitch and yaw
//	Q/E          - Roll left/right
//	+/-          - Camera closer/farther
//	X            - Cycle shaded / wireframe / bounds
//	R            - Reset view
//	Esc          - Quit
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/pkg/render"
)

var version = "dev"

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
	flags      config.Flags
	allowBare  bool
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "softrast",
		Short: "Software rasterizer for OBJ and GLB models",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			render.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "JSON config file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&g.flags.Width, "width", 0, "target width in pixels (render, window)")
	pf.IntVar(&g.flags.Height, "height", 0, "target height in pixels (render, window)")
	pf.Float64Var(&g.flags.CameraZ, "camera-z", 0, "camera distance (default 3)")
	pf.Float64Var(&g.flags.Depth, "depth", 0, "depth range (default 255)")
	pf.StringVar(&g.flags.Light, "light", "", "light direction x,y,z (default 0,0,-1)")
	pf.StringVar(&g.flags.DepthMode, "depth-mode", "", "depth reset: triangle or frame (default frame)")
	pf.StringVar(&g.flags.BG, "bg", "", "background color r,g,b (default 30,30,40)")
	pf.Float64Var(&g.flags.Scale, "scale", 0, "model scale after fitting to the view (default 1)")
	pf.IntVar(&g.flags.FPS, "fps", 0, "target frames per second (default 60)")
	pf.BoolVar(&g.allowBare, "allow-missing-diffuse", false, "load OBJ models without a _diffuse texture")

	root.AddCommand(
		newViewCmd(g),
		newWindowCmd(g),
		newRenderCmd(g),
		newInfoCmd(g),
	)
	return root
}

// config loads the config file, if any, and applies the flags.
func (g *globals) config() (config.Config, error) {
	var cfg config.Config
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(g.flags)
	if g.allowBare {
		cfg.AllowMissingDiffuse = true
	}
	return cfg, nil
}
