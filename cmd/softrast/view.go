package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/internal/viewer"
	"github.com/taigrr/softrast/pkg/pixel"
	"github.com/taigrr/softrast/pkg/render"
)

// keyImpulse is the rotate strength of one key press; terminals report
// presses, not held keys.
const keyImpulse = 4

func newViewCmd(g *globals) *cobra.Command {
	var hud bool

	cmd := &cobra.Command{
		Use:   "view <model>",
		Short: "View a model in the terminal",
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
			return runTerminal(cmd.Context(), filepath.Base(args[0]), hud, cfg.FPS, func(w, h int) (*viewer.Scene, error) {
				return newScene(mesh, cfg, w, h)
			})
		},
	}
	cmd.Flags().BoolVar(&hud, "hud", true, "show the status line")
	return cmd
}

// keyInput maps a key press to viewer input.
func keyInput(ev uv.KeyPressEvent) (viewer.Input, bool) {
	var in viewer.Input
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		in.Quit = true
	case ev.MatchString("w", "up"):
		in.Pitch = -keyImpulse
	case ev.MatchString("s", "down"):
		in.Pitch = keyImpulse
	case ev.MatchString("a", "left"):
		in.Yaw = -keyImpulse
	case ev.MatchString("d", "right"):
		in.Yaw = keyImpulse
	case ev.MatchString("q"):
		in.Roll = -keyImpulse
	case ev.MatchString("e"):
		in.Roll = keyImpulse
	case ev.MatchString("+", "="):
		in.Zoom = -1
	case ev.MatchString("-", "_"):
		in.Zoom = 1
	case ev.MatchString("x"):
		in.NextMode = true
	case ev.MatchString("r"):
		in.Reset = true
	default:
		return in, false
	}
	return in, true
}

// runTerminal drives the half-block viewer until ctx ends or the user quits.
// All drawing happens on this goroutine; the event goroutine only forwards
// inputs and sizes.
func runTerminal(ctx context.Context, name string, hud bool, fps int, build func(w, h int) (*viewer.Scene, error)) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	tr := render.NewTerminalRenderer(term, width, height)
	scene, err := build(tr.FramebufferSize())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan viewer.Input, 64)
	sizes := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- [2]int{ev.Width, ev.Height}
			case uv.KeyPressEvent:
				if in, ok := keyInput(ev); ok {
					select {
					case inputs <- in:
					default:
					}
				}
			}
		}
	}()

	pacer := viewer.NewPacer(fps)
	for {
		pacer.Begin()

	drain:
		for {
			select {
			case in := <-inputs:
				if scene.Apply(in) {
					return nil
				}
			case sz := <-sizes:
				if sz[0] <= 0 || sz[1] <= 0 {
					continue
				}
				width, height = sz[0], sz[1]
				term.Erase()
				term.Resize(width, height)
				tr = render.NewTerminalRenderer(term, width, height)
				scene.Raster.SetTarget(pixel.New(tr.FramebufferSize()))
			default:
				break drain
			}
		}

		scene.Step()
		tr.Render(scene.Raster.Target())
		if hud {
			viewer.DrawText(term, 0, 0, viewer.StatusLine(name, pacer.FPS(), scene))
		}
		if err := tr.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		if err := pacer.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
