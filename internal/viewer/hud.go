package viewer

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

var (
	hudFg = color.RGBA{255, 255, 255, 255}
	hudBg = color.RGBA{0, 0, 0, 255}
)

// StatusLine formats the one-line overlay shown by the terminal viewer.
func StatusLine(name string, fps float64, s *Scene) string {
	st := s.Stats()
	return fmt.Sprintf(" %s  %.0f FPS  %d faces  %d drawn  %d culled  [%s] ",
		name, fps, st.Faces, st.Drawn, st.Culled, s.Mode)
}

// DrawText writes text into the cells of row y starting at column x, one
// rune per cell, clipped to the screen.
func DrawText(scr uv.Screen, x, y int, text string) {
	b := scr.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for _, r := range text {
		if x >= b.Max.X {
			return
		}
		if x >= b.Min.X {
			scr.SetCell(x, y, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: hudFg, Bg: hudBg},
			})
		}
		x++
	}
}
