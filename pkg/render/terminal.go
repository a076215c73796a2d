package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softrast/pkg/pixel"
)

// HalfBlock is the cell content used to show two pixels per terminal cell.
const HalfBlock = "▀"

// DrawTerminal copies buf onto the cells of area. Each cell shows two buffer
// rows with ▀ (upper half block): the foreground is the top pixel and the
// background the bottom one. Buffer pixel (0, 0) lands in the top-left cell
// of area. Transparent pixels and pixels past the edge of buf leave the
// color unset.
func DrawTerminal(buf *pixel.Buffer, scr uv.Screen, area uv.Rectangle) {
	tex := buf.Texture()
	if tex == nil {
		return
	}
	area = area.Intersect(scr.Bounds())

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= buf.Height() {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= buf.Width() {
				break
			}
			cell := &uv.Cell{
				Content: HalfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: texel(tex, x, topY),
					Bg: texel(tex, x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// texel returns the color at (x, y), or nil when it is transparent or out of
// bounds.
func texel(tex *image.NRGBA, x, y int) color.Color {
	if !(image.Point{x, y}).In(tex.Rect) {
		return nil
	}
	c := tex.NRGBAAt(x, y)
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalRenderer presents pixel buffers on a terminal using half blocks.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int
}

// NewTerminalRenderer creates a renderer for a terminal of width×height
// cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel size that exactly covers the terminal:
// one column per cell and two rows per cell.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render draws buf onto the terminal's cell buffer.
func (t *TerminalRenderer) Render(buf *pixel.Buffer) {
	DrawTerminal(buf, t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes the pending cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
