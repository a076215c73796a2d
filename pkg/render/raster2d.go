// Package render provides the software rasterizers that draw into a
// pixel.Buffer, and a half-block presenter for terminals.
package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
)

// Rasterizer2D draws lines, triangles and rectangles into a target buffer.
//
// It also keeps two silhouette buffers for RasterizeX and RasterizeY: the
// largest x drawn so far on each row and the largest y drawn so far in each
// column.
type Rasterizer2D struct {
	target  *pixel.Buffer
	xBuffer []int // per row
	yBuffer []int // per column
}

// NewRasterizer2D creates a rasterizer drawing into target.
func NewRasterizer2D(target *pixel.Buffer) *Rasterizer2D {
	r := &Rasterizer2D{}
	r.SetTarget(target)
	return r
}

// Target returns the buffer being drawn into.
func (r *Rasterizer2D) Target() *pixel.Buffer {
	return r.target
}

// SetTarget switches the target buffer and resets the silhouette buffers.
func (r *Rasterizer2D) SetTarget(target *pixel.Buffer) {
	r.target = target
	r.ResetSilhouette()
}

// ResetSilhouette forgets everything recorded by RasterizeX and RasterizeY.
func (r *Rasterizer2D) ResetSilhouette() {
	r.xBuffer = resetInts(r.xBuffer, r.target.Height())
	r.yBuffer = resetInts(r.yBuffer, r.target.Width())
}

func resetInts(buf []int, n int) []int {
	if cap(buf) < n {
		buf = make([]int, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = math.MinInt
	}
	return buf
}

// Pixel returns the target pixel at (x, y), wrapping like the buffer does.
func (r *Rasterizer2D) Pixel(x, y int) pixel.Pixel {
	return r.target.GetPixel(x, y)
}

// SetPixel writes the target pixel at (x, y), wrapping like the buffer does.
func (r *Rasterizer2D) SetPixel(x, y int, c pixel.Pixel) {
	r.target.SetPixel(x, y, c)
}

// BlendPixel replaces the pixel at (x, y) with the packed average of it and c.
func (r *Rasterizer2D) BlendPixel(x, y int, c pixel.Pixel) {
	i := x + y*r.target.Width()
	r.target.SetIndex(i, pixel.Blend(c, r.target.GetIndex(i)))
}

// DrawLine draws a line from (x0, y0) to (x1, y1) inclusive with an integer
// Bresenham walk along the longer axis.
func (r *Rasterizer2D) DrawLine(x0, y0, x1, y1 int, c pixel.Pixel) {
	steep := abs(x0-x1) < abs(y0-y1)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx, dy := x1-x0, y1-y0
	yInc := 1
	if y1 < y0 {
		yInc = -1
	}
	err, err2 := 0, abs(dy)*2

	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			r.target.SetPixel(y, x, c)
		} else {
			r.target.SetPixel(x, y, c)
		}
		err += err2
		if err > dx {
			y += yInc
			err -= dx * 2
		}
	}
	r.target.MarkDirty()
}

// DrawLineV draws a line between two points, truncating them to pixels.
func (r *Rasterizer2D) DrawLineV(a, b math3d.Vec2, c pixel.Pixel) {
	x0, y0 := a.Ints()
	x1, y1 := b.Ints()
	r.DrawLine(x0, y0, x1, y1, c)
}

// sortByY orders three points by ascending Y.
func sortByY(v0, v1, v2 math3d.Vec2) (math3d.Vec2, math3d.Vec2, math3d.Vec2) {
	if v0.Y > v1.Y {
		v0, v1 = v1, v0
	}
	if v0.Y > v2.Y {
		v0, v2 = v2, v0
	}
	if v1.Y > v2.Y {
		v1, v2 = v2, v1
	}
	return v0, v1, v2
}

// DrawTriangle draws the outline of a triangle. A triangle whose vertices
// all share one Y is skipped.
func (r *Rasterizer2D) DrawTriangle(v0, v1, v2 math3d.Vec2, c pixel.Pixel) {
	if v0.Y == v1.Y && v0.Y == v2.Y {
		return
	}
	v0, v1, v2 = sortByY(v0, v1, v2)
	r.DrawLineV(v0, v1, c)
	r.DrawLineV(v1, v2, c)
	r.DrawLineV(v2, v0, c)
}

// halfSplit walks the rows of the triangle (v0, v1, v2), already sorted by
// truncated Y, and calls span with the row offset i from v0's row and the
// interpolation factors of the long edge v0-v2 (alpha) and of the active
// short edge (beta). second reports whether the short edge is v1-v2.
// Rows run from v0's row to v2's row inclusive.
func halfSplit(y0, y1, y2 int, span func(i int, alpha, beta float64, second bool)) {
	halfSplitRows(y0, y1, y2, y0, y2, span)
}

// halfSplitRows is halfSplit restricted to the absolute rows [top, bottom].
// The factors are the same as for the full walk; rows outside the window
// are never visited.
func halfSplitRows(y0, y1, y2, top, bottom int, span func(i int, alpha, beta float64, second bool)) {
	total := y2 - y0
	first := max(top, y0) - y0
	last := min(bottom, y2) - y0
	for i := first; i <= last; i++ {
		second := i > y1-y0 || y1 == y0
		var seg, from int
		if second {
			seg, from = y2-y1, y1-y0
		} else {
			seg = y1 - y0
		}
		alpha := float64(i) / float64(total)
		beta := float64(i-from) / float64(max(seg, 1))
		span(i, alpha, beta, second)
	}
}

// FillTriangle fills a triangle with the scanline half-split method. The
// vertices are truncated to pixels first; a triangle whose vertices then
// share one row is skipped. Fill order does not depend on vertex order.
func (r *Rasterizer2D) FillTriangle(v0, v1, v2 math3d.Vec2, c pixel.Pixel) {
	v0, v1, v2 = truncate(v0), truncate(v1), truncate(v2)
	if v0.Y == v1.Y && v0.Y == v2.Y {
		return
	}
	v0, v1, v2 = sortByY(v0, v1, v2)

	halfSplit(int(v0.Y), int(v1.Y), int(v2.Y), func(i int, alpha, beta float64, second bool) {
		a := v0.Lerp(v2, alpha)
		var b math3d.Vec2
		if second {
			b = v1.Lerp(v2, beta)
		} else {
			b = v0.Lerp(v1, beta)
		}
		if a.X > b.X {
			a, b = b, a
		}
		y := int(v0.Y) + i
		for x := int(a.X); x <= int(b.X); x++ {
			r.target.SetPixel(x, y, c)
		}
	})
	r.target.MarkDirty()
}

func truncate(v math3d.Vec2) math3d.Vec2 {
	return math3d.V2(math.Trunc(v.X), math.Trunc(v.Y))
}

// DrawRectangle draws the border of the rectangle with corners (x, y) and
// (x+width, y+height).
func (r *Rasterizer2D) DrawRectangle(x, y, width, height int, c pixel.Pixel) {
	if width == 0 && height == 0 {
		return
	}
	r.DrawLine(x, y, x+width, y, c)
	r.DrawLine(x+width, y, x+width, y+height, c)
	r.DrawLine(x+width, y+height, x, y+height, c)
	r.DrawLine(x, y+height, x, y, c)
}

// FillRectangle fills width×height pixels starting at (x, y). Pixels outside
// the target are skipped.
func (r *Rasterizer2D) FillRectangle(x, y, width, height int, c pixel.Pixel) {
	w, h := r.target.Width(), r.target.Height()
	for iy := range height {
		cy := y + iy
		if cy < 0 || cy >= h {
			continue
		}
		for ix := range width {
			cx := x + ix
			if cx < 0 || cx >= w {
				continue
			}
			r.target.SetPixel(cx, cy, c)
		}
	}
	r.target.MarkDirty()
}

// RasterizeX walks the rows from p1 to p2, interpolating x with rounding, and
// draws (x, row) only where x exceeds every x previously recorded on that row.
// Rows outside the target are skipped; an x outside the target is recorded
// but not drawn.
func (r *Rasterizer2D) RasterizeX(p1, p2 math3d.Vec2, c pixel.Pixel) {
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}
	w := r.target.Width()
	for y := int(p1.Y); float64(y) <= p2.Y; y++ {
		if y < 0 || y >= len(r.xBuffer) {
			continue
		}
		x := int(lerpAt(p1.X, p2.X, p1.Y, p2.Y, float64(y)) + 0.5)
		if x > r.xBuffer[y] {
			r.xBuffer[y] = x
			if x >= 0 && x < w {
				r.target.SetPixel(x, y, c)
			}
		}
	}
	r.target.MarkDirty()
}

// RasterizeY is RasterizeX with the axes exchanged: it records the largest y
// per column.
func (r *Rasterizer2D) RasterizeY(p1, p2 math3d.Vec2, c pixel.Pixel) {
	if p1.X > p2.X {
		p1, p2 = p2, p1
	}
	h := r.target.Height()
	for x := int(p1.X); float64(x) <= p2.X; x++ {
		if x < 0 || x >= len(r.yBuffer) {
			continue
		}
		y := int(lerpAt(p1.Y, p2.Y, p1.X, p2.X, float64(x)) + 0.5)
		if y > r.yBuffer[x] {
			r.yBuffer[x] = y
			if y >= 0 && y < h {
				r.target.SetPixel(x, y, c)
			}
		}
	}
	r.target.MarkDirty()
}

// lerpAt returns the value at s on the line through (s0, a) and (s1, b).
// A zero-length span yields a.
func lerpAt(a, b, s0, s1, s float64) float64 {
	if s1 == s0 {
		return a
	}
	t := (s - s0) / (s1 - s0)
	return a*(1-t) + b*t
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
