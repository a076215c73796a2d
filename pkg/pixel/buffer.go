package pixel

import (
	"errors"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"

	"github.com/taigrr/softrast/internal/xlog"
)

// ErrEmptyImage is returned when an image with no pixels is converted to a
// Buffer.
var ErrEmptyImage = errors.New("pixel: image has no pixels")

// Buffer is a fixed-size grid of pixels with a lazily refreshed presentable
// texture.
//
// Integer coordinates map to the flat index x + y*Width, and every flat index
// is taken modulo Size, so no read or write is ever out of range. Writes mark
// the buffer dirty; Texture re-encodes the pixels at most once per dirty
// period.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	width  int
	height int
	pixels []Pixel

	texture  *image.NRGBA
	dirty    bool
	disposed bool
}

// New creates a transparent width×height buffer.
// It panics if either dimension is not positive.
func New(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic("pixel: buffer dimensions must be positive")
	}
	return &Buffer{
		width:   width,
		height:  height,
		pixels:  make([]Pixel, width*height),
		texture: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// Copy creates a new buffer with the dimensions and pixels of other.
func Copy(other *Buffer) *Buffer {
	b := New(other.width, other.height)
	copy(b.pixels, other.pixels)
	b.dirty = true
	return b
}

// FromImage creates a buffer holding the pixels of img.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	b := New(bounds.Dx(), bounds.Dy())
	for y := range b.height {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			s := row[x*4 : x*4+4 : x*4+4]
			b.pixels[x+y*b.width] = RGBA(s[0], s[1], s[2], s[3])
		}
	}
	b.dirty = true
	return b, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
func (b *Buffer) Size() int   { return len(b.pixels) }

// Bounds returns the rectangle (0, 0)-(Width, Height).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Pixels returns the backing slice. Writes through it are not tracked; call
// MarkDirty afterwards.
func (b *Buffer) Pixels() []Pixel {
	return b.pixels
}

// Dirty reports whether the texture is stale.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkDirty flags the texture as stale.
func (b *Buffer) MarkDirty() { b.dirty = true }

// Index maps a flat index into range, wrapping negatives too.
func (b *Buffer) Index(i int) int {
	i %= len(b.pixels)
	if i < 0 {
		i += len(b.pixels)
	}
	return i
}

// GetIndex returns the pixel at flat index i (wrapped).
func (b *Buffer) GetIndex(i int) Pixel {
	return b.pixels[b.Index(i)]
}

// SetIndex writes the pixel at flat index i (wrapped).
func (b *Buffer) SetIndex(i int, p Pixel) {
	b.pixels[b.Index(i)] = p
	b.dirty = true
}

// GetPixel returns the pixel at (x, y). Coordinates outside the buffer wrap
// through the flat index.
func (b *Buffer) GetPixel(x, y int) Pixel {
	return b.GetIndex(x + y*b.width)
}

// SetPixel writes the pixel at (x, y). See GetPixel.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
	b.SetIndex(x+y*b.width, p)
}

// GetFloat returns the pixel at normalized coordinates in [0, 1).
func (b *Buffer) GetFloat(x, y float64) Pixel {
	return b.GetPixel(int(x*float64(b.width)), int(y*float64(b.height)))
}

// SetFloat writes the pixel at normalized coordinates in [0, 1).
func (b *Buffer) SetFloat(x, y float64, p Pixel) {
	b.SetPixel(int(x*float64(b.width)), int(y*float64(b.height)), p)
}

// Clear resets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.pixels)
	b.dirty = true
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p Pixel) {
	for i := range b.pixels {
		b.pixels[i] = p
	}
	b.dirty = true
}

// FlipHorizontal mirrors the columns of every row.
func (b *Buffer) FlipHorizontal() {
	for y := range b.height {
		slices.Reverse(b.pixels[y*b.width : (y+1)*b.width])
	}
	b.dirty = true
}

// FlipBoth reverses the whole pixel sequence (a 180° rotation).
func (b *Buffer) FlipBoth() {
	slices.Reverse(b.pixels)
	b.dirty = true
}

// FlipVertical reverses the row order.
func (b *Buffer) FlipVertical() {
	b.FlipBoth()
	b.FlipHorizontal()
}

// Texture returns the presentable NRGBA image, re-encoding it from the pixels
// first if the buffer is dirty. It returns nil after Dispose.
//
// The returned image is owned by the buffer and is overwritten by the next
// re-encode.
func (b *Buffer) Texture() *image.NRGBA {
	if b.disposed {
		return nil
	}
	if b.dirty {
		b.encode(b.texture)
		b.dirty = false
		xlog.L().Debug("texture re-encoded", "width", b.width, "height", b.height)
	}
	return b.texture
}

// encode writes the pixels into dst in R, G, B, A byte order, alpha
// straight.
func (b *Buffer) encode(dst *image.NRGBA) {
	for i, p := range b.pixels {
		s := dst.Pix[i*4 : i*4+4 : i*4+4]
		s[0], s[1], s[2], s[3] = p[offR], p[offG], p[offB], p[offA]
	}
}

// ToImage returns a fresh copy of the pixels as an image.NRGBA, independent
// of the texture and the dirty flag.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	b.encode(img)
	return img
}

// Scaled returns a new buffer resized to width×height with nearest-neighbor
// sampling. It panics if either dimension is not positive.
func (b *Buffer) Scaled(width, height int) *Buffer {
	out := New(width, height)
	dst := image.NewNRGBA(out.Bounds())
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), b, b.Bounds(), draw.Src, nil)
	for i := range out.pixels {
		s := dst.Pix[i*4 : i*4+4 : i*4+4]
		out.pixels[i] = RGBA(s[0], s[1], s[2], s[3])
	}
	out.dirty = true
	return out
}

// Dispose releases the texture. Calling it more than once has no effect.
func (b *Buffer) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.texture = nil
}

// Disposed reports whether Dispose has been called.
func (b *Buffer) Disposed() bool { return b.disposed }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return Model }

// At implements image.Image. Points outside the bounds return transparent
// black rather than wrapping.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	return b.pixels[x+y*b.width]
}
