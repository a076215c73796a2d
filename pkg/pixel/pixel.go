// Package pixel provides the 32-bit color value and the fixed-size pixel
// buffer the rasterizers draw into.
package pixel

import (
	"encoding/binary"
	"image/color"
)

// Pixel is one 32-bit color stored as four bytes in memory order B, G, R, A.
// Read as a little-endian uint32 the same bytes give 0xAARRGGBB.
//
// The zero Pixel is transparent black.
type Pixel [4]byte

// Byte offsets of each channel.
const (
	offB = iota
	offG
	offR
	offA
)

// RGBA creates a pixel from straight (non-premultiplied) channel values.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel{b, g, r, a}
}

// RGB creates an opaque pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel{b, g, r, 0xFF}
}

func (p Pixel) R() uint8 { return p[offR] }
func (p Pixel) G() uint8 { return p[offG] }
func (p Pixel) B() uint8 { return p[offB] }
func (p Pixel) A() uint8 { return p[offA] }

func (p *Pixel) SetR(v uint8) { p[offR] = v }
func (p *Pixel) SetG(v uint8) { p[offG] = v }
func (p *Pixel) SetB(v uint8) { p[offB] = v }
func (p *Pixel) SetA(v uint8) { p[offA] = v }

// Packed returns the pixel as 0xAARRGGBB.
func (p Pixel) Packed() uint32 {
	return binary.LittleEndian.Uint32(p[:])
}

// SetPacked overwrites all four channels from a packed value.
func (p *Pixel) SetPacked(v uint32) {
	binary.LittleEndian.PutUint32(p[:], v)
}

// FromPacked creates a pixel from a packed 0xAARRGGBB value.
func FromPacked(v uint32) Pixel {
	var p Pixel
	p.SetPacked(v)
	return p
}

// Bytes returns a copy of the channels in memory order B, G, R, A.
func (p Pixel) Bytes() []byte {
	return []byte{p[offB], p[offG], p[offR], p[offA]}
}

// SetBytes overwrites the pixel from a B, G, R[, A] byte slice.
// Fewer than three bytes yields opaque white; a missing alpha is 0xFF.
func (p *Pixel) SetBytes(b []byte) {
	*p = Pixel{0xFF, 0xFF, 0xFF, 0xFF}
	if len(b) < 3 {
		return
	}
	p[offB], p[offG], p[offR] = b[0], b[1], b[2]
	if len(b) > 3 {
		p[offA] = b[3]
	}
}

// FromBytes creates a pixel from a B, G, R[, A] byte slice. See SetBytes.
func FromBytes(b []byte) Pixel {
	var p Pixel
	p.SetBytes(b)
	return p
}

// FromColor converts any color.Color to a Pixel with straight alpha.
func FromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{n.B, n.G, n.R, n.A}
}

// NRGBA returns the pixel as a color.NRGBA.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p[offR], G: p[offG], B: p[offB], A: p[offA]}
}

// RGBA implements color.Color. Channels are treated as straight alpha.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.NRGBA().RGBA()
}

// Scale multiplies the color channels by k with byte truncation and forces
// the result opaque. Products outside [0, 255] wrap instead of saturating.
func (p Pixel) Scale(k float64) Pixel {
	return Pixel{
		uint8(int(float64(p[offB]) * k)),
		uint8(int(float64(p[offG]) * k)),
		uint8(int(float64(p[offR]) * k)),
		0xFF,
	}
}

// Blend averages two pixels on their packed values: (a + b) >> 1.
// Low bits carry across channel boundaries, as with the packed add it models.
func Blend(a, b Pixel) Pixel {
	return FromPacked(uint32((uint64(a.Packed()) + uint64(b.Packed())) >> 1))
}

// Model converts any color to a Pixel.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// Premultiply converts straight-alpha R, G, B, A bytes (as in a texture's
// Pix) to premultiplied alpha, reusing dst when it is large enough.
func Premultiply(dst, src []byte) []byte {
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		if a == 0xFF {
			copy(dst[i:i+4], src[i:i+4])
			continue
		}
		dst[i] = uint8((uint32(src[i])*a + 127) / 255)
		dst[i+1] = uint8((uint32(src[i+1])*a + 127) / 255)
		dst[i+2] = uint8((uint32(src[i+2])*a + 127) / 255)
		dst[i+3] = uint8(a)
	}
	return dst
}

// Colors for convenience
var (
	Transparent = Pixel{}
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Gray        = RGB(128, 128, 128)
	Sky         = RGB(135, 206, 235)
)
