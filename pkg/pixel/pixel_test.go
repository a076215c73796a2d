package pixel

import (
	"image/color"
	"testing"
)

func TestPixelViewsAlias(t *testing.T) {
	p := RGBA(0x11, 0x22, 0x33, 0x44)

	if got := p.Packed(); got != 0x44112233 {
		t.Errorf("Packed() = %#x, want 0x44112233", got)
	}
	if got := p.Bytes(); string(got) != "\x33\x22\x11\x44" {
		t.Errorf("Bytes() = %x, want 33221144", got)
	}

	p.SetR(0xAA)
	if got := p.Packed(); got != 0x44AA2233 {
		t.Errorf("after SetR, Packed() = %#x, want 0x44AA2233", got)
	}

	p.SetPacked(0x01020304)
	if p.A() != 1 || p.R() != 2 || p.G() != 3 || p.B() != 4 {
		t.Errorf("after SetPacked, channels = %d,%d,%d,%d", p.R(), p.G(), p.B(), p.A())
	}
	if FromPacked(p.Packed()) != p {
		t.Error("FromPacked(Packed()) did not round trip")
	}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want Pixel
	}{
		{"empty is white", nil, RGBA(255, 255, 255, 255)},
		{"two bytes is white", []byte{1, 2}, RGBA(255, 255, 255, 255)},
		{"bgr opaque", []byte{1, 2, 3}, RGBA(3, 2, 1, 255)},
		{"bgra", []byte{1, 2, 3, 4}, RGBA(3, 2, 1, 4)},
		{"extra ignored", []byte{1, 2, 3, 4, 5}, RGBA(3, 2, 1, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromBytes(tt.in); got != tt.want {
				t.Errorf("FromBytes(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if got != RGB(10, 20, 30) {
		t.Errorf("FromColor = %v, want %v", got, RGB(10, 20, 30))
	}

	// Pixel itself round trips through color.Color.
	p := RGBA(200, 100, 50, 128)
	if got := FromColor(color.Color(p)); got != p {
		t.Errorf("FromColor(Pixel) = %v, want %v", got, p)
	}

	n := color.NRGBAModel.Convert(p).(color.NRGBA)
	if n != (color.NRGBA{200, 100, 50, 128}) {
		t.Errorf("Pixel is not straight alpha: %v", n)
	}
}

func TestScaleTruncates(t *testing.T) {
	p := RGBA(200, 100, 3, 7)

	if got := p.Scale(0.5); got != RGBA(100, 50, 1, 255) {
		t.Errorf("Scale(0.5) = %v", got)
	}
	// 200*1.5 = 300 wraps to 44.
	if got := p.Scale(1.5); got.R() != 44 {
		t.Errorf("Scale(1.5).R() = %d, want 44", got.R())
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(RGBA(0, 0, 0, 0), RGBA(0, 0, 200, 0)); got.B() != 100 {
		t.Errorf("Blend blue = %d, want 100", got.B())
	}
	if got := Blend(White, White); got != White {
		t.Errorf("Blend(white, white) = %v, want white", got)
	}
}
