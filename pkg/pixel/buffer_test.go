package pixel

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestNewDimensions(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {5, 1}, {3, 7}, {64, 48}} {
		w, h := dim[0], dim[1]
		b := New(w, h)
		if b.Width() != w || b.Height() != h || b.Size() != w*h {
			t.Errorf("New(%d,%d): got %dx%d size %d", w, h, b.Width(), b.Height(), b.Size())
		}
		if len(b.Pixels()) != w*h {
			t.Errorf("New(%d,%d): %d pixels", w, h, len(b.Pixels()))
		}
		for i, p := range b.Pixels() {
			if p != Transparent {
				t.Fatalf("pixel %d = %v, want transparent", i, p)
			}
		}
		if b.Dirty() {
			t.Error("new buffer should not be dirty")
		}
	}
}

func TestNewPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0, 4) did not panic")
		}
	}()
	New(0, 4)
}

func TestSetGetRoundTrip(t *testing.T) {
	b := New(8, 4)
	c := RGBA(1, 2, 3, 4)

	b.SetPixel(5, 2, c)
	if got := b.GetPixel(5, 2); got != c {
		t.Errorf("GetPixel = %v, want %v", got, c)
	}
	if got := b.GetIndex(5 + 2*8); got != c {
		t.Errorf("GetIndex = %v, want %v", got, c)
	}

	b.SetFloat(0.25, 0.75, c)
	if got := b.GetFloat(0.25, 0.75); got != c {
		t.Errorf("GetFloat = %v, want %v", got, c)
	}
	if got := b.GetPixel(2, 3); got != c {
		t.Errorf("float (0.25, 0.75) should map to (2, 3), got %v", got)
	}
}

func TestIndexWraps(t *testing.T) {
	b := New(4, 3)
	for i := range b.Size() {
		b.SetIndex(i, RGBA(uint8(i), 0, 0, 255))
	}
	for i := range b.Size() {
		if b.GetIndex(i) != b.GetIndex(i+b.Size()) {
			t.Errorf("index %d and %d differ", i, i+b.Size())
		}
		if b.GetIndex(i) != b.GetIndex(i-b.Size()) {
			t.Errorf("index %d and %d differ", i, i-b.Size())
		}
	}
	// (4, 0) is one past the first row and lands on (0, 1).
	if b.GetPixel(4, 0) != b.GetPixel(0, 1) {
		t.Error("x overflow should wrap into the next row")
	}
}

func fillPattern(b *Buffer) {
	for i := range b.Size() {
		b.SetIndex(i, RGBA(uint8(i), uint8(i*3), uint8(i*7), 255))
	}
}

func TestFlipsAreInvolutions(t *testing.T) {
	flips := map[string]func(*Buffer){
		"horizontal": (*Buffer).FlipHorizontal,
		"vertical":   (*Buffer).FlipVertical,
		"both":       (*Buffer).FlipBoth,
	}
	for name, flip := range flips {
		t.Run(name, func(t *testing.T) {
			b := New(5, 3)
			fillPattern(b)
			orig := Copy(b)

			flip(b)
			flip(b)
			for i := range b.Size() {
				if b.GetIndex(i) != orig.GetIndex(i) {
					t.Fatalf("pixel %d changed after double flip", i)
				}
			}
		})
	}
}

func TestFlipGeometry(t *testing.T) {
	b := New(3, 2)
	fillPattern(b)
	orig := Copy(b)

	b.FlipHorizontal()
	if b.GetPixel(0, 1) != orig.GetPixel(2, 1) {
		t.Error("FlipHorizontal did not mirror columns")
	}

	b = Copy(orig)
	b.FlipVertical()
	for x := range 3 {
		if b.GetPixel(x, 0) != orig.GetPixel(x, 1) {
			t.Errorf("FlipVertical column %d not swapped", x)
		}
	}

	b = Copy(orig)
	b.FlipBoth()
	if b.GetPixel(0, 0) != orig.GetPixel(2, 1) {
		t.Error("FlipBoth did not rotate 180°")
	}
}

func TestClearAndFill(t *testing.T) {
	b := New(3, 3)
	b.Fill(Red)
	for _, p := range b.Pixels() {
		if p != Red {
			t.Fatalf("Fill left %v", p)
		}
	}
	if !b.Dirty() {
		t.Error("Fill should mark dirty")
	}

	b.Texture()
	b.Clear()
	if !b.Dirty() {
		t.Error("Clear should mark dirty")
	}
	for _, p := range b.Pixels() {
		if p != Transparent {
			t.Fatalf("Clear left %v", p)
		}
	}
}

func TestTextureLazyReencode(t *testing.T) {
	b := New(2, 2)
	b.SetPixel(1, 0, RGBA(10, 20, 30, 40))
	if !b.Dirty() {
		t.Fatal("SetPixel should mark dirty")
	}

	tex := b.Texture()
	if b.Dirty() {
		t.Error("Texture should clear the dirty flag")
	}
	off := tex.PixOffset(1, 0)
	if got := tex.Pix[off : off+4]; !bytes.Equal(got, []byte{10, 20, 30, 40}) {
		t.Errorf("texture bytes = %v, want [10 20 30 40]", got)
	}

	// Untracked writes are invisible until MarkDirty.
	b.Pixels()[0] = White
	if tex.Pix[0] != 0 {
		t.Error("texture changed without re-encode")
	}
	b.MarkDirty()
	if b.Texture().Pix[0] != 255 {
		t.Error("texture not refreshed after MarkDirty")
	}
}

func TestPremultiply(t *testing.T) {
	src := []byte{
		200, 100, 50, 128,
		1, 2, 3, 255,
		90, 90, 90, 0,
	}
	got := Premultiply(nil, src)
	want := []byte{
		100, 50, 25, 128,
		1, 2, 3, 255,
		0, 0, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Premultiply = %v, want %v", got, want)
	}

	// A large enough dst is reused.
	dst := make([]byte, 0, 16)
	if out := Premultiply(dst, src); &out[0] != &dst[:1][0] {
		t.Error("Premultiply allocated despite spare capacity")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	b := New(2, 2)
	b.Dispose()
	b.Dispose()
	if !b.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
	if b.Texture() != nil {
		t.Error("Texture() after Dispose should be nil")
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 12))
	src.Set(11, 11, color.RGBA{255, 0, 0, 255})

	b, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", b.Width(), b.Height())
	}
	if got := b.GetPixel(1, 1); got != Red {
		t.Errorf("pixel (1,1) = %v, want red", got)
	}

	if _, err := FromImage(image.NewRGBA(image.Rectangle{})); err != ErrEmptyImage {
		t.Errorf("empty image err = %v, want ErrEmptyImage", err)
	}
}

func TestBufferIsImage(t *testing.T) {
	b := New(2, 2)
	b.SetPixel(0, 1, Blue)

	var img image.Image = b
	if got := FromColor(img.At(0, 1)); got != Blue {
		t.Errorf("At(0,1) = %v, want blue", got)
	}
	if got := img.At(5, 5); got != Transparent {
		t.Errorf("At out of bounds = %v, want transparent", got)
	}
}

func TestScaled(t *testing.T) {
	b := NewChecker(2, 2, 1, Black, White)
	s := b.Scaled(4, 4)
	if s.GetPixel(1, 1) != Black || s.GetPixel(2, 0) != White || s.GetPixel(3, 3) != Black {
		t.Error("nearest-neighbor upscale mismatch")
	}
}

func TestChecker(t *testing.T) {
	b := NewChecker(4, 4, 2, Red, Blue)
	tests := []struct {
		x, y int
		want Pixel
	}{
		{0, 0, Red}, {1, 1, Red}, {2, 0, Blue}, {0, 2, Blue}, {3, 3, Red},
	}
	for _, tt := range tests {
		if got := b.GetPixel(tt.x, tt.y); got != tt.want {
			t.Errorf("checker (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := New(4, 3)
	fillPattern(b)

	formats := []string{"out.png", "out.webp"}
	for _, name := range formats {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := b.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Width() != 4 || got.Height() != 3 {
				t.Fatalf("size = %dx%d", got.Width(), got.Height())
			}
			for i := range b.Size() {
				if got.GetIndex(i) != b.GetIndex(i) {
					t.Fatalf("pixel %d = %v, want %v", i, got.GetIndex(i), b.GetIndex(i))
				}
			}
		})
	}
}

func TestEncodePNGKeepsStraightAlpha(t *testing.T) {
	b := New(3, 1)
	tests := []Pixel{
		RGBA(200, 100, 50, 128),
		RGBA(10, 250, 90, 1),
		RGBA(255, 255, 255, 254),
	}
	for i, p := range tests {
		b.SetIndex(i, p)
	}

	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, want := range tests {
		if got.GetIndex(i) != want {
			t.Errorf("pixel %d = %v, want %v", i, got.GetIndex(i), want)
		}
	}
}

func TestDecodeSniffsPNG(t *testing.T) {
	b := New(2, 2)
	b.Fill(Green)

	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.GetPixel(1, 1) != Green {
		t.Errorf("decoded pixel = %v, want green", got.GetPixel(1, 1))
	}
}

func TestSaveUnsupported(t *testing.T) {
	if err := New(1, 1).Save(filepath.Join(t.TempDir(), "x.gif")); err == nil {
		t.Error("Save(.gif) should fail")
	}
}

func BenchmarkTexture(b *testing.B) {
	buf := New(320, 240)
	for b.Loop() {
		buf.MarkDirty()
		_ = buf.Texture()
	}
}
