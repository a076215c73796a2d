package pixel

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// EncodePNG writes the buffer as PNG.
func (b *Buffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.ToImage())
}

// EncodeWebP writes the buffer as lossless WebP.
func (b *Buffer) EncodeWebP(w io.Writer) error {
	return nativewebp.Encode(w, b.ToImage(), nil)
}

// SavePNG saves the buffer as a PNG file.
func (b *Buffer) SavePNG(path string) error {
	return b.save(path, b.EncodePNG)
}

// SaveWebP saves the buffer as a lossless WebP file.
func (b *Buffer) SaveWebP(path string) error {
	return b.save(path, b.EncodeWebP)
}

// Save writes the buffer to path, choosing the format from the extension
// (.png or .webp).
func (b *Buffer) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return b.SavePNG(path)
	case ".webp":
		return b.SaveWebP(path)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func (b *Buffer) save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
