package pixel

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps a lowercase file extension to its decoder.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".tga":  tga.Decode,
	".webp": nativewebp.DecodeIgnoreAlphaFlag,
}

// Extensions lists the image file extensions Load understands, in the order
// companion assets are searched for.
var Extensions = []string{".png", ".tga", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}

// magics identifies formats by their leading bytes. TGA has no magic number
// and is the fallback when nothing matches.
var magics = []struct {
	prefix []byte
	decode decodeFunc
}{
	{[]byte("\x89PNG\r\n\x1a\n"), png.Decode},
	{[]byte("\xff\xd8"), jpeg.Decode},
	{[]byte("BM"), bmp.Decode},
	{[]byte("II*\x00"), tiff.Decode},
	{[]byte("MM\x00*"), tiff.Decode},
	{[]byte("RIFF"), nativewebp.DecodeIgnoreAlphaFlag},
}

func sniff(head []byte) decodeFunc {
	for _, m := range magics {
		if bytes.HasPrefix(head, m.prefix) {
			return m.decode
		}
	}
	return tga.Decode
}

// Decode reads a PNG, JPEG, BMP, TIFF, WebP or TGA image and converts it to a
// Buffer.
func Decode(r io.Reader) (*Buffer, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(8)
	img, err := sniff(head)(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// Load opens an image file and converts it to a Buffer. The decoder is chosen
// by extension; unknown extensions fall back to the leading bytes.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Decode(f)
	}

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(img)
}
