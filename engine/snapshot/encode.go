package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image encoding.
type Format int

const (
	// FormatWebP encodes lossless WebP.
	FormatWebP Format = iota
	// FormatPNG encodes PNG.
	FormatPNG
	// FormatTGA encodes uncompressed Truevision TGA.
	FormatTGA
)

func (f Format) String() string {
	switch f {
	case FormatWebP:
		return "webp"
	case FormatPNG:
		return "png"
	case FormatTGA:
		return "tga"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the encoding from a file extension (case-insensitive).
//
// Parameters:
//   - path: the output path
//
// Returns:
//   - Format: the matching format
//   - error: an error naming the extension if it is not .webp, .png or .tga
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp":
		return FormatWebP, nil
	case ".png":
		return FormatPNG, nil
	case ".tga":
		return FormatTGA, nil
	default:
		return 0, fmt.Errorf("unsupported snapshot extension %q (want .webp, .png or .tga)", ext)
	}
}

// Encode writes img to w in the given format.
//
// Parameters:
//   - w: the destination
//   - img: the image to encode
//   - format: the encoding
//
// Returns:
//   - error: the encoder's error, wrapped with the format name
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("unknown snapshot format %v", format)
	}
	if err != nil {
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return nil
}

// WriteFile encodes img to path, choosing the format from the extension.
//
// Parameters:
//   - path: the output file
//   - img: the image to write
//
// Returns:
//   - error: an error if the extension is unsupported, the file cannot be created, or encoding fails
func WriteFile(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
