package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/asset-resizer/internal/model"
)

// Format is an output encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// JPEG quality bounds
const (
	MinJPEGQuality     = 1
	MaxJPEGQuality     = 100
	DefaultJPEGQuality = 90
)

// FormatForPath picks the encoding from the source extension. Only an exact
// "png" extension keeps PNG; everything else is written as JPEG.
func FormatForPath(path string) Format {
	if strings.TrimPrefix(filepath.Ext(path), ".") == "png" {
		return FormatPNG
	}
	return FormatJPEG
}

// Decode reads an image file and returns it with its natural size
func Decode(path string) (image.Image, model.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.Size{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, model.Size{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	b := img.Bounds()
	return img, model.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, nil
}

// Encoder writes images in PNG or JPEG
type Encoder struct {
	jpegQuality int
	png         png.Encoder
}

// NewEncoder creates an encoder; quality is clamped to 1..100
func NewEncoder(jpegQuality int) *Encoder {
	if jpegQuality < MinJPEGQuality {
		jpegQuality = MinJPEGQuality
	}
	if jpegQuality > MaxJPEGQuality {
		jpegQuality = MaxJPEGQuality
	}
	return &Encoder{jpegQuality: jpegQuality}
}

// JPEGQuality returns the effective JPEG quality
func (e *Encoder) JPEGQuality() int {
	return e.jpegQuality
}

// Encode writes img to w in the given format
func (e *Encoder) Encode(w io.Writer, img image.Image, format Format) error {
	if format == FormatPNG {
		return e.png.Encode(w, img)
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: e.jpegQuality})
}
