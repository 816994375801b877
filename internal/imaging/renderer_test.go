package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestNewRenderer_AllInterpolations(t *testing.T) {
	src := gradient(90, 60)

	for _, name := range Interpolations() {
		r, err := NewRenderer(name)
		if err != nil {
			t.Fatalf("NewRenderer(%s) returned error: %v", name, err)
		}

		for _, size := range [][2]int{{30, 20}, {45, 30}, {90, 60}, {180, 120}, {1, 1}} {
			out := r.Render(src, size[0], size[1])
			b := out.Bounds()
			if b.Dx() != size[0] || b.Dy() != size[1] {
				t.Errorf("%s: Render to %dx%d produced %dx%d", name, size[0], size[1], b.Dx(), b.Dy())
			}
		}
	}
}

func TestNewRenderer_DefaultAndUnknown(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("Expected default renderer, got error: %v", err)
	}
	if _, ok := r.(*drawRenderer); !ok {
		t.Errorf("Expected default renderer to use x/image/draw, got %T", r)
	}

	if _, err := NewRenderer("sinc"); err == nil {
		t.Error("Expected error for unknown interpolation, got nil")
	}
}

func TestRender_Deterministic(t *testing.T) {
	src := gradient(64, 48)

	for _, name := range []Interpolation{InterpolationCatmullRom, InterpolationLanczos3} {
		r, _ := NewRenderer(name)

		var a, b bytes.Buffer
		enc := NewEncoder(DefaultJPEGQuality)
		if err := enc.Encode(&a, r.Render(src, 21, 16), FormatPNG); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if err := enc.Encode(&b, r.Render(src, 21, 16), FormatPNG); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("%s: two renders of the same input differ", name)
		}
	}
}

func TestRender_SolidColorPreserved(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	fill := color.RGBA{R: 200, G: 10, B: 30, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			src.SetRGBA(x, y, fill)
		}
	}

	r, _ := NewRenderer(InterpolationNearest)
	out := r.Render(src, 13, 13)

	got := color.RGBAModel.Convert(out.At(6, 6)).(color.RGBA)
	if got != fill {
		t.Errorf("Expected center pixel %v, got %v", fill, got)
	}
}
