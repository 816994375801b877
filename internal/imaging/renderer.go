package imaging

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation names a resampling kernel
type Interpolation string

const (
	InterpolationCatmullRom     Interpolation = "catmullrom"
	InterpolationBiLinear       Interpolation = "bilinear"
	InterpolationApproxBiLinear Interpolation = "approxbilinear"
	InterpolationNearest        Interpolation = "nearest"
	InterpolationLanczos2       Interpolation = "lanczos2"
	InterpolationLanczos3       Interpolation = "lanczos3"
	InterpolationBicubic        Interpolation = "bicubic"
	InterpolationMitchell       Interpolation = "mitchell"

	DefaultInterpolation = InterpolationCatmullRom
)

// x/image/draw kernels
var drawKernels = map[Interpolation]draw.Interpolator{
	InterpolationCatmullRom:     draw.CatmullRom,
	InterpolationBiLinear:       draw.BiLinear,
	InterpolationApproxBiLinear: draw.ApproxBiLinear,
	InterpolationNearest:        draw.NearestNeighbor,
}

// nfnt/resize kernels
var resizeKernels = map[Interpolation]resize.InterpolationFunction{
	InterpolationLanczos2: resize.Lanczos2,
	InterpolationLanczos3: resize.Lanczos3,
	InterpolationBicubic:  resize.Bicubic,
	InterpolationMitchell: resize.MitchellNetravali,
}

// Interpolations returns every supported interpolation name
func Interpolations() []Interpolation {
	return []Interpolation{
		InterpolationCatmullRom,
		InterpolationBiLinear,
		InterpolationApproxBiLinear,
		InterpolationNearest,
		InterpolationLanczos2,
		InterpolationLanczos3,
		InterpolationBicubic,
		InterpolationMitchell,
	}
}

// Renderer resamples an image to fill an exact pixel size
type Renderer interface {
	Render(src image.Image, width, height int) image.Image
}

// NewRenderer returns the renderer for an interpolation name
func NewRenderer(name Interpolation) (Renderer, error) {
	if name == "" {
		name = DefaultInterpolation
	}
	if k, ok := drawKernels[name]; ok {
		return &drawRenderer{kernel: k}, nil
	}
	if k, ok := resizeKernels[name]; ok {
		return &resizeRenderer{kernel: k}, nil
	}
	return nil, fmt.Errorf("unknown interpolation: %s", name)
}

type drawRenderer struct {
	kernel draw.Interpolator
}

func (r *drawRenderer) Render(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r.kernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

type resizeRenderer struct {
	kernel resize.InterpolationFunction
}

func (r *resizeRenderer) Render(src image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), src, r.kernel)
}
