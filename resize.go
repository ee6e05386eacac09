package blockquant

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling mode.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

// ParseInterpolation resolves an interpolation mode by name.
func ParseInterpolation(s string) (Interpolation, bool) {
	switch s {
	case "nearest", "":
		return InterpolationNearest, true
	case "bilinear":
		return InterpolationBilinear, true
	case "bicubic":
		return InterpolationBicubic, true
	case "mitchell":
		return InterpolationMitchellNetravali, true
	case "lanczos2":
		return InterpolationLanczos2, true
	case "lanczos3":
		return InterpolationLanczos3, true
	default:
		return InterpolationNearest, false
	}
}

func (i Interpolation) function() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// ResizeToBlock downsamples the whole image to 8x8 and reads one channel of it.
func ResizeToBlock(img image.Image, interp Interpolation, ch Channel) PixelBlock {
	small := resize.Resize(8, 8, img, interp.function())
	return BlockFromImage(small, 0, 0, ch)
}

// RenderBlock upscales a block by an integer factor for display.
// Scale below 1 is treated as 1.
func RenderBlock(b PixelBlock, scale int, interp Interpolation) *image.Gray {
	src := BlockImage(b)
	if scale <= 1 {
		return src
	}

	size := uint(8 * scale)
	out := resize.Resize(size, size, src, interp.function())
	if g, ok := out.(*image.Gray); ok {
		return g
	}

	// Resize keeps the gray model for gray input, this is a fallback.
	bounds := out.Bounds()
	g := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			g.SetGray(x, y, color.GrayModel.Convert(out.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray))
		}
	}
	return g
}
