package blockquant

import "math"

// MSE returns the mean squared error between two blocks.
func MSE(a, b PixelBlock) float64 {
	var sum uint32
	for i := range a {
		d := int32(a[i]) - int32(b[i])
		sum += uint32(d * d)
	}
	return float64(sum) / BlockSize
}

// PSNR returns the peak signal-to-noise ratio in dB, +Inf for identical blocks.
func PSNR(a, b PixelBlock) float64 {
	mse := MSE(a, b)
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}
