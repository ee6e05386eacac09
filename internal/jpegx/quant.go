package jpegx

const (
	minQuality = 1
	maxQuality = 100
)

// ClampQuality maps quality into [1, 100].
func ClampQuality(quality int) int {
	if quality < minQuality {
		return minQuality
	}
	if quality > maxQuality {
		return maxQuality
	}
	return quality
}

// ScaleFactor returns the IJG percentage scale for a quality value.
// Quality 50 yields 100 (the base table as is), quality 100 yields 0.
func ScaleFactor(quality int) int32 {
	quality = ClampQuality(quality)
	if quality < 50 {
		return int32(5000 / quality)
	}
	return int32(200 - quality*2)
}

// InverseTable scales the base luminance table by quality. Entries are clamped
// to [1, 255] and stored in natural order.
func InverseTable(quality int) [BlockSize]int32 {
	sf := ScaleFactor(quality)

	var t [BlockSize]int32
	for i, b := range baseLuma {
		v := (b*sf + 50) / 100
		switch {
		case v < 1:
			v = 1
		case v > 255:
			v = 255
		}
		t[i] = v
	}
	return t
}

// ForwardTable derives the quantizing multipliers for the AAN forward transform
// from an inverse table. The AAN output is scaled by 8*aan[row]*aan[col] so the
// multiplier folds that normalization in.
func ForwardTable(inv [BlockSize]int32) [BlockSize]float64 {
	var f [BlockSize]float64
	k := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			f[k] = 1.0 / (float64(inv[k]) * aanScale[row] * aanScale[col] * 8.0)
			k++
		}
	}
	return f
}
