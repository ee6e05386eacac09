package blockquant

import (
	"sync"

	"github.com/vearutop/blockquant/internal/jpegx"
)

// ZigZagToNatural returns the table mapping a zig-zag rank to its natural
// (row-major) index. The result is a copy.
func ZigZagToNatural() [BlockSize]int {
	return jpegx.Unzig()
}

// NaturalToZigZag returns the table mapping a natural (row-major) index to its
// zig-zag rank. The result is a copy.
func NaturalToZigZag() [BlockSize]int {
	return jpegx.Zig()
}

var tablesCache sync.Map // int -> Tables

// BuildQuantizationTables derives the forward and inverse luminance tables for
// quality. Quality is clamped to [1, 100].
func BuildQuantizationTables(quality int) Tables {
	quality = jpegx.ClampQuality(quality)
	inv := jpegx.InverseTable(quality)

	return Tables{
		Quality: quality,
		Forward: jpegx.ForwardTable(inv),
		Inverse: inv,
	}
}

// CachedQuantizationTables is BuildQuantizationTables memoized by clamped quality.
func CachedQuantizationTables(quality int) Tables {
	quality = jpegx.ClampQuality(quality)
	if t, ok := tablesCache.Load(quality); ok {
		return t.(Tables)
	}
	t := BuildQuantizationTables(quality)
	tablesCache.Store(quality, t)
	return t
}

// TablesFromInverse builds a table pair around an arbitrary natural-order
// dequantization table. Entries below 1 are raised to 1.
func TablesFromInverse(inv InverseTable) Tables {
	for i, v := range inv {
		if v < 1 {
			inv[i] = 1
		}
	}
	return Tables{
		Forward: jpegx.ForwardTable(inv),
		Inverse: inv,
	}
}

// ForwardTransform level-shifts a pixel block, applies the 2D DCT and quantizes it.
func ForwardTransform(b PixelBlock, fwd ForwardTable) CoefficientBlock {
	return ForwardTransformShifted(b.Shift(), fwd)
}

// ForwardTransformShifted transforms and quantizes an already level-shifted block.
func ForwardTransformShifted(s ShiftedBlock, fwd ForwardTable) CoefficientBlock {
	in := jpegx.Block(s)
	f := [BlockSize]float64(fwd)

	return CoefficientBlock(jpegx.FDCT(&in, &f))
}

// MaskCoefficients returns a copy of c that keeps only coefficients whose
// zig-zag rank is in [start, end). Both bounds are clamped to [0, 64].
func MaskCoefficients(c CoefficientBlock, start, end int) CoefficientBlock {
	start = clampRank(start)
	end = clampRank(end)

	for k := range c {
		if r := jpegx.Rank(k); r < start || r >= end {
			c[k] = 0
		}
	}
	return c
}

// InverseTransform dequantizes coefficients, applies the integer 2D IDCT and
// returns samples clamped to [0, 255].
func InverseTransform(c CoefficientBlock, inv InverseTable) PixelBlock {
	in := jpegx.Block(c)
	t := [BlockSize]int32(inv)

	return PixelBlock(jpegx.IDCT(&in, &t))
}

// Reconstruct is the inverse transform of the coefficients with zig-zag rank in [start, end).
func Reconstruct(c CoefficientBlock, t Tables, start, end int) PixelBlock {
	return InverseTransform(MaskCoefficients(c, start, end), t.Inverse)
}

func clampRank(r int) int {
	if r < 0 {
		return 0
	}
	if r > maxRank {
		return maxRank
	}
	return r
}
