package jpegx

// BlockSize is the number of samples in an 8x8 block.
const BlockSize = 64 // A DCT block is 8x8.

// Block holds 64 signed samples or coefficients in natural (row-major) order.
type Block [BlockSize]int32

// unzig maps from the zig-zag ordering to the natural ordering.
var unzig = [BlockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// zig maps from the natural ordering to the zig-zag ordering.
var zig = [BlockSize]int{
	0, 1, 5, 6, 14, 15, 27, 28,
	2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43,
	9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54,
	20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61,
	35, 36, 48, 49, 57, 58, 62, 63,
}

// Unzig returns a copy of the zig-zag to natural ordering.
func Unzig() [BlockSize]int {
	return unzig
}

// Zig returns a copy of the natural to zig-zag ordering.
func Zig() [BlockSize]int {
	return zig
}

// Natural returns the natural index of a zig-zag rank.
func Natural(rank int) int {
	return unzig[rank]
}

// Rank returns the zig-zag rank of a natural index.
func Rank(k int) int {
	return zig[k]
}

// baseLuma is the Annex K luminance quantization table in natural order.
var baseLuma = [BlockSize]int32{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// aanScale holds the per-frequency AAN scale factors, cos(k*pi/16)*sqrt(2) for k > 0.
var aanScale = [8]float64{
	1.0, 1.387039845, 1.306562965, 1.175875602,
	1.0, 0.785694958, 0.541196100, 0.275899379,
}
