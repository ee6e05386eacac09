package blockquant

import "fmt"

// PixelBlock stores 8x8 unsigned samples in row-major order.
type PixelBlock [BlockSize]uint8

// ShiftedBlock stores level-shifted samples in [-128, 127], row-major.
type ShiftedBlock [BlockSize]int32

// CoefficientBlock stores quantized DCT coefficients in natural (row-major) order.
type CoefficientBlock [BlockSize]int32

// ForwardTable holds the multipliers that quantize AAN transform output, natural order.
type ForwardTable [BlockSize]float64

// InverseTable holds the dequantization multipliers, natural order.
type InverseTable [BlockSize]int32

// Tables is a matched forward/inverse quantization pair.
type Tables struct {
	// Quality the tables were built for, 0 when they come from an external source.
	Quality int          `json:"quality"`
	Forward ForwardTable `json:"forward"`
	Inverse InverseTable `json:"inverse"`
}

// Channel selects which component of a color image feeds a pixel block.
type Channel int

const (
	// ChannelLuma uses the Rec. 601 luma of each pixel.
	ChannelLuma Channel = iota
	// ChannelRed uses the red component.
	ChannelRed
	// ChannelGreen uses the green component.
	ChannelGreen
	// ChannelBlue uses the blue component.
	ChannelBlue
)

// ParseChannel resolves a channel by name.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "", "luma", "y", "gray":
		return ChannelLuma, nil
	case "red", "r":
		return ChannelRed, nil
	case "green", "g":
		return ChannelGreen, nil
	case "blue", "b":
		return ChannelBlue, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", s)
	}
}

// PixelBlockFromSlice copies exactly 64 samples into a PixelBlock.
func PixelBlockFromSlice(s []uint8) (PixelBlock, error) {
	var b PixelBlock
	if len(s) != BlockSize {
		return b, fmt.Errorf("pixel block needs %d samples, got %d", BlockSize, len(s))
	}
	copy(b[:], s)
	return b, nil
}

// CoefficientBlockFromSlice copies exactly 64 coefficients into a CoefficientBlock.
func CoefficientBlockFromSlice(s []int32) (CoefficientBlock, error) {
	var b CoefficientBlock
	if len(s) != BlockSize {
		return b, fmt.Errorf("coefficient block needs %d values, got %d", BlockSize, len(s))
	}
	copy(b[:], s)
	return b, nil
}

// Shift level-shifts the samples into the signed range expected by the forward transform.
func (b PixelBlock) Shift() ShiftedBlock {
	var s ShiftedBlock
	for i, v := range b {
		s[i] = int32(v) - levelShift
	}
	return s
}

// At returns the sample at row and column.
func (b PixelBlock) At(row, col int) uint8 {
	return b[row*8+col]
}

// At returns the coefficient at row and column.
func (c CoefficientBlock) At(row, col int) int32 {
	return c[row*8+col]
}

// NonZero counts non-zero coefficients.
func (c CoefficientBlock) NonZero() int {
	n := 0
	for _, v := range c {
		if v != 0 {
			n++
		}
	}
	return n
}
