package blockquant_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/blockquant"
)

func flatBlock(v uint8) blockquant.PixelBlock {
	var b blockquant.PixelBlock
	for i := range b {
		b[i] = v
	}
	return b
}

func gradientBlock() blockquant.PixelBlock {
	var b blockquant.PixelBlock
	for i := range b {
		b[i] = uint8(i * 4)
	}
	return b
}

func checkerBlock() blockquant.PixelBlock {
	var b blockquant.PixelBlock
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if (row+col)%2 == 1 {
				b[row*8+col] = 255
			}
		}
	}
	return b
}

func isUniform(b blockquant.PixelBlock) bool {
	for _, v := range b {
		if v != b[0] {
			return false
		}
	}
	return true
}

func TestZigZagTables(t *testing.T) {
	unzig := blockquant.ZigZagToNatural()
	zig := blockquant.NaturalToZigZag()
	for k := 0; k < blockquant.BlockSize; k++ {
		assert.Equal(t, k, zig[unzig[k]])
		assert.Equal(t, k, unzig[zig[k]])
	}
	assert.Equal(t, []int{0, 1, 8, 16, 9, 2}, unzig[:6])
	assert.Equal(t, 63, unzig[63])
}

func TestZigZagTables_copy(t *testing.T) {
	tb := blockquant.BuildQuantizationTables(50)
	c := blockquant.ForwardTransform(gradientBlock(), tb.Forward)
	require.NotZero(t, c[8])

	zig := blockquant.NaturalToZigZag()
	zig[8] = 0
	unzig := blockquant.ZigZagToNatural()
	unzig[0] = 8

	assert.Equal(t, 2, blockquant.NaturalToZigZag()[8])
	assert.Equal(t, 0, blockquant.ZigZagToNatural()[0])

	dc := blockquant.MaskCoefficients(c, 0, 1)
	assert.Equal(t, 1, dc.NonZero())
	assert.Equal(t, int32(0), dc[8])

	s := blockquant.NewSession(gradientBlock(), func(o *blockquant.SessionOptions) {
		o.Quality = 50
	})
	assert.Equal(t, 0, s.Phases()[0].Natural)
}

func TestBuildQuantizationTables_clamp(t *testing.T) {
	assert.Equal(t, blockquant.BuildQuantizationTables(1), blockquant.BuildQuantizationTables(0))
	assert.Equal(t, blockquant.BuildQuantizationTables(1), blockquant.BuildQuantizationTables(-40))
	assert.Equal(t, blockquant.BuildQuantizationTables(100), blockquant.BuildQuantizationTables(101))
	assert.Equal(t, 1, blockquant.BuildQuantizationTables(0).Quality)
	assert.Equal(t, 100, blockquant.BuildQuantizationTables(1000).Quality)

	for _, q := range []int{0, 1, 100} {
		for _, f := range blockquant.BuildQuantizationTables(q).Forward {
			assert.False(t, f <= 0 || math.IsNaN(f) || math.IsInf(f, 0), "forward multiplier must be finite and positive")
		}
	}
}

func TestCachedQuantizationTables(t *testing.T) {
	for _, q := range []int{-1, 1, 37, 50, 99, 100, 200} {
		assert.Equal(t, blockquant.BuildQuantizationTables(q), blockquant.CachedQuantizationTables(q))
	}
}

func TestQualitySweep(t *testing.T) {
	t10 := blockquant.BuildQuantizationTables(10)
	t50 := blockquant.BuildQuantizationTables(50)
	t90 := blockquant.BuildQuantizationTables(90)

	// High frequency ranks are coarser at low quality.
	unzig := blockquant.ZigZagToNatural()
	for rank := 32; rank < blockquant.BlockSize; rank++ {
		k := unzig[rank]
		assert.Greater(t, t10.Inverse[k], t90.Inverse[k], "rank %d", rank)
		assert.GreaterOrEqual(t, t10.Inverse[k], t50.Inverse[k], "rank %d", rank)
		assert.Greater(t, t50.Inverse[k], t90.Inverse[k], "rank %d", rank)
	}

	b := checkerBlock()
	c10 := blockquant.ForwardTransform(b, t10.Forward)
	c50 := blockquant.ForwardTransform(b, t50.Forward)
	c90 := blockquant.ForwardTransform(b, t90.Forward)

	assert.Equal(t, int32(-3), c10[63])
	assert.Equal(t, int32(-8), c50[63])
	assert.Equal(t, int32(-42), c90[63])
	assert.Less(t, c10.NonZero(), c50.NonZero())
	assert.LessOrEqual(t, c50.NonZero(), c90.NonZero())

	assert.Greater(t, blockquant.PSNR(b, blockquant.InverseTransform(c90, t90.Inverse)),
		blockquant.PSNR(b, blockquant.InverseTransform(c10, t10.Inverse)))
}

func TestForwardTransform_shiftedInput(t *testing.T) {
	tb := blockquant.BuildQuantizationTables(75)
	b := gradientBlock()

	assert.Equal(t, blockquant.ForwardTransform(b, tb.Forward), blockquant.ForwardTransformShifted(b.Shift(), tb.Forward))
	assert.Equal(t, int32(-128), b.Shift()[0])
	assert.Equal(t, int32(124), b.Shift()[63])
}

func TestRoundTrip_flat(t *testing.T) {
	for q := 1; q <= 100; q++ {
		tb := blockquant.BuildQuantizationTables(q)
		c := blockquant.ForwardTransform(flatBlock(128), tb.Forward)
		assert.Equal(t, 0, c.NonZero())
		require.Equal(t, flatBlock(128), blockquant.InverseTransform(c, tb.Inverse), "quality %d", q)
	}

	tb := blockquant.BuildQuantizationTables(100)
	for v := 0; v < 256; v++ {
		c := blockquant.ForwardTransform(flatBlock(uint8(v)), tb.Forward)
		require.Equal(t, flatBlock(uint8(v)), blockquant.InverseTransform(c, tb.Inverse), "value %d", v)
	}
}

func TestRoundTrip_flatIsUniform(t *testing.T) {
	for _, q := range []int{1, 10, 33, 50, 75, 100} {
		tb := blockquant.BuildQuantizationTables(q)
		for v := 0; v < 256; v += 5 {
			c := blockquant.ForwardTransform(flatBlock(uint8(v)), tb.Forward)
			assert.True(t, isUniform(blockquant.InverseTransform(c, tb.Inverse)), "quality %d value %d", q, v)
		}
	}
}

func TestInverseTransform_clamp(t *testing.T) {
	tb := blockquant.BuildQuantizationTables(50)

	var c blockquant.CoefficientBlock
	c[0] = 10000
	assert.Equal(t, flatBlock(255), blockquant.InverseTransform(c, tb.Inverse))

	c[0] = -10000
	assert.Equal(t, flatBlock(0), blockquant.InverseTransform(c, tb.Inverse))
}

func TestMaskCoefficients(t *testing.T) {
	tb := blockquant.BuildQuantizationTables(100)
	c := blockquant.ForwardTransform(checkerBlock(), tb.Forward)
	orig := c
	zig := blockquant.NaturalToZigZag()

	assert.Equal(t, c, blockquant.MaskCoefficients(c, 0, 64))
	assert.Equal(t, c, blockquant.MaskCoefficients(c, -10, 100))
	assert.Equal(t, orig, c, "input must not be modified")

	assert.Equal(t, blockquant.CoefficientBlock{}, blockquant.MaskCoefficients(c, 10, 10))
	assert.Equal(t, blockquant.CoefficientBlock{}, blockquant.MaskCoefficients(c, 64, 70))
	assert.Equal(t, blockquant.CoefficientBlock{}, blockquant.MaskCoefficients(c, 20, 5))

	single := blockquant.MaskCoefficients(c, 63, 64)
	assert.Equal(t, c[63], single[63])
	assert.LessOrEqual(t, single.NonZero(), 1)

	for n := 0; n < blockquant.BlockSize; n++ {
		prev := blockquant.MaskCoefficients(c, 0, n)
		next := blockquant.MaskCoefficients(c, 0, n+1)
		changed := 0
		for k := range next {
			if prev[k] != next[k] {
				changed++
				assert.Equal(t, n, zig[k])
			}
		}
		assert.LessOrEqual(t, changed, 1)
		assert.GreaterOrEqual(t, next.NonZero(), prev.NonZero())
	}
}

func TestReconstruct_dcOnly(t *testing.T) {
	for _, q := range []int{10, 50, 90} {
		tb := blockquant.BuildQuantizationTables(q)
		for _, b := range []blockquant.PixelBlock{gradientBlock(), checkerBlock()} {
			c := blockquant.ForwardTransform(b, tb.Forward)
			assert.True(t, isUniform(blockquant.Reconstruct(c, tb, 0, 1)), "quality %d", q)
		}
	}

	tb := blockquant.BuildQuantizationTables(50)
	c := blockquant.ForwardTransform(gradientBlock(), tb.Forward)
	assert.Equal(t, flatBlock(126), blockquant.Reconstruct(c, tb, 0, 1))
	// The coefficient at rank 3 quantized to zero.
	assert.Equal(t, flatBlock(128), blockquant.Reconstruct(c, tb, 3, 4))
}

func TestReconstruct_partial(t *testing.T) {
	tb := blockquant.BuildQuantizationTables(50)
	c := blockquant.ForwardTransform(gradientBlock(), tb.Forward)

	assert.Equal(t, blockquant.PixelBlock{
		11, 13, 17, 21, 27, 32, 35, 37,
		26, 28, 32, 37, 42, 47, 51, 53,
		55, 57, 61, 66, 71, 76, 80, 82,
		92, 95, 98, 103, 108, 113, 117, 119,
		133, 135, 139, 144, 149, 154, 158, 160,
		170, 173, 176, 181, 186, 191, 195, 197,
		199, 201, 205, 210, 215, 220, 224, 226,
		215, 217, 220, 225, 231, 236, 239, 241,
	}, blockquant.Reconstruct(c, tb, 0, 3))
}

func TestDeterminism(t *testing.T) {
	run := func() blockquant.PixelBlock {
		tb := blockquant.BuildQuantizationTables(42)
		c := blockquant.ForwardTransform(checkerBlock(), tb.Forward)
		return blockquant.InverseTransform(blockquant.MaskCoefficients(c, 0, 20), tb.Inverse)
	}
	assert.Equal(t, run(), run())
}

func TestBlockFromSlice(t *testing.T) {
	_, err := blockquant.PixelBlockFromSlice(make([]uint8, 63))
	assert.Error(t, err)

	_, err = blockquant.CoefficientBlockFromSlice(make([]int32, 65))
	assert.Error(t, err)

	src := make([]uint8, 64)
	src[9] = 7
	b, err := blockquant.PixelBlockFromSlice(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), b.At(1, 1))

	cs := make([]int32, 64)
	cs[8] = -3
	c, err := blockquant.CoefficientBlockFromSlice(cs)
	require.NoError(t, err)
	assert.Equal(t, int32(-3), c.At(1, 0))
}

func TestTablesFromInverse(t *testing.T) {
	var inv blockquant.InverseTable
	inv[5] = 4
	tb := blockquant.TablesFromInverse(inv)

	assert.Equal(t, int32(1), tb.Inverse[0])
	assert.Equal(t, int32(4), tb.Inverse[5])
	assert.Equal(t, 0, tb.Quality)
	assert.Equal(t, blockquant.BuildQuantizationTables(100).Forward[0], tb.Forward[0])
}
