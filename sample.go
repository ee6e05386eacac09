package blockquant

import (
	"image"
	"image/color"
)

// BlockFromImage copies the 8x8 region whose top-left corner is (x, y), relative
// to the image bounds. Coordinates past an edge replicate the edge pixel.
func BlockFromImage(img image.Image, x, y int, ch Channel) PixelBlock {
	var b PixelBlock
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			b[row*8+col] = sampleAt(img, x+col, y+row, ch)
		}
	}
	return b
}

// BlockImage wraps a block into an 8x8 grayscale image.
func BlockImage(b PixelBlock) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for row := 0; row < 8; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+8], b[row*8:row*8+8])
	}
	return img
}

func sampleAt(img image.Image, x, y int, ch Channel) uint8 {
	bounds := img.Bounds()
	x += bounds.Min.X
	y += bounds.Min.Y
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	if x >= bounds.Max.X {
		x = bounds.Max.X - 1
	}
	if y >= bounds.Max.Y {
		y = bounds.Max.Y - 1
	}
	return channelValue(img.At(x, y), ch)
}

func channelValue(c color.Color, ch Channel) uint8 {
	if ch == ChannelLuma {
		return color.GrayModel.Convert(c).(color.Gray).Y
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit values in [0, 65535]
	switch ch {
	case ChannelRed:
		return uint8(r >> 8)
	case ChannelGreen:
		return uint8(g >> 8)
	default:
		return uint8(b >> 8)
	}
}
