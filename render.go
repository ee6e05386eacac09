package blockquant

import (
	"image"
	"image/color"
	"image/draw"
)

const sheetGap = 2

// ContactSheet lays out the source block and its reconstruction side by side,
// followed by an 8x8 grid of per-rank contributions in zig-zag order. Ranks past
// the phase are blended halfway toward white.
func ContactSheet(s *Session, scale int, interp Interpolation) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	tile := 8 * scale
	gridScale := scale / 4
	if gridScale < 1 {
		gridScale = 1
	}
	tileGrid := 8 * gridScale

	gridW := 8*tileGrid + 7*sheetGap
	headW := 2*tile + sheetGap
	w := gridW
	if headW > w {
		w = headW
	}
	h := tile + 2*sheetGap + 8*tileGrid + 7*sheetGap

	sheet := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)

	put := func(img *image.Gray, x, y int) {
		draw.Draw(sheet, img.Bounds().Add(image.Pt(x, y)), img, img.Bounds().Min, draw.Src)
	}
	put(RenderBlock(s.Block(), scale, interp), 0, 0)
	put(RenderBlock(s.Reconstruction(), scale, interp), tile+sheetGap, 0)

	top := tile + 2*sheetGap
	for _, v := range s.Phases() {
		b := v.Block
		if !v.Active {
			b = dim(b)
		}
		x := (v.Rank % 8) * (tileGrid + sheetGap)
		y := top + (v.Rank/8)*(tileGrid+sheetGap)
		put(RenderBlock(b, gridScale, InterpolationNearest), x, y)
	}
	return sheet
}

func dim(b PixelBlock) PixelBlock {
	for i, v := range b {
		b[i] = uint8((int(v) + 0xff + 1) / 2)
	}
	return b
}
