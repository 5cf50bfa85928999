package gpu2d

// affineSizeTable maps BGControl.ScreenSize (0..3) to the square background
// size in pixels for affine and extended-tiled modes.
var affineSizeTable = [4]int{128, 256, 512, 1024}

// affineIndex maps a background number (2 or 3) to its AffineParams slot.
func affineIndex(bg int) int { return bg - 2 }

// sampleAffine returns the source (x,y) integer pixel coordinates (the 8.8
// fixed-point position shifted right by 8) for column x on an
// affine-capable background, given the line-start internal
// reference already advanced by AdvanceLine.
func (u *DisplayUnit) sampleAffine(bg int, x int) (int32, int32) {
	idx := affineIndex(bg)
	p := u.Regs.BGAffine[idx]
	ref := u.Line.AffineInternal[idx]
	sx := ref.X + int32(p.A)*int32(x)
	sy := ref.Y + int32(p.C)*int32(x)
	return sx >> 8, sy >> 8
}

// RenderAffineBG draws background bg (2 or 3) in affine mode: a 128..1024
// square, tile-mapped, 256-color, no extended palette, no per-tile flip
// (spec.md §4.1 "Affine mode").
func (u *DisplayUnit) RenderAffineBG(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	size := affineSizeTable[cnt.ScreenSize&3]
	tiles := size / 8

	bgWin := u.VRAM.BGVRAM(u.Num)
	gate := windowMaskBG(bg)
	pal := u.VRAM.Palette(bgPaletteRegion(u.Num))

	for x := 0; x < 256; x++ {
		if u.buf.WindowMask[x]&gate == 0 {
			continue
		}

		sx, sy := u.sampleAffine(bg, x)

		if cnt.Mosaic {
			// Mosaic on affine backgrounds quantizes the screen column
			// before sampling, same table as text mode.
			mx := int(MosaicLookup(u.Regs.BGMosaicSizeX, x))
			sx, sy = u.sampleAffine(bg, mx)
		}

		ix := int32(sx)
		iy := int32(sy)

		if cnt.WrapAround {
			ix = ((ix % int32(size)) + int32(size)) % int32(size)
			iy = ((iy % int32(size)) + int32(size)) % int32(size)
		} else if ix < 0 || iy < 0 || ix >= int32(size) || iy >= int32(size) {
			continue
		}

		tileCol := int(ix) / 8
		tileRow := int(iy) / 8
		inTileX := int(ix) % 8
		inTileY := int(iy) % 8

		mapAddr := cnt.MapBase + uint32(tileRow*tiles+tileCol)
		tileIndex := bgWin.Byte(mapAddr)

		tileAddr := cnt.CharBase + uint32(tileIndex)*64 + uint32(inTileY*8+inTileX)
		colorIdx := bgWin.Byte(tileAddr)
		if colorIdx == 0 {
			continue
		}

		u.buf.DrawPixel(x, ColorFromRGB555(pal[colorIdx]), bg)
	}
}
