package gpu2d

// largeBitmapSizeTable maps BGControl.ScreenSize (0..3) to (width,height)
// for large-bitmap mode (BG mode 6, BG2 only; spec.md §4.1).
var largeBitmapSizeTable = [4][2]int{
	{512, 1024},
	{1024, 512},
	{512, 256},
	{512, 512},
}

// RenderLargeBG draws BG2 in large-bitmap mode: direct 8-bit palette
// indices over one of four large rectangles, sampled the same way as the
// extended paletted bitmap but with its own size table.
func (u *DisplayUnit) RenderLargeBG(line int) {
	const bg = 2
	cnt := u.Regs.BGCnt[bg]
	size := largeBitmapSizeTable[cnt.ScreenSize&3]
	width, height := size[0], size[1]

	bgWin := u.VRAM.BGVRAM(u.Num)
	gate := windowMaskBG(bg)
	pal := u.VRAM.Palette(bgPaletteRegion(u.Num))

	for x := 0; x < 256; x++ {
		if u.buf.WindowMask[x]&gate == 0 {
			continue
		}

		sx, sy := u.sampleAffine(bg, x)
		if cnt.Mosaic {
			mx := int(MosaicLookup(u.Regs.BGMosaicSizeX, x))
			sx, sy = u.sampleAffine(bg, mx)
		}

		ix, iy := int32(sx), int32(sy)
		if cnt.WrapAround {
			ix = ((ix % int32(width)) + int32(width)) % int32(width)
			iy = ((iy % int32(height)) + int32(height)) % int32(height)
		} else if ix < 0 || iy < 0 || ix >= int32(width) || iy >= int32(height) {
			continue
		}

		addr := uint32(int(iy)*width + int(ix))
		colorIdx := bgWin.Byte(addr)
		if colorIdx == 0 {
			continue
		}
		u.buf.DrawPixel(x, ColorFromRGB555(pal[colorIdx]), bg)
	}
}
