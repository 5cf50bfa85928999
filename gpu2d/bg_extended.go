package gpu2d

// extBitmapSizeTable maps BGControl.ScreenSize (0..3) to (width,height) for
// the extended 256-color bitmap sub-variant.
var extBitmapSizeTable = [4][2]int{
	{128, 128},
	{256, 256},
	{512, 256},
	{512, 512},
}

// extDirectBitmapSizeTable is the same, for the direct-color bitmap
// sub-variant (spec.md §4.1 lists the same four sizes).
var extDirectBitmapSizeTable = extBitmapSizeTable

// RenderExtendedBG dispatches to one of the three extended-mode
// sub-variants selected by BGControl.ExtBitmap/ExtDirectColor (spec.md §4.1
// "Extended mode").
func (u *DisplayUnit) RenderExtendedBG(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	switch {
	case cnt.ExtBitmap && cnt.ExtDirectColor:
		u.renderExtDirectBitmap(bg, line)
	case cnt.ExtBitmap:
		u.renderExtPalettedBitmap(bg, line)
	default:
		u.renderExtTiled(bg, line)
	}
}

// renderExtTiled is like affine mode, but tile map entries are 16-bit and
// carry a palette bank plus H/V flip, and extended palettes apply.
func (u *DisplayUnit) renderExtTiled(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	size := affineSizeTable[cnt.ScreenSize&3]
	tiles := size / 8

	bgWin := u.VRAM.BGVRAM(u.Num)
	gate := windowMaskBG(bg)

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
			ix = ((ix % int32(size)) + int32(size)) % int32(size)
			iy = ((iy % int32(size)) + int32(size)) % int32(size)
		} else if ix < 0 || iy < 0 || ix >= int32(size) || iy >= int32(size) {
			continue
		}

		tileCol := int(ix) / 8
		tileRow := int(iy) / 8
		inTileX := int(ix) % 8
		inTileY := int(iy) % 8

		entryAddr := cnt.MapBase + uint32(tileRow*tiles+tileCol)*2
		entry := bgWin.Word16(entryAddr)

		tileIndex := entry & 0x3FF
		hFlip := entry&0x0400 != 0
		vFlip := entry&0x0800 != 0
		palBank := uint8((entry >> 12) & 0xF)

		tx, ty := inTileX, inTileY
		if hFlip {
			tx = 7 - tx
		}
		if vFlip {
			ty = 7 - ty
		}

		tileAddr := cnt.CharBase + uint32(tileIndex)*64 + uint32(ty*8+tx)
		colorIdx := bgWin.Byte(tileAddr)
		if colorIdx == 0 {
			continue
		}

		var rgb uint16
		if u.Regs.DispCnt.BGExtPalEnable {
			pal := u.VRAM.BGExtPal(u.Num, bg, int(palBank))
			rgb = pal[colorIdx]
		} else {
			rgb = u.VRAM.Palette(bgPaletteRegion(u.Num))[colorIdx]
		}

		u.buf.DrawPixel(x, ColorFromRGB555(rgb), bg)
	}
}

// renderExtPalettedBitmap is the 8-bit direct-palette-index bitmap
// sub-variant, 128x128 up to 512x512 depending on ScreenSize.
func (u *DisplayUnit) renderExtPalettedBitmap(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	size := extBitmapSizeTable[cnt.ScreenSize&3]
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

		addr := cnt.MapBase + uint32(int(iy)*width+int(ix))
		colorIdx := bgWin.Byte(addr)
		if colorIdx == 0 {
			continue
		}
		u.buf.DrawPixel(x, ColorFromRGB555(pal[colorIdx]), bg)
	}
}

// renderExtDirectBitmap is the 15-bit-RGB-plus-alpha-bit bitmap sub-variant.
func (u *DisplayUnit) renderExtDirectBitmap(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	size := extDirectBitmapSizeTable[cnt.ScreenSize&3]
	width, height := size[0], size[1]

	bgWin := u.VRAM.BGVRAM(u.Num)
	gate := windowMaskBG(bg)

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

		addr := cnt.MapBase + uint32(int(iy)*width+int(ix))*2
		px := bgWin.Word16(addr)
		if px&0x8000 == 0 {
			continue
		}
		u.buf.DrawPixel(x, ColorFromRGB555(px), bg)
	}
}
