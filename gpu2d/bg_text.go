package gpu2d

// textSizeTable maps a BGControl.ScreenSize (0..3) to (width,height) in
// pixels for text-mode backgrounds.
var textSizeTable = [4][2]int{
	{256, 256},
	{512, 256},
	{256, 512},
	{512, 512},
}

// RenderTextBG draws background bg (text mode) into section 0 of the line
// buffers for the given scanline, honoring window gating, mosaic, 16/256
// color depth, and optional extended palettes (spec.md §4.1 "Text mode").
func (u *DisplayUnit) RenderTextBG(bg int, line int) {
	cnt := u.Regs.BGCnt[bg]
	size := textSizeTable[cnt.ScreenSize&3]
	width, height := size[0], size[1]

	scrollX := int(u.Regs.BGScrollX[bg])
	scrollY := int(u.Regs.BGScrollY[bg])

	y := (line + scrollY) & (height - 1)
	tileRow := y / 8
	inTileY := y % 8

	bgWin := u.VRAM.BGVRAM(u.Num)
	gate := windowMaskBG(bg)

	for x := 0; x < 256; x++ {
		if u.buf.WindowMask[x]&gate == 0 {
			continue
		}

		px := x
		if cnt.Mosaic {
			px = int(MosaicLookup(u.Regs.BGMosaicSizeX, x))
		}

		sx := (px + scrollX) & (width - 1)
		tileCol := sx / 8
		inTileX := sx % 8

		mapX := tileCol % 32
		mapY := tileRow % 32
		screenBlock := 0
		switch {
		case width == 512 && height == 512:
			screenBlock = (tileCol/32)%2 + 2*((tileRow/32)%2)
		case width == 512:
			screenBlock = (tileCol / 32) % 2
		case height == 512:
			screenBlock = (tileRow / 32) % 2
		}

		entryAddr := cnt.MapBase + uint32(screenBlock)*0x800 + uint32(mapY*32+mapX)*2
		entry := bgWin.Word16(entryAddr)

		tileIndex := entry & 0x3FF
		hFlip := entry&0x0400 != 0
		vFlip := entry&0x0800 != 0
		palBank := uint8((entry >> 12) & 0xF)

		tx := inTileX
		ty := inTileY
		if hFlip {
			tx = 7 - tx
		}
		if vFlip {
			ty = 7 - ty
		}

		var colorIdx uint8
		var rgb uint16
		transparent := false

		if cnt.Color256 {
			tileAddr := cnt.CharBase + uint32(tileIndex)*64 + uint32(ty*8+tx)
			colorIdx = bgWin.Byte(tileAddr)
			if colorIdx == 0 {
				transparent = true
			} else if u.Regs.DispCnt.BGExtPalEnable {
				pal := u.VRAM.BGExtPal(u.Num, bg, int(palBank))
				rgb = pal[colorIdx]
			} else {
				rgb = u.VRAM.Palette(bgPaletteRegion(u.Num))[colorIdx]
			}
		} else {
			tileAddr := cnt.CharBase + uint32(tileIndex)*32 + uint32(ty*4) + uint32(tx/2)
			b := bgWin.Byte(tileAddr)
			if tx&1 == 0 {
				colorIdx = b & 0xF
			} else {
				colorIdx = b >> 4
			}
			if colorIdx == 0 {
				transparent = true
			} else {
				rgb = u.VRAM.Palette(bgPaletteRegion(u.Num))[uint16(palBank)*16+uint16(colorIdx)]
			}
		}

		if transparent {
			continue
		}

		u.buf.DrawPixel(x, ColorFromRGB555(rgb), bg)
	}
}

func bgPaletteRegion(unit int) PaletteRegion {
	if unit == 0 {
		return PaletteBGA
	}
	return PaletteBGB
}

func objPaletteRegion(unit int) PaletteRegion {
	if unit == 0 {
		return PaletteOBJA
	}
	return PaletteOBJB
}
