package gpu2d

// bgKind tags which rasterizer handles a given background slot under the
// current BG mode (spec.md §4.1's mode table).
type bgKind uint8

const (
	bgNone bgKind = iota
	bgText
	bgAffine
	bgExtended
	bgLarge
)

// modeTable[BGMode][bg] gives the rasterizer for bg 0..3 under that mode.
// BG0 is overridden to the 3D layer instead whenever DispCnt.Tile3D is set
// (handled separately in DrawScanline, not in this table).
var modeTable = [7][4]bgKind{
	{bgText, bgText, bgText, bgText},         // mode 0
	{bgText, bgText, bgText, bgAffine},       // mode 1
	{bgText, bgText, bgAffine, bgAffine},     // mode 2
	{bgText, bgText, bgText, bgExtended},     // mode 3
	{bgText, bgText, bgAffine, bgExtended},   // mode 4
	{bgText, bgText, bgExtended, bgExtended}, // mode 5
	{bgNone, bgNone, bgLarge, bgNone},        // mode 6
}

// DrawScanline renders one visible scanline (0..191) for this unit: window
// masking, all four backgrounds (or the 3D layer in BG0's place), the sprite
// merge, compositing, and the line-state advance. It does not touch the
// output stage (forced-blank / display-mode dispatch, master brightness,
// BGRA conversion) — see output.go for that.
//
// Callers must call DrawSprites(line) before DrawScanline(line) (spec.md
// §6): ApplyWindowMask reads buf.ObjWindow, which DrawSprites fills in for
// this same line, and DrawScanline never calls DrawSprites itself.
func (u *DisplayUnit) DrawScanline(line int) {
	buf := &u.buf

	buf.SetAccelerated(u.ThreeD.IsAccelerated())
	u.ApplyWindowMask(line)

	backdrop := ColorFromRGB555(u.VRAM.Palette(bgPaletteRegion(u.Num))[0])
	buf.Reset(backdrop)

	if !u.Regs.DispCnt.ForcedBlank {
		mode := u.Regs.DispCnt.BGMode
		if mode > 6 {
			mode = 0
		}
		kinds := modeTable[mode]

		// Backgrounds composite back-to-front by priority (3 drawn first,
		// 0 drawn last) and, within equal priority, by descending BG
		// number so BG0 wins ties (spec.md §4.4).
		for priority := 3; priority >= 0; priority-- {
			for bg := 3; bg >= 0; bg-- {
				if !u.Regs.DispCnt.LayerEnable[bg] {
					continue
				}
				if bg == 0 && u.Regs.DispCnt.Tile3D {
					if int(u.Regs.BGCnt[bg].Priority) == priority {
						u.draw3DLayer(line)
					}
					continue
				}
				if int(u.Regs.BGCnt[bg].Priority) != priority {
					continue
				}
				switch kinds[bg] {
				case bgText:
					u.RenderTextBG(bg, line)
				case bgAffine:
					u.RenderAffineBG(bg, line)
				case bgExtended:
					u.RenderExtendedBG(bg, line)
				case bgLarge:
					u.RenderLargeBG(line)
				}
			}
		}

		u.mergeSpritesIntoLine()
	}

	u.Compose(line)
	u.captureLine(line)
	u.Line.AdvanceLine(&u.Regs)
}

// draw3DLayer pushes the 3D engine's line into BG0's slot. Entries are
// tagged Flag3D (not FlagBG0): per spriteAlphaEntry's packing convention
// that frees bits 24-28 for the per-pixel source alpha ColorBlend5 needs,
// at the cost of not also carrying a target-mask bit — the compositor
// treats Flag3D as always blend-target-eligible on BG0's behalf, since the
// 3D layer only ever substitutes for BG0 (spec.md §4.1's "2D+3D" note).
func (u *DisplayUnit) draw3DLayer(line int) {
	gate := windowMaskBG(0)
	row := u.ThreeD.Line(line)
	for x := 0; x < 256; x++ {
		if u.buf.WindowMask[x]&gate == 0 {
			continue
		}
		px := row[x]
		alpha := uint8((px >> 24) & 0x1F)
		if alpha == 0 {
			continue
		}
		if u.buf.accelerated {
			u.buf.bgObjLine[512+x] = u.buf.bgObjLine[256+x]
		}
		u.buf.bgObjLine[256+x] = u.buf.bgObjLine[x]
		u.buf.bgObjLine[x] = spriteAlphaEntry(px&0xFFFFFF, alpha-1)
	}
}

// topCandidatePriority returns the compositing priority of whatever is
// currently the top bgObjLine candidate at column x: a background's
// BGControl.Priority, BG0's priority when the candidate is the 3D layer, or
// 4 (lower than any real priority) for a bare backdrop, so a sprite always
// beats an empty column.
func (u *DisplayUnit) topCandidatePriority(x int) int {
	flags := lineFlags(u.buf.Top(x))
	switch {
	case flags&Flag3D != 0:
		return int(u.Regs.BGCnt[0].Priority)
	case flags&FlagBG0 != 0:
		return int(u.Regs.BGCnt[0].Priority)
	case flags&FlagBG1 != 0:
		return int(u.Regs.BGCnt[1].Priority)
	case flags&FlagBG2 != 0:
		return int(u.Regs.BGCnt[2].Priority)
	case flags&FlagBG3 != 0:
		return int(u.Regs.BGCnt[3].Priority)
	default:
		return 4
	}
}

// mergeSpritesIntoLine folds the per-column ObjLine buffer computed by
// DrawSprites into bgObjLine, honoring the object layer's window gate and
// the sprite-vs-background priority/tie rule (sprites win ties against a
// background of equal priority; spec.md §4.2 step 6).
func (u *DisplayUnit) mergeSpritesIntoLine() {
	buf := &u.buf
	if !u.Regs.DispCnt.ObjEnable {
		return
	}
	gate := WindowMaskSprite
	for x := 0; x < 256; x++ {
		entry := buf.ObjLine[x]
		if entry&objOpaqueBit == 0 {
			continue
		}
		if buf.WindowMask[x]&uint8(gate) == 0 {
			continue
		}

		priority := int((entry >> objPriorityShift) & 0x3)
		if u.topCandidatePriority(x) < priority {
			continue
		}

		flags := uint8(FlagSprite)
		if entry&objSemiBit != 0 {
			flags |= FlagObjAlpha
		}

		var color uint32
		if entry&objReplacedBit != 0 {
			color = buf.ObjReplace[x]
		} else {
			color15 := uint16(entry & objColorMask)
			color = ColorFromRGB555(color15)
		}

		if entry&objBitmapABit != 0 {
			// Bitmap sprites carry their own per-pixel alpha instead of
			// participating in the normal target-mask blend; pack it the
			// same way draw3DLayer packs the 3D engine's alpha.
			alpha5 := uint8((entry >> objAlphaShift) & 0x1F)
			buf.MergeSprite(x, spriteAlphaEntry(color, alpha5-1), 0)
			continue
		}

		buf.MergeSprite(x, color, flags)
	}
}
