package gpu2d

// VBlankEnd advances both display units past VBlank: affine internal
// references reload from their registers and mosaic band counters reset
// (spec.md §3). It also runs one decode-for-dump pass per sprite on each
// unit whose Dump sink is set, matching original_source's
// DecodeSpriteForDump being driven once per VBlank rather than per scanline.
// Call once per frame, after the last visible scanline (191) and before
// scanline 0 of the next frame is drawn.
func VBlankEnd(unitA, unitB *DisplayUnit) {
	unitA.Line.ResetAtVBlankEnd(&unitA.Regs)
	dumpUnitSprites(unitA)
	if unitB != nil {
		unitB.Line.ResetAtVBlankEnd(&unitB.Regs)
		dumpUnitSprites(unitB)
	}
}

func dumpUnitSprites(u *DisplayUnit) {
	if u.Dump == nil || !u.Regs.DispCnt.ObjEnable {
		return
	}
	for idx := 0; idx < 128; idx++ {
		rgba, width, height, hash, ok := u.DecodeSpriteRGBA(idx)
		if !ok {
			continue
		}
		u.Dump.DumpSprite(hash, width, height, rgba)
	}
}
