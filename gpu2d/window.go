package gpu2d

// windowMaskBG is the bit for background n within a window/outside mask.
func windowMaskBG(n int) uint8 { return 1 << uint(n) }

const (
	WindowMaskSprite = 0x10
	WindowMaskEffect = 0x20
)

// dispCntAnyWindow reports whether any window source is enabled in
// Regs.Window (the DispCnt window-enable fields are not consulted); with
// none enabled the mask is all-ones (spec.md §4.3).
func (u *DisplayUnit) dispCntAnyWindow() bool {
	w := u.Regs.Window
	return w.Win0Enable || w.Win1Enable || w.ObjWinEnable
}

func insideRect(r WindowRect, x int, y int) bool {
	// A window rectangle wraps when x2<x1 or y2<y1, per hardware behavior:
	// treat the coordinate ranges as [x1,x2) with wraparound over 256/192.
	inX := false
	if r.X1 <= r.X2 {
		inX = x >= int(r.X1) && x < int(r.X2)
	} else {
		inX = x >= int(r.X1) || x < int(r.X2)
	}
	inY := false
	if r.Y1 <= r.Y2 {
		inY = y >= int(r.Y1) && y < int(r.Y2)
	} else {
		inY = y >= int(r.Y1) || y < int(r.Y2)
	}
	return inX && inY
}

// ApplyWindowMask fills buf.WindowMask for the given scanline. Priority is
// rect0 (if enabled and the column is inside) > rect1 > object-window >
// outside, exactly as spec.md §4.3 describes.
func (u *DisplayUnit) ApplyWindowMask(line int) {
	buf := &u.buf
	w := u.Regs.Window

	if !u.dispCntAnyWindow() {
		for x := 0; x < 256; x++ {
			buf.WindowMask[x] = 0xFF
		}
		return
	}

	for x := 0; x < 256; x++ {
		var mask uint8
		switch {
		case w.Win0Enable && insideRect(w.Rect[0], x, line):
			mask = w.Win0Mask
		case w.Win1Enable && insideRect(w.Rect[1], x, line):
			mask = w.Win1Mask
		case w.ObjWinEnable && buf.ObjWindow[x] != 0:
			mask = w.ObjWinMask
		default:
			mask = w.OutsideMask
		}
		buf.WindowMask[x] = mask
	}
}
