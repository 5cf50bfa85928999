package gpu2d

// captureLine implements display capture (spec.md §4.5): engine A only,
// active only while Capture.Enable is set and only for the first
// Capture.Height scanlines of the frame. Source A is either the already-
// composited BG+OBJ line (Final, this same scanline) or the raw 3D line;
// source B is either the FIFO line the CPU pushed or a VRAM bank read at
// the same destination offset. CombineMode selects which source(s)
// contribute, writing 15-bit RGB555 pixels into the destination LCDC bank.
func (u *DisplayUnit) captureLine(line int) {
	if u.Num != 0 {
		return
	}
	if line == 0 {
		u.CaptureLatch = u.Regs.Capture.Enable
	}
	cap := u.Regs.Capture
	if !u.CaptureLatch || line >= cap.Height || cap.Width == 0 {
		return
	}

	bank, ok := u.VRAM.LCDCBank(cap.DstBank)
	if !ok {
		return
	}

	rowBytes := uint32(cap.Width) * 2
	base := cap.DstOffset + uint32(line)*rowBytes

	for x := 0; x < cap.Width; x++ {
		var a555 uint16
		if cap.SourceA_3D {
			px := u.ThreeD.Line(line)[x%256]
			a555 = ToRGB555(px & 0xFFFFFF)
		} else {
			a555 = ToRGB555(u.buf.Final[x%256])
		}

		var b555 uint16
		haveB := false
		if cap.SourceB_VRAM {
			if srcBank, ok := u.VRAM.LCDCBank(cap.DstBank); ok {
				off := cap.DstOffset + uint32(line)*rowBytes + uint32(x)*2
				if int(off)+1 < len(srcBank) {
					b555 = uint16(srcBank[off]) | uint16(srcBank[off+1])<<8
					haveB = true
				}
			}
		} else if x < len(u.FIFOLine) {
			b555 = u.FIFOLine[x]
			haveB = true
		}

		var out uint16
		switch cap.CombineMode {
		case 0:
			// Source A only: pass through A's own alpha bit (ToRGB555 never
			// sets it, so this is always 0 for the composited line).
			out = a555
		case 1:
			// Source B only: a raw copy of B, carrying whatever alpha bit the
			// VRAM/FIFO source pixel already had. If B is absent, write 0
			// rather than falling back to A.
			if haveB {
				out = b555
			} else {
				out = 0
			}
		default: // 2, 3: weighted blend of A and B, always opaque
			if haveB {
				blended := ColorBlend4(ColorFromRGB555(a555), ColorFromRGB555(b555), cap.EVA, cap.EVB)
				out = ToRGB555(blended) | 0x8000
			} else {
				out = a555 | 0x8000
			}
		}

		addr := base + uint32(x)*2
		if int(addr)+1 >= len(bank) {
			continue
		}
		bank[addr] = uint8(out)
		bank[addr+1] = uint8(out >> 8)
		u.VRAM.MarkDirty(cap.DstBank, int(addr)/DirtyBlockSize)
	}
}
