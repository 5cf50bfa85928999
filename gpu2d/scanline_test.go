package gpu2d

import "testing"

// testVRAM is a small writable VRAMSource fixture for end-to-end scanline
// tests, in the spirit of the teacher's vdp_render_test.go building a
// concrete VDP and poking its registers/VRAM directly rather than mocking.
type testVRAM struct {
	bg, obj [2][]byte
	pal     [4][]uint16
}

func newTestVRAM() *testVRAM {
	v := &testVRAM{}
	for i := range v.bg {
		v.bg[i] = make([]byte, 16*1024)
		v.obj[i] = make([]byte, 16*1024)
	}
	for i := range v.pal {
		v.pal[i] = make([]uint16, 256)
	}
	return v
}

func (v *testVRAM) BGVRAM(unit int) VRAMWindow {
	return VRAMWindow{Bytes: v.bg[unit], Mask: uint32(len(v.bg[unit]) - 1)}
}
func (v *testVRAM) OBJVRAM(unit int) VRAMWindow {
	return VRAMWindow{Bytes: v.obj[unit], Mask: uint32(len(v.obj[unit]) - 1)}
}
func (v *testVRAM) BGExtPal(int, int, int) Palette16  { return Palette16{} }
func (v *testVRAM) OBJExtPal(int, int) Palette256     { return Palette256{} }
func (v *testVRAM) LCDCBank(int) ([]byte, bool)       { return nil, false }
func (v *testVRAM) Palette(r PaletteRegion) []uint16  { return v.pal[r] }
func (v *testVRAM) MarkDirty(int, int)                {}

func TestDrawScanline_TextBGFillsBackdropElsewhere(t *testing.T) {
	v := newTestVRAM()
	v.pal[PaletteBGA][0] = 0x001F // backdrop red

	u := NewDisplayUnit(0, v, nil)
	u.Regs.DispCnt.LayerEnable[1] = true // BG1 enabled but its tilemap is all zero (transparent)

	u.DrawScanline(0)
	u.OutputLine(0)

	want := ColorFromRGB555(0x001F)
	if u.buf.Final[0] != want {
		t.Errorf("column 0 with an all-transparent BG: got %#x, want backdrop %#x", u.buf.Final[0], want)
	}
}

func TestDrawScanline_SpriteBeatsLowerPriorityBG(t *testing.T) {
	v := newTestVRAM()
	v.pal[PaletteBGA][1] = 0x03E0  // BG color: green
	v.pal[PaletteOBJA][1] = 0x7C00 // sprite color: blue

	// BG0: solid tile 0 covering the whole screen, at priority 1.
	for row := 0; row < 8; row++ {
		v.bg[0][row*4] = 0x11
		v.bg[0][row*4+1] = 0x11
		v.bg[0][row*4+2] = 0x11
		v.bg[0][row*4+3] = 0x11
	}

	u := NewDisplayUnit(0, v, nil)
	u.Regs.DispCnt.LayerEnable[0] = true
	u.Regs.DispCnt.ObjEnable = true
	u.Regs.BGCnt[0] = BGControl{Priority: 1}

	// Sprite 0: 8x8 at (0,0), priority 0 (in front), 16-color tile 0 solid
	// color index 1.
	for i := 0; i < 32; i++ {
		v.obj[0][i] = 0x11
	}
	attr0, attr1, attr2 := uint16(0), uint16(0), uint16(0)
	u.OAM[0], u.OAM[1] = byte(attr0), byte(attr0>>8)
	u.OAM[2], u.OAM[3] = byte(attr1), byte(attr1>>8)
	u.OAM[4], u.OAM[5] = byte(attr2), byte(attr2>>8)

	u.DrawSprites(0)
	u.DrawScanline(0)
	u.OutputLine(0)

	want := ColorFromRGB555(0x7C00)
	if u.buf.Final[0] != want {
		t.Errorf("sprite at priority 0 should beat BG at priority 1: got %#x, want %#x", u.buf.Final[0], want)
	}
}

func TestApplyWindowMask_SeesSameLineObjectWindow(t *testing.T) {
	v := newTestVRAM()
	v.obj[0][0] = 0x01 // opaque palette index 1 at tile-local (0,0)

	u := NewDisplayUnit(0, v, nil)
	u.Regs.DispCnt.ObjEnable = true
	u.Regs.Window.ObjWinEnable = true
	u.Regs.Window.ObjWinMask = 0x01
	u.Regs.Window.OutsideMask = 0xFF

	attr0 := uint16(objModeWindow) << attr0ModeShift
	u.OAM[0], u.OAM[1] = byte(attr0), byte(attr0>>8)
	u.OAM[2], u.OAM[3] = 0, 0
	u.OAM[4], u.OAM[5] = 0, 0

	// DrawSprites must run before ApplyWindowMask for the window mask to see
	// this line's object-window data instead of the previous line's.
	u.DrawSprites(0)
	u.ApplyWindowMask(0)

	if u.buf.WindowMask[0] != u.Regs.Window.ObjWinMask {
		t.Errorf("column inside the object window should use ObjWinMask %#x, got %#x",
			u.Regs.Window.ObjWinMask, u.buf.WindowMask[0])
	}
}

func TestVBlankEnd_ResetsAffineInternal(t *testing.T) {
	v := newTestVRAM()
	u := NewDisplayUnit(0, v, nil)
	u.Regs.BGAffine[0] = AffineParams{XRef: 100, YRef: 200}
	u.Line.AffineInternal[0].X = 999
	VBlankEnd(u, nil)
	if u.Line.AffineInternal[0].X != 100 || u.Line.AffineInternal[0].Y != 200 {
		t.Errorf("VBlankEnd should reload affine internals from registers, got X=%d Y=%d",
			u.Line.AffineInternal[0].X, u.Line.AffineInternal[0].Y)
	}
}

func TestDecodeSpriteRGBA_RejectsRotationScale(t *testing.T) {
	v := newTestVRAM()
	u := NewDisplayUnit(0, v, nil)
	u.OAM[0], u.OAM[1] = 0x00, 0x01 // attr0 bit 8 (0x0100) set: rotation-scale

	_, _, _, _, ok := u.DecodeSpriteRGBA(0)
	if ok {
		t.Error("rotation-scale sprites must be excluded from dump decoding")
	}
}

func TestDecodeSpriteRGBA_MatchesSpriteContentHash(t *testing.T) {
	v := newTestVRAM()
	v.pal[PaletteOBJA][1] = 0x7C00
	for i := 0; i < 32; i++ {
		v.obj[0][i] = 0x11
	}
	u := NewDisplayUnit(0, v, nil)

	attr := u.OAM.spriteAttr(0)
	rgba, width, height, hash, ok := u.DecodeSpriteRGBA(0)
	if !ok {
		t.Fatal("expected a decodable sprite")
	}
	want := spriteContentHash(rgba, width, height, objFormatOf(attr))
	if hash != want {
		t.Errorf("dump hash must match spriteContentHash so Sample finds the same file: got %#x want %#x", hash, want)
	}
}
