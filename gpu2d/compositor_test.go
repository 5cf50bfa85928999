package gpu2d

import "testing"

// newComposeUnit builds a minimal DisplayUnit whose line buffers can be
// poked directly, for exercising Compose without going through a full
// scanline render.
func newComposeUnit() *DisplayUnit {
	u := &DisplayUnit{Num: 0, Enabled: true, VRAM: fakeVRAM{}, ThreeD: NullRenderer3D{}}
	for i := 0; i < 256; i++ {
		u.buf.WindowMask[i] = 0xFF
	}
	return u
}

func TestCompose_NoEffectPassesTopThrough(t *testing.T) {
	u := newComposeUnit()
	top := packLine(pack6(10, 20, 30), FlagBG0)
	u.buf.bgObjLine[5] = top
	u.Compose(0)
	if u.buf.Final[5] != lineColor(top) {
		t.Errorf("got %#x, want %#x", u.buf.Final[5], lineColor(top))
	}
}

func TestCompose_EffectsDisabledByWindow(t *testing.T) {
	u := newComposeUnit()
	u.Regs.Blend.Target1 = FlagBG0
	u.Regs.Blend.EffectMode = 2 // bright up
	u.Regs.EVY = 16
	u.buf.WindowMask[5] = 0 // effects bit cleared
	top := packLine(pack6(10, 20, 30), FlagBG0)
	u.buf.bgObjLine[5] = top
	u.Compose(0)
	if u.buf.Final[5] != lineColor(top) {
		t.Errorf("effects should be suppressed by window mask, got %#x want %#x", u.buf.Final[5], lineColor(top))
	}
}

func TestCompose_BrightnessUpEffect(t *testing.T) {
	u := newComposeUnit()
	u.Regs.Blend.Target1 = FlagBG0
	u.Regs.Blend.EffectMode = 2
	u.Regs.EVY = 16
	top := packLine(pack6(0, 0, 0), FlagBG0)
	u.buf.bgObjLine[5] = top
	u.Compose(0)
	got := u.buf.Final[5]
	if r6(got) != 63 || g6(got) != 63 || b6(got) != 63 {
		t.Errorf("full brightness-up on black should reach white, got r=%d g=%d b=%d", r6(got), g6(got), b6(got))
	}
}

func TestCompose_AlphaBlendAgainstSecondTarget(t *testing.T) {
	u := newComposeUnit()
	u.Regs.Blend.Target1 = FlagBG0
	u.Regs.Blend.Target2 = FlagBG1
	u.Regs.Blend.EffectMode = 1
	u.Regs.EVA = 16
	u.Regs.EVB = 0
	top := packLine(pack6(5, 6, 7), FlagBG0)
	second := packLine(pack6(60, 61, 62), FlagBG1)
	u.buf.bgObjLine[5] = top
	u.buf.bgObjLine[256+5] = second
	u.Compose(0)
	if u.buf.Final[5] != lineColor(top) {
		t.Errorf("eva=16,evb=0 should reproduce top exactly, got %#x want %#x", u.buf.Final[5], lineColor(top))
	}
}

func TestCompose_3DLayerBlend5(t *testing.T) {
	u := newComposeUnit()
	second := packLine(pack6(10, 10, 10), FlagBG1)
	u.buf.bgObjLine[256+5] = second
	u.buf.bgObjLine[5] = spriteAlphaEntry(pack6(63, 63, 63), 31) // full opacity
	u.Compose(0)
	if r6(u.buf.Final[5]) != 63 {
		t.Errorf("full-alpha 3D pixel should dominate, got r=%d", r6(u.buf.Final[5]))
	}
}

type fakeVRAM struct{}

func (fakeVRAM) BGVRAM(int) VRAMWindow                        { return VRAMWindow{} }
func (fakeVRAM) OBJVRAM(int) VRAMWindow                       { return VRAMWindow{} }
func (fakeVRAM) BGExtPal(int, int, int) Palette16             { return Palette16{} }
func (fakeVRAM) OBJExtPal(int, int) Palette256                { return Palette256{} }
func (fakeVRAM) LCDCBank(int) ([]byte, bool)                  { return nil, false }
func (fakeVRAM) Palette(PaletteRegion) []uint16               { return make([]uint16, 256) }
func (fakeVRAM) MarkDirty(int, int)                           {}
