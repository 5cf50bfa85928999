package gpu2d

// WindowRect is one of the two rectangular window regions (spec.md §3).
type WindowRect struct {
	X1, X2 uint8
	Y1, Y2 uint8
}

// WindowCtl holds the window enable bits, per-source layer/effect masks,
// and the two rectangles. Each mask is 6 bits: bg0..bg3 (0x01<<n), sprites
// (0x10), color effects (0x20) — see spec.md §4.3.
type WindowCtl struct {
	Win0Enable, Win1Enable, ObjWinEnable bool
	Rect                                 [2]WindowRect
	Win0Mask, Win1Mask                   uint8
	ObjWinMask                           uint8
	OutsideMask                          uint8
}

// AffineParams is the 2x2 fixed-point rotation/scale matrix plus reference
// point used by affine backgrounds and rotation-scale sprites. A, B, C, D
// are 1.7.8 fixed point (16-bit signed); XRef, YRef are 1.19.8 (28-bit
// signed, sign-extended into an int32).
type AffineParams struct {
	A, B, C, D int16
	XRef, YRef int32
}

// BGControl is one background's 16-bit control register, already split out
// into fields (spec.md §3's bgCnt[0..3]).
type BGControl struct {
	Priority     uint8 // 0..3, smaller is front
	CharBase     uint32
	Mosaic       bool
	Color256     bool // false = 16-color/16-bank, true = 256-color
	MapBase      uint32
	WrapAround   bool // affine/extended overflow behavior
	ScreenSize   uint8 // 2-bit size selector, meaning depends on BG mode
	ExtBitmap      bool // extended mode: bitmap sub-variant instead of tiled
	ExtDirectColor bool // extended bitmap: direct 15-bit color instead of 256-color palette
}

// BlendCtl is the 16-bit color special-effect control register.
type BlendCtl struct {
	Target1    uint8 // bitmask: bg0..bg3 (bit n), obj (0x10), backdrop (0x20)
	Target2    uint8
	EffectMode uint8 // 0=none 1=alpha 2=bright-up 3=bright-down
}

// CaptureCnt is the display-capture configuration register.
type CaptureCnt struct {
	Enable      bool
	EVA, EVB    int32 // 0..16
	SourceB_VRAM bool // false: FIFO, true: VRAM bank
	SourceA_3D   bool // false: BG+OBJ composite, true: 3D line
	CombineBoth  bool // not read by captureLine; CombineMode alone selects the sources
	DstBank     int
	DstOffset   uint32
	Width       int
	Height      int
	CombineMode uint8 // 0: A only, 1: B only, 2/3: weighted sum
}

// MasterBrightness is the per-unit output-stage brightness control.
type MasterBrightness struct {
	Mode   uint8 // 0 none, 1 up, 2 down
	Factor int32 // 0..16
}

// DisplayMode selects the output-stage source (spec.md §4.6).
type DisplayMode uint8

const (
	DisplayOff DisplayMode = iota
	DisplayGraphics
	DisplayVRAM
	DisplayFIFO
)

// DispCnt is the big per-unit configuration word, decomposed into fields.
type DispCnt struct {
	BGMode         uint8 // 0..6
	Tile3D         bool  // BG0 is the 3D layer when set (2D+3D modes)
	LayerEnable    [4]bool
	ObjEnable      bool
	Win0Enable     bool
	Win1Enable     bool
	ObjWinEnable   bool
	ObjMapping1D   bool
	ObjMapping1DBoundary uint8 // tile-stride shift added on top of the 32-byte tile unit (0..3)
	ObjExtPalEnable bool
	BGExtPalEnable bool
	BitmapObjMapping1D bool
	BitmapObjBoundary256 bool // false: 128-byte 1D bitmap-sprite boundary, true: 256-byte
	ForcedBlank    bool
	DisplayMode    DisplayMode
	VRAMBlock      int // which LCDC bank VRAM-display mode reads
}

// Registers holds everything that is CPU-writable for one display unit and
// persists across scanlines unmodified by rendering itself.
type Registers struct {
	DispCnt    DispCnt
	BGCnt      [4]BGControl
	BGScrollX  [4]uint16
	BGScrollY  [4]uint16
	BGAffine   [2]AffineParams // indices map to BG2, BG3
	BGMosaicSizeX, BGMosaicSizeY   uint8
	ObjMosaicSizeX, ObjMosaicSizeY uint8
	Blend      BlendCtl
	EVA, EVB   int32 // 0..16, saturated
	EVY        int32 // 0..16
	Window     WindowCtl
	Brightness MasterBrightness
	Capture    CaptureCnt
}

// LineState is per-scanline mutable state that the renderer advances as it
// walks down the frame; it is distinct from Registers because it resets at
// VBlank and is advanced independently of CPU writes (spec.md §3).
type LineState struct {
	AffineInternal  [2]struct{ X, Y int32 }
	BGMosaicY       uint8
	BGMosaicYMax    uint8
	ObjMosaicY      uint8
	ObjMosaicYCount uint8
}

// ResetAtVBlankEnd reloads internal affine references from the registers
// and resets mosaic band counters, matching spec.md §3's invariant that
// affine internals are reset at VBlank end.
func (ls *LineState) ResetAtVBlankEnd(r *Registers) {
	for i := 0; i < 2; i++ {
		ls.AffineInternal[i].X = r.BGAffine[i].XRef
		ls.AffineInternal[i].Y = r.BGAffine[i].YRef
	}
	ls.BGMosaicY = 0
	ls.BGMosaicYMax = r.BGMosaicSizeY
	ls.ObjMosaicY = 0
	ls.ObjMosaicYCount = 0
}

// AdvanceLine advances affine references by (B,D) and steps the mosaic band
// counters; called once per visible scanline, after rendering it.
func (ls *LineState) AdvanceLine(r *Registers) {
	for i := 0; i < 2; i++ {
		ls.AffineInternal[i].X += int32(r.BGAffine[i].B)
		ls.AffineInternal[i].Y += int32(r.BGAffine[i].D)
	}
	ls.BGMosaicY++
	if ls.BGMosaicY > ls.BGMosaicYMax {
		ls.BGMosaicY = 0
	}
	ls.ObjMosaicYCount++
	if ls.ObjMosaicYCount > r.ObjMosaicSizeY {
		ls.ObjMosaicYCount = 0
		ls.ObjMosaicY++
	}
}

// DisplayUnit is one of the two independent scanline producers (A or B).
// A is always enabled; B may be disabled entirely by the owning frontend
// (spec.md §7 treats a disabled unit B like forced blank).
type DisplayUnit struct {
	Num       int // 0 or 1
	Enabled   bool
	Regs      Registers
	Line      LineState
	OAM       OAM
	FIFOLine  [256]uint16 // pushed by the CPU for FIFO display mode
	CaptureLatch bool     // latched at line 0 when Capture.Enable is set

	VRAM  VRAMSource
	ThreeD Renderer3D
	Replace ReplacementSource // optional; nil disables sprite substitution
	Dump    SpriteDumpSink    // optional; nil disables per-VBlank sprite dumping

	buf LineBuffers
}

// NewDisplayUnit builds a DisplayUnit wired to the given collaborators.
// num must be 0 (unit A, always enabled) or 1 (unit B).
func NewDisplayUnit(num int, vram VRAMSource, threeD Renderer3D) *DisplayUnit {
	if threeD == nil {
		threeD = NullRenderer3D{}
	}
	u := &DisplayUnit{
		Num:     num,
		Enabled: num == 0,
		VRAM:    vram,
		ThreeD:  threeD,
	}
	u.Line.ResetAtVBlankEnd(&u.Regs)
	return u
}
