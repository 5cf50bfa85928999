package gpu2d

// Compositor flag bits, packed into the high byte of a bgObjLine entry
// (spec.md §3's LineBuffers).
const (
	FlagBG0      = 0x01
	FlagBG1      = 0x02
	FlagBG2      = 0x04
	FlagBG3      = 0x08
	FlagSprite   = 0x10
	FlagBackdrop = 0x20
	Flag3D       = 0x40
	FlagObjAlpha = 0x80 // sprite is a 2nd-target / semi-transparent alpha source
)

func bgFlag(bg int) uint8 { return 1 << uint(bg) }

// bgLine packs a background/backdrop/3D candidate pixel: 24 bits of color
// (6-6-6) plus an 8-bit flag byte. When flags carry both FlagObjAlpha and
// Flag3D (a bitmap sprite with its own alpha), the flag byte's low 5 bits
// (bits 24-28 of the word) hold that pixel's alpha instead of the usual
// FlagBG0..FlagSprite bits — see spriteAlphaEntry.
func packLine(color uint32, flags uint8) uint32 {
	return (color & 0xFFFFFF) | uint32(flags)<<24
}

func lineColor(v uint32) uint32 { return v & 0xFFFFFF }
func lineFlags(v uint32) uint8  { return uint8(v >> 24) }

// spriteAlphaEntry packs a bitmap sprite's color plus its per-sprite alpha
// (0..31) into the flags' low 5 bits region understood by the compositor:
// bits 24-28 hold alpha, bit tested via Flag3D|FlagObjAlpha in the byte at
// bit 31-24. We keep color in the low 24 bits as usual; alpha rides in a
// side nibble of the packed flags byte (bits 24-28 of the 32-bit word,
// which are the low bits of the flag byte — by construction FlagObjAlpha
// and Flag3D together only ever occupy bits 0x80|0x40, leaving bits 0-4 of
// the flag byte, i.e. word bits 24-28, free for alpha).
func spriteAlphaEntry(color uint32, alpha uint8) uint32 {
	flags := uint8(FlagObjAlpha | Flag3D) | (alpha & 0x1F)
	return packLine(color, flags)
}

func spriteAlphaOf(v uint32) uint8 { return lineFlags(v) & 0x1F }

// LineBuffers holds one display unit's per-scanline working buffers.
type LineBuffers struct {
	// bgObjLine has 3 sections of 256 entries each: section 0 is the top
	// candidate per column, section 1 the second (2nd-target), section 2
	// the third (accelerated-3D mode only).
	bgObjLine [768]uint32

	// ObjLine is the per-column sprite buffer: low 16 bits the resolved
	// RGB555 color, bits 16-17 priority, bit 18 "opaque pixel present", bit
	// 19 "X mosaic applies", then the semi-transparent, bitmap-alpha, alpha
	// and replaced fields; the full layout is beside the obj* constants in
	// sprite.go.
	ObjLine [256]uint32

	// ObjWindow is a 0/1 per-column mask: inside the object-window sprite
	// mode.
	ObjWindow [256]uint8

	// ObjReplace holds the already-resolved 6-bit-per-channel color for
	// columns where a replacement image supplied the pixel instead of the
	// native decode (ObjLine's objReplacedBit marks which columns these are;
	// see sprite_fetch.go's ReplacementSource).
	ObjReplace [256]uint32

	// WindowMask is the per-column gating byte (bg0..bg3 | sprite 0x10 |
	// effect 0x20), computed once per scanline by ApplyWindowMask.
	WindowMask [256]uint8

	// Final is this scanline's composited output, one 6-bit-per-channel
	// color per column, written by Compose and read by the output stage.
	Final [256]uint32

	accelerated bool
}

// SetAccelerated selects the drawPixel variant used for this scanline: when
// the 3D backend is accelerated, background writes must also preserve a
// third candidate for the compositor's deferred-blend path (spec.md §4.1,
// §4.4).
func (lb *LineBuffers) SetAccelerated(accel bool) {
	lb.accelerated = accel
}

// Reset clears the background candidate buffers to backdrop-only state
// before a new scanline's rasterizers run. It does not touch WindowMask:
// DrawScanline calls ApplyWindowMask before Reset, and Reset must not
// clobber that result. It also does not touch ObjLine/ObjWindow: DrawSprites
// runs before DrawScanline (spec.md §6) and clears/fills those itself: by
// the time Reset runs they already hold this line's sprite data, which
// ApplyWindowMask has already consumed and mergeSpritesIntoLine still needs.
func (lb *LineBuffers) Reset(backdrop uint32) {
	bd := packLine(backdrop, FlagBackdrop)
	for i := 0; i < 256; i++ {
		lb.bgObjLine[i] = bd
		lb.bgObjLine[256+i] = bd
		lb.bgObjLine[512+i] = bd
	}
}

// DrawPixel writes a background candidate at column x, pushing whatever was
// there down into the lower-priority section(s). Normal mode pushes section
// 0 into section 1; accelerated mode also pushes the old section 1 into
// section 2, per spec.md §4.1.
func (lb *LineBuffers) DrawPixel(x int, color uint32, bg int) {
	if lb.accelerated {
		lb.bgObjLine[512+x] = lb.bgObjLine[256+x]
	}
	lb.bgObjLine[256+x] = lb.bgObjLine[x]
	lb.bgObjLine[x] = packLine(color, bgFlag(bg))
}

// Top returns the section-0 (top) candidate at column x.
func (lb *LineBuffers) Top(x int) uint32 { return lb.bgObjLine[x] }

// Second returns the section-1 (second) candidate at column x.
func (lb *LineBuffers) Second(x int) uint32 { return lb.bgObjLine[256+x] }

// Third returns the section-2 (accelerated-only) candidate at column x.
func (lb *LineBuffers) Third(x int) uint32 { return lb.bgObjLine[512+x] }

// MergeSprite makes a sprite pixel the new top candidate at column x,
// pushing the previous top down exactly like DrawPixel does. It does not
// check opacity or priority; its caller, mergeSpritesIntoLine, only calls it
// for opaque sprite pixels that win against the backgrounds already there
// (sprites winning ties).
func (lb *LineBuffers) MergeSprite(x int, color uint32, flags uint8) {
	if lb.accelerated {
		lb.bgObjLine[512+x] = lb.bgObjLine[256+x]
	}
	lb.bgObjLine[256+x] = lb.bgObjLine[x]
	lb.bgObjLine[x] = packLine(color, flags)
}
