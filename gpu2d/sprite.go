package gpu2d

// OAM is the 1024-byte object attribute memory for one display unit: 128
// sprites x 3 attribute words (8 bytes stride; the 4th halfword of each
// 8-byte slot doubles as one lane of a rotation/scale parameter group,
// shared across 4 consecutive sprites).
type OAM [1024]byte

func (o *OAM) word16(addr uint32) uint16 {
	a := addr & 1023
	return uint16(o[a]) | uint16(o[(a+1)&1023])<<8
}

// SpriteAttr is sprite i's three attribute words, decoded from OAM.
type SpriteAttr struct {
	Attr0, Attr1, Attr2 uint16
}

func (o *OAM) spriteAttr(i int) SpriteAttr {
	base := uint32(i) * 8
	return SpriteAttr{
		Attr0: o.word16(base),
		Attr1: o.word16(base + 2),
		Attr2: o.word16(base + 4),
	}
}

// rotParam reads one of the four fixed-point lanes (A,B,C,D = m 0..3) of
// rotation-scale parameter group g, per spec.md §4.2 step 3.
func (o *OAM) rotParam(g, m int) int16 {
	return int16(o.word16(uint32(g)*32 + 6 + uint32(m)*8))
}

// shapeSizeTable[shape][size] gives (width,height) in pixels; shape 3 is
// unused by hardware and mapped to 8x8 here defensively.
var shapeSizeTable = [4][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}}, // square
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}}, // horizontal
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}}, // vertical
	{{8, 8}, {8, 8}, {8, 8}, {8, 8}},       // invalid
}

// ObjFormat tags which of the three sprite color paths produced a pixel.
type ObjFormat uint8

const (
	ObjPal16 ObjFormat = iota
	ObjPal256
	ObjBitmap
)

const (
	attr0RotScale        = 0x0100
	attr0DoubleOrDisable = 0x0200
	attr0ModeShift       = 10
	attr0ModeMask        = 0x3
	attr0Mosaic          = 0x1000
	attr0Color256        = 0x2000
	attr0ShapeShift      = 14

	attr1HFlip         = 0x1000
	attr1VFlip         = 0x2000
	attr1RotGroupShift = 9
	attr1RotGroupMask  = 0x1F
	attr1SizeShift     = 14
)

const (
	objModeNormal          = 0
	objModeSemiTransparent = 1
	objModeWindow          = 2
	objModeBitmap          = 3
)

// ObjLine entry bit layout (distinct from the bgObjLine packing in
// linebuffer.go — this buffer is merged into bgObjLine by the compositor,
// not composed directly):
//
//	bits 0-15:  resolved RGB555 color (palette already applied; direct color for bitmap sprites)
//	bits 16-17: priority (0..3)
//	bit 18:     opaque pixel present
//	bit 19:     X-mosaic applies here
//	bit 20:     semi-transparent (alpha-blend 2nd-target-eligible) sprite
//	bit 21:     bitmap sprite carrying its own per-sprite alpha
//	bits 22-26: per-sprite alpha (0..31), valid when bit 21 is set
//	bit 27:     pixel color was supplied by a loaded replacement image
//	            (read from LineBuffers.ObjReplace instead of resolving
//	            color/format against VRAM and palette)
const (
	objColorMask    = 0xFFFF
	objPriorityShift = 16
	objOpaqueBit    = 1 << 18
	objMosaicXBit   = 1 << 19
	objSemiBit      = 1 << 20
	objBitmapABit   = 1 << 21
	objAlphaShift   = 22
	objReplacedBit  = 1 << 27
)

func signExtend9(v uint16) int {
	x := int(v & 0x1FF)
	if x >= 256 {
		x -= 512
	}
	return x
}

// DrawSprites walks OAM descending by priority then by descending sprite
// index (spec.md §5's deterministic ordering) and fills buf.ObjLine /
// buf.ObjWindow for the given scanline.
func (u *DisplayUnit) DrawSprites(line int) {
	buf := &u.buf
	for i := range buf.ObjLine {
		buf.ObjLine[i] = 0
		buf.ObjWindow[i] = 0
	}
	if !u.Regs.DispCnt.ObjEnable {
		return
	}

	for priority := 3; priority >= 0; priority-- {
		for idx := 127; idx >= 0; idx-- {
			attr := u.OAM.spriteAttr(idx)
			u.drawOneSprite(idx, attr, priority, line)
		}
	}

	u.applySpriteMosaicX()
}

func (u *DisplayUnit) drawOneSprite(idx int, attr SpriteAttr, wantPriority int, line int) {
	rotScale := attr.Attr0&attr0RotScale != 0
	if !rotScale && attr.Attr0&attr0DoubleOrDisable != 0 {
		return // disabled (non-rotscale)
	}

	mode := (attr.Attr0 >> attr0ModeShift) & attr0ModeMask
	priority := int((attr.Attr2 >> 10) & 0x3)
	if priority != wantPriority {
		return
	}

	shape := int(attr.Attr0>>attr0ShapeShift) & 0x3
	size := int(attr.Attr1>>attr1SizeShift) & 0x3
	dim := shapeSizeTable[shape][size]
	width, height := dim[0], dim[1]

	doubleSize := rotScale && attr.Attr0&attr0DoubleOrDisable != 0
	boundW, boundH := width, height
	if doubleSize {
		boundW, boundH = width*2, height*2
	}

	ypos := int(attr.Attr0 & 0xFF)
	mosaicEnabled := attr.Attr0&attr0Mosaic != 0
	isWindowSprite := mode == objModeWindow

	relY := line - ypos
	if relY < 0 {
		relY += 256
	}
	if relY >= boundH {
		return
	}

	// Y mosaic substitutes the shared mosaic-band counter for the sampled
	// row, unless this is an object-window sprite (spec.md §4.2 step 2).
	if mosaicEnabled && !isWindowSprite {
		my := int(u.Line.ObjMosaicY)
		if my < boundH {
			relY = my
		}
	}

	xpos := signExtend9(attr.Attr1)

	var a, b, c, d int32 = 256, 0, 0, 256
	if rotScale {
		group := int(attr.Attr1>>attr1RotGroupShift) & attr1RotGroupMask
		a = int32(u.OAM.rotParam(group, 0))
		b = int32(u.OAM.rotParam(group, 1))
		c = int32(u.OAM.rotParam(group, 2))
		d = int32(u.OAM.rotParam(group, 3))
	}

	hFlip := !rotScale && attr.Attr1&attr1HFlip != 0
	vFlip := !rotScale && attr.Attr1&attr1VFlip != 0

	centerX := boundW / 2
	centerY := boundH / 2
	dy := int32(relY - centerY)

	var replaceHash uint64
	if u.Replace != nil && !isWindowSprite {
		rgba, _ := u.decodeSpriteRGBA(attr, width, height)
		replaceHash = spriteContentHash(rgba, width, height, objFormatOf(attr))
	}

	for sx := 0; sx < boundW; sx++ {
		screenX := xpos + sx
		if screenX < 0 || screenX >= 256 {
			continue
		}

		var srcX, srcY int
		if rotScale {
			dx := int32(sx - centerX)
			px := (a*dx+b*dy)>>8 + int32(width)/2
			py := (c*dx+d*dy)>>8 + int32(height)/2
			if px < 0 || py < 0 || px >= int32(width) || py >= int32(height) {
				continue
			}
			srcX, srcY = int(px), int(py)
		} else {
			srcX, srcY = sx, relY
			if hFlip {
				srcX = width - 1 - srcX
			}
			if vFlip {
				srcY = height - 1 - srcY
			}
		}

		opaque, color16, alpha5, format := u.fetchSpritePixel(attr, srcX, srcY, width, height)

		if isWindowSprite {
			if opaque {
				u.buf.ObjWindow[screenX] = 1
			}
			continue
		}

		if mosaicEnabled {
			u.buf.ObjLine[screenX] |= objMosaicXBit
		}
		if !opaque {
			continue
		}

		existing := u.buf.ObjLine[screenX]
		existingOpaque := existing&objOpaqueBit != 0
		existingPriority := int((existing >> objPriorityShift) & 0x3)
		if existingOpaque && existingPriority <= priority {
			continue
		}

		color15 := u.resolveSpriteColor(attr, color16, format)
		entry := uint32(color15)&objColorMask | uint32(priority)<<objPriorityShift | objOpaqueBit
		if existing&objMosaicXBit != 0 {
			entry |= objMosaicXBit
		}
		if mode == objModeSemiTransparent {
			entry |= objSemiBit
		}
		if format == ObjBitmap {
			entry |= objBitmapABit | uint32(alpha5)<<objAlphaShift
		}

		if u.Replace != nil && !isWindowSprite {
			if r, g, b, _, ok := u.Replace.Sample(replaceHash, srcX, srcY, width, height); ok {
				entry |= objReplacedBit
				u.buf.ObjReplace[screenX] = pack6(to6(r), to6(g), to6(b))
			}
		}

		u.buf.ObjLine[screenX] = entry
	}
}

// SpriteDumpSink receives one decoded native sprite image per sprite per
// VBlank, keyed by the same content hash spriteContentHash computes for
// replacement sampling, so a dumped file and its later replacement lookup
// always agree on a name (spec.md §4.2's "offline key / online sample
// split", supplemented from original_source's DecodeSpriteForDump).
type SpriteDumpSink interface {
	DumpSprite(hash uint64, width, height int, rgba []byte)
}

// DecodeSpriteRGBA decodes sprite idx's native pixels straight to
// premultiplied-alpha-free RGBA8888, independent of the packed format the
// scanline rasterizer uses internally. Rotation-scale sprites return
// ok=false: they have no fixed tile-local bitmap to key on, matching the
// original dumper's exclusion.
func (u *DisplayUnit) DecodeSpriteRGBA(idx int) (rgba []byte, width, height int, hash uint64, ok bool) {
	attr := u.OAM.spriteAttr(idx)
	if attr.Attr0&attr0RotScale != 0 {
		return nil, 0, 0, 0, false
	}
	if attr.Attr0&attr0DoubleOrDisable != 0 {
		return nil, 0, 0, 0, false
	}
	mode := (attr.Attr0 >> attr0ModeShift) & attr0ModeMask
	if mode == objModeWindow {
		return nil, 0, 0, 0, false
	}

	shape := int(attr.Attr0>>attr0ShapeShift) & 0x3
	size := int(attr.Attr1>>attr1SizeShift) & 0x3
	dim := shapeSizeTable[shape][size]
	width, height = dim[0], dim[1]

	var anyOpaque bool
	rgba, anyOpaque = u.decodeSpriteRGBA(attr, width, height)
	if !anyOpaque {
		return nil, 0, 0, 0, false
	}

	return rgba, width, height, spriteContentHash(rgba, width, height, objFormatOf(attr)), true
}

// decodeSpriteRGBA decodes attr's native width x height pixels (tile-local,
// unflipped, unrotated) to RGBA8888, shared by DecodeSpriteRGBA's dump path
// and drawOneSprite's replacement content-hash, so both hash the exact same
// bytes a loaded replacement image was keyed against.
func (u *DisplayUnit) decodeSpriteRGBA(attr SpriteAttr, width, height int) (rgba []byte, anyOpaque bool) {
	rgba = make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			opaque, color16, _, format := u.fetchSpritePixel(attr, x, y, width, height)
			if !opaque {
				continue
			}
			anyOpaque = true
			color15 := u.resolveSpriteColor(attr, color16, format)
			r, g, b, a := Color555ToRGBA8888(color15 | 0x8000)
			o := (y*width + x) * 4
			rgba[o], rgba[o+1], rgba[o+2], rgba[o+3] = r, g, b, a
		}
	}
	return rgba, anyOpaque
}

// objFormatOf derives a sprite's color-path tag without decoding pixels,
// matching fetchSpritePixel's own dispatch so spriteContentHash's format
// field agrees with the pixels it was computed from.
func objFormatOf(attr SpriteAttr) ObjFormat {
	mode := (attr.Attr0 >> attr0ModeShift) & attr0ModeMask
	switch {
	case mode == objModeBitmap:
		return ObjBitmap
	case attr.Attr0&attr0Color256 != 0:
		return ObjPal256
	default:
		return ObjPal16
	}
}

// applySpriteMosaicX runs left-to-right after all sprites are drawn: for
// each column whose mosaic-applies bit is set AND the previous kept column
// also had it set, replicate the previous column's final value; otherwise
// keep the column as-is (spec.md §4.2 step 7, §8 invariant 3: this pass is
// idempotent).
func (u *DisplayUnit) applySpriteMosaicX() {
	line := &u.buf.ObjLine
	for x := 1; x < 256; x++ {
		if line[x]&objMosaicXBit != 0 && line[x-1]&objMosaicXBit != 0 {
			line[x] = line[x-1]
		}
	}
}
