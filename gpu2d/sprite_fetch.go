package gpu2d

// ReplacementSource looks up a loaded replacement image for a content hash
// computed over a sprite's decoded RGBA pixels and dimensions (see
// spriteContentHash) (spec.md §4.2 step 8, grounded
// in the asset cache's content-addressed dump/load scheme). Sample is called
// once per covered screen column with the native (unflipped, unscaled)
// tile-local coordinate the compositor would otherwise have decoded itself;
// ok is false when no replacement is loaded for hash, in which case the
// caller falls back to the native decode.
type ReplacementSource interface {
	Sample(hash uint64, nativeX, nativeY, nativeW, nativeH int) (r, g, b, a uint8, ok bool)
}

// fetchSpritePixel samples one native pixel at tile-local (srcX,srcY) of a
// width x height sprite, dispatching to the bitmap / 256-color / 16-color
// path per spec.md §4.2 step 4. It returns whether the pixel is opaque, its
// encoded color (direct 15-bit for bitmap sprites, palette index otherwise),
// the per-sprite alpha (bitmap sprites only, 2..16), and which format
// matched.
func (u *DisplayUnit) fetchSpritePixel(attr SpriteAttr, srcX, srcY, width, height int) (opaque bool, color16 uint16, alpha5 uint8, format ObjFormat) {
	mode := (attr.Attr0 >> attr0ModeShift) & attr0ModeMask
	tilenum := uint32(attr.Attr2 & 0x03FF)
	objWin := u.VRAM.OBJVRAM(u.Num)

	switch {
	case mode == objModeBitmap:
		format = ObjBitmap
		alphaField := (attr.Attr2 >> 12) & 0xF
		if alphaField == 0 {
			return false, 0, 0, format
		}
		alpha5 = uint8(alphaField) + 1

		var addr uint32
		if u.Regs.DispCnt.BitmapObjMapping1D {
			boundary := 128
			if u.Regs.DispCnt.BitmapObjBoundary256 {
				boundary = 256
			}
			stride := width * 2
			addr = tilenum*uint32(boundary) + uint32(srcY*stride+srcX*2)
		} else {
			const rowBytes = 256 * 2
			base := tilenum * 0x20
			addr = base + uint32(srcY*rowBytes+srcX*2)
		}
		px := objWin.Word16(addr)
		if px&0x8000 == 0 {
			return false, 0, 0, format
		}
		color16 = px
		opaque = true

	case attr.Attr0&attr0Color256 != 0:
		format = ObjPal256
		base := tilenum
		if u.Regs.DispCnt.ObjMapping1D {
			base <<= uint32(u.Regs.DispCnt.ObjMapping1DBoundary)
			base += uint32((srcY >> 3) * (width >> 3))
		} else {
			base += uint32((srcY >> 3) * 0x20)
		}
		addr := (base << 6) + uint32((srcY&7)<<3) + uint32(srcX)
		idx := objWin.Byte(addr)
		if idx == 0 {
			return false, 0, 0, format
		}
		color16 = uint16(idx)
		opaque = true

	default:
		format = ObjPal16
		base := tilenum
		if u.Regs.DispCnt.ObjMapping1D {
			shift := uint32(u.Regs.DispCnt.ObjMapping1DBoundary)
			base <<= shift
			base += uint32((srcY >> 3) * (width >> 3))
		} else {
			base += uint32((srcY >> 3) * 0x20)
		}
		addr := (base << 5) + uint32((srcY&7)<<2) + uint32(srcX/2)
		b := objWin.Byte(addr)
		var idx uint8
		if srcX&1 == 0 {
			idx = b & 0xF
		} else {
			idx = b >> 4
		}
		if idx == 0 {
			return false, 0, 0, format
		}
		color16 = uint16(idx)
		opaque = true
	}

	return opaque, color16, alpha5, format
}

// resolveSpriteColor converts a fetched sprite pixel (color16/format) to a
// 15-bit RGB555 value ready for ColorFromRGB555, applying the palette bank
// and extended-palette rules of spec.md §4.2 step 4.
func (u *DisplayUnit) resolveSpriteColor(attr SpriteAttr, color16 uint16, format ObjFormat) uint16 {
	switch format {
	case ObjBitmap:
		return color16 & 0x7FFF
	case ObjPal256:
		if u.Regs.DispCnt.ObjExtPalEnable {
			bank := int(attr.Attr2>>12) & 0xF
			pal := u.VRAM.OBJExtPal(u.Num, bank)
			return pal[color16]
		}
		return u.VRAM.Palette(objPaletteRegion(u.Num))[color16]
	default: // ObjPal16
		palBank := uint16(attr.Attr2>>12) & 0xF
		return u.VRAM.Palette(objPaletteRegion(u.Num))[palBank*16+color16]
	}
}

// spriteContentHash computes spec.md's SpriteKey: the FNV-1a-64 of the
// decoded RGBA buffer mixed with (width, height, format tag). Hashing the
// decoded pixels rather than the raw OAM/VRAM bytes that produced them means
// a sprite moved to a new OAM slot or redrawn from a different VRAM tile
// offset (same pixels) hits the same dump/replacement entry, matching
// texcache.contentHash's equivalent treatment of texture decodes.
func spriteContentHash(rgba []byte, width, height int, format ObjFormat) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211

	h := uint64(offset64)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime64
	}
	mixInt := func(v int) {
		mix(byte(v))
		mix(byte(v >> 8))
	}

	for _, b := range rgba {
		mix(b)
	}
	mixInt(width)
	mixInt(height)
	mix(byte(format))
	return h
}
