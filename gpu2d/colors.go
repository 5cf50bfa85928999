// Package gpu2d implements the per-scanline 2D compositor for a dual-display
// handheld console: background rasterization across seven modes, sprite
// rasterization, window masking, mosaic, color special effects, master
// brightness, and display capture. It consumes narrow VRAM/palette/3D
// collaborator interfaces (see vram.go, render3d.go) and never touches disk
// or a GUI toolkit.
package gpu2d

// Colors inside the compositor are packed as 24-bit, 6 bits per channel
// (0..63), in the low 24 bits of a uint32 with compositor flags in the high
// byte (see LineBuffers in linebuffer.go). clamp6 keeps arithmetic in range
// without branching per call site.
func clamp6(v int32) uint32 {
	if v < 0 {
		return 0
	}
	if v > 63 {
		return 63
	}
	return uint32(v)
}

func r6(c uint32) int32 { return int32(c & 0x3F) }
func g6(c uint32) int32 { return int32((c >> 6) & 0x3F) }
func b6(c uint32) int32 { return int32((c >> 12) & 0x3F) }

func pack6(r, g, b uint32) uint32 {
	return r | (g << 6) | (b << 12)
}

// ColorBlend4 implements the standard alpha-blend special effect: each
// channel is a weighted sum of val1 and val2 with weights eva/evb in
// [0,16], divided by 16 and saturated to 63. Flag bits (bits 24-31) are not
// touched here; callers combine the blended color with the winning flags.
func ColorBlend4(val1, val2 uint32, eva, evb int32) uint32 {
	r := clamp6((r6(val1)*eva + r6(val2)*evb) / 16)
	g := clamp6((g6(val1)*eva + g6(val2)*evb) / 16)
	b := clamp6((b6(val1)*eva + b6(val2)*evb) / 16)
	return pack6(r, g, b)
}

// ColorBlend5 implements the 3D-layer blend: val1 carries the 3D pixel's
// source alpha in bits 24-28 (0..31). alpha=0 means fully transparent (the
// 3D pixel contributes nothing, val2 passes through unchanged); otherwise
// val1 and val2 are weighted by (alpha+1) and (31-alpha) over 32.
func ColorBlend5(val1, val2 uint32) uint32 {
	alpha := int32((val1 >> 24) & 0x1F)
	if alpha == 0 {
		return val2 & 0x3FFFFF
	}
	a1 := alpha + 1
	a2 := 31 - alpha
	r := clamp6((r6(val1)*a1 + r6(val2)*a2) / 32)
	g := clamp6((g6(val1)*a1 + g6(val2)*a2) / 32)
	b := clamp6((b6(val1)*a1 + b6(val2)*a2) / 32)
	return pack6(r, g, b)
}

// ColorBrightnessUp fades each channel toward 63 by factor/16, with round
// added before the shift (the hardware uses different rounding constants
// for the special-effect path (0x8) versus master brightness (0x0)).
func ColorBrightnessUp(val uint32, factor, round int32) uint32 {
	r := r6(val)
	g := g6(val)
	b := b6(val)
	r += ((63 - r) * factor + round) >> 4
	g += ((63 - g) * factor + round) >> 4
	b += ((63 - b) * factor + round) >> 4
	return pack6(clamp6(r), clamp6(g), clamp6(b))
}

// ColorBrightnessDown fades each channel toward 0 by factor/16.
func ColorBrightnessDown(val uint32, factor, round int32) uint32 {
	r := r6(val)
	g := g6(val)
	b := b6(val)
	r -= (r*factor + round) >> 4
	g -= (g*factor + round) >> 4
	b -= (b*factor + round) >> 4
	return pack6(clamp6(r), clamp6(g), clamp6(b))
}

// ColorFromRGB555 expands a 15-bit packed color (5 bits per channel) into
// the compositor's 6-bit-per-channel representation: value*2, plus an
// extra +1 for nonzero components so that white (0x1F) maps to 63, not 62 —
// this is the "5→6" expansion spec.md's output stage describes.
func ColorFromRGB555(c uint16) uint32 {
	r := uint32(c & 0x1F)
	g := uint32((c >> 5) & 0x1F)
	b := uint32((c >> 10) & 0x1F)
	return pack6(expand5to6(r), expand5to6(g), expand5to6(b))
}

func expand5to6(c uint32) uint32 {
	v := c * 2
	if c != 0 {
		v++
	}
	return v
}

// to6 narrows an 8-bit channel to the compositor's 6-bit range, used when
// accepting an externally-supplied replacement pixel into a line buffer.
func to6(c8 uint8) uint32 { return uint32(c8) >> 2 }

// ToRGB555 packs a 6-bit-per-channel color back down to 15-bit RGB (used by
// the display-capture path, which writes 15-bit colors to VRAM).
func ToRGB555(c uint32) uint16 {
	r := uint16(r6(c)) >> 1
	g := uint16(g6(c)) >> 1
	b := uint16(b6(c)) >> 1
	return r | (g << 5) | (b << 10)
}

// ToBGRA8 converts a 6-bit-per-channel color (plus an independent 8-bit
// alpha, normally 0xFF) to a 32-bit BGRA word using the "c | ((c&0xC0)>>6)"
// replication trick so 0..63 maps onto 0..255 without floating-point error:
// first widen 6 bits to 8 by shifting left 2, then replicate the top 2 bits
// into the low 2 bits.
func ToBGRA8(c uint32, alpha uint8) uint32 {
	r8 := to8(uint8(r6(c)))
	g8 := to8(uint8(g6(c)))
	b8 := to8(uint8(b6(c)))
	return uint32(b8) | uint32(g8)<<8 | uint32(r8)<<16 | uint32(alpha)<<24
}

func to8(c6 uint8) uint8 {
	c := c6 << 2
	return c | ((c & 0xC0) >> 6)
}

// Color555ToRGBA8888 expands a 15-bit RGB555 (plus a top alpha bit, as used
// by direct-color bitmap backgrounds and bitmap sprites) to 8-bit-per-channel
// RGBA, matching the exact rounding the asset dumper uses so re-decoded
// native pixels and replacement images compare equal byte-for-byte.
func Color555ToRGBA8888(c uint16) (r, g, b, a uint8) {
	r = uint8((uint32(c&0x001F)*255 + 15) / 31)
	g = uint8((uint32((c&0x03E0)>>5)*255 + 15) / 31)
	b = uint8((uint32((c&0x7C00)>>10)*255 + 15) / 31)
	if c&0x8000 != 0 {
		a = 255
	}
	return
}

// RGBA8888To555 is the inverse used when accepting a replacement image back
// into the native 15-bit+alpha sprite encoding: alpha below 32 collapses to
// fully transparent on re-encode, matching the original decoder's threshold.
func RGBA8888To555(r, g, b, a uint8) uint16 {
	if a < 32 {
		return 0
	}
	out := uint16(0x8000)
	out |= uint16((uint32(r)*31 + 127) / 255)
	out |= uint16((uint32(g)*31+127)/255) << 5
	out |= uint16((uint32(b)*31+127)/255) << 10
	return out
}
