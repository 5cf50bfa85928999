package gpu2d

// Compose resolves the per-column candidate stack (bgObjLine sections 0-2,
// already including the merged sprite layer) into Final colors, applying
// color special effects per spec.md §4.4:
//
//   - A semi-transparent sprite (OBJ mode 1) always alpha-blends against
//     whatever is underneath when a valid 2nd target exists there, even if
//     BLDCNT's own effect mode is "none" — it only falls back to a plain
//     copy when there's nothing eligible to blend with.
//   - A 3D-layer or bitmap-sprite-as-3D-source pixel blends using its own
//     per-pixel alpha (ColorBlend5) instead of EVA/EVB.
//   - Otherwise the configured effect (alpha / brightness up / brightness
//     down) applies when the top candidate is a 1st-target layer, and for
//     alpha blend, the candidate underneath is a 2nd-target layer.
//
// Only the configured (BLDCNT) effects are gated per-column by the window
// effect-enable bit; the semi-transparent-sprite and 3D/bitmap-alpha blends
// above apply regardless of it.
func (u *DisplayUnit) Compose(line int) {
	buf := &u.buf
	blend := u.Regs.Blend

	for x := 0; x < 256; x++ {
		top := buf.Top(x)
		topFlags := lineFlags(top)

		effectsEnabled := buf.WindowMask[x]&WindowMaskEffect != 0

		switch {
		case topFlags&Flag3D != 0 && topFlags&FlagObjAlpha != 0:
			// 3D layer or a bitmap sprite carrying its own alpha (both
			// packed via spriteAlphaEntry); blend against the candidate
			// underneath regardless of BLDCNT, per hardware behavior.
			second := buf.Second(x)
			buf.Final[x] = ColorBlend5(top, second)

		case topFlags&FlagObjAlpha != 0:
			// Semi-transparent sprite using the normal target mask.
			second := buf.Second(x)
			if lineFlags(second)&blend.Target2 != 0 {
				buf.Final[x] = ColorBlend4(top, second, u.Regs.EVA, u.Regs.EVB)
			} else {
				buf.Final[x] = lineColor(top)
			}

		case !effectsEnabled || topFlags&blend.Target1 == 0:
			buf.Final[x] = lineColor(top)

		case blend.EffectMode == 1:
			second := buf.Second(x)
			if lineFlags(second)&blend.Target2 != 0 {
				buf.Final[x] = ColorBlend4(top, second, u.Regs.EVA, u.Regs.EVB)
			} else {
				buf.Final[x] = lineColor(top)
			}

		case blend.EffectMode == 2:
			// EVY-scale brightness up; 0x8 matches the special-effect path's
			// rounding bias (distinct from the output stage's master
			// brightness, which rounds 0x0 up / 0xF down).
			buf.Final[x] = ColorBrightnessUp(top, u.Regs.EVY, 0x8)

		case blend.EffectMode == 3:
			buf.Final[x] = ColorBrightnessDown(top, u.Regs.EVY, 0x7)

		default:
			buf.Final[x] = lineColor(top)
		}
	}
}
