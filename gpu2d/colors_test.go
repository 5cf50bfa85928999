package gpu2d

import "testing"

func TestColorFromRGB555_WhiteMapsTo63(t *testing.T) {
	c := ColorFromRGB555(0x7FFF)
	if r6(c) != 63 || g6(c) != 63 || b6(c) != 63 {
		t.Errorf("white: got r=%d g=%d b=%d, want 63,63,63", r6(c), g6(c), b6(c))
	}
}

func TestColorFromRGB555_BlackStaysZero(t *testing.T) {
	c := ColorFromRGB555(0)
	if c != 0 {
		t.Errorf("black: got %#x, want 0", c)
	}
}

func TestColorBlend4_FullFirstSource(t *testing.T) {
	val1 := pack6(10, 20, 30)
	val2 := pack6(63, 63, 63)
	got := ColorBlend4(val1, val2, 16, 0)
	if got != val1 {
		t.Errorf("eva=16,evb=0: got %#x, want %#x", got, val1)
	}
}

func TestColorBlend4_Saturates(t *testing.T) {
	val1 := pack6(63, 63, 63)
	val2 := pack6(63, 63, 63)
	got := ColorBlend4(val1, val2, 16, 16)
	if r6(got) != 63 || g6(got) != 63 || b6(got) != 63 {
		t.Errorf("overflowing blend should saturate at 63, got r=%d g=%d b=%d", r6(got), g6(got), b6(got))
	}
}

func TestColorBlend5_ZeroAlphaPassesThrough(t *testing.T) {
	val2 := pack6(5, 6, 7)
	got := ColorBlend5(0, val2)
	if got != val2 {
		t.Errorf("alpha=0: got %#x, want val2 %#x", got, val2)
	}
}

func TestColorBrightnessUp_FullFactorReachesWhite(t *testing.T) {
	val := pack6(0, 10, 20)
	got := ColorBrightnessUp(val, 16, 0)
	if r6(got) != 63 || g6(got) != 63 || b6(got) != 63 {
		t.Errorf("factor=16 should fade fully to white, got r=%d g=%d b=%d", r6(got), g6(got), b6(got))
	}
}

func TestColorBrightnessDown_FullFactorReachesBlack(t *testing.T) {
	val := pack6(63, 40, 20)
	got := ColorBrightnessDown(val, 16, 0)
	if got != 0 {
		t.Errorf("factor=16 should fade fully to black, got %#x", got)
	}
}

func TestToBGRA8_ChannelReplication(t *testing.T) {
	c := pack6(63, 0, 32)
	got := ToBGRA8(c, 0xFF)
	r8 := uint8(got >> 16)
	g8 := uint8(got >> 8)
	b8 := uint8(got)
	a8 := uint8(got >> 24)
	if r8 != 255 {
		t.Errorf("r6=63 should expand to 255, got %d", r8)
	}
	if g8 != 0 {
		t.Errorf("g6=0 should expand to 0, got %d", g8)
	}
	if a8 != 0xFF {
		t.Errorf("alpha passthrough: got %d, want 255", a8)
	}
	_ = b8
}

func TestColor555ToRGBA8888_RoundTrip(t *testing.T) {
	for c := uint16(0); c < 0x8000; c += 0x421 {
		full := c | 0x8000
		r, g, b, a := Color555ToRGBA8888(full)
		if a != 255 {
			t.Fatalf("c=%#x: alpha bit set should decode to a=255, got %d", c, a)
		}
		back := RGBA8888To555(r, g, b, a)
		if back != full {
			t.Errorf("c=%#x: round trip mismatch, got %#x", full, back)
		}
	}
}

func TestRGBA8888To555_LowAlphaCollapsesTransparent(t *testing.T) {
	got := RGBA8888To555(255, 255, 255, 31)
	if got != 0 {
		t.Errorf("a=31 (<32) should collapse to 0, got %#x", got)
	}
	got = RGBA8888To555(255, 255, 255, 32)
	if got == 0 {
		t.Errorf("a=32 should not collapse to 0")
	}
}
