package texcache

import "testing"

func TestDecode_Direct(t *testing.T) {
	tex := Texture{
		Format: FormatDirect,
		Width:  2, Height: 1,
		Texels: []byte{0xFF, 0xFF, 0x00, 0x00}, // pixel0 white+alpha, pixel1 black
	}
	d := Decode(tex)
	if d.RGBA[0] != 255 || d.RGBA[1] != 255 || d.RGBA[2] != 255 || d.RGBA[3] != 255 {
		t.Errorf("pixel0 should decode opaque white, got %v", d.RGBA[0:4])
	}
	if d.RGBA[4] != 0 || d.RGBA[7] != 0 {
		t.Errorf("pixel1 (alpha bit clear) should decode fully transparent, got %v", d.RGBA[4:8])
	}
}

func TestDecode_Pal256_Color0Transparent(t *testing.T) {
	pal := make([]uint16, 256)
	pal[0] = 0x7FFF
	pal[5] = 0x001F
	tex := Texture{
		Format: FormatPal256,
		Width:  2, Height: 1,
		Texels:            []byte{0, 5},
		Palette:           pal,
		Color0Transparent: true,
	}
	d := Decode(tex)
	if d.RGBA[3] != 0 {
		t.Errorf("index 0 with Color0Transparent should be alpha=0, got %d", d.RGBA[3])
	}
	if d.RGBA[4+3] != 255 {
		t.Errorf("index 5 should be opaque, got alpha=%d", d.RGBA[4+3])
	}
	if d.Index[0] != 0 || d.Index[1] != 5 {
		t.Errorf("index buffer mismatch: got %v", d.Index)
	}
}

func TestDecode_Pal4BitPacking(t *testing.T) {
	// 4 pixels at 2bpp packed into one byte, LSB first: idx = 0,1,2,3.
	tex := Texture{
		Format: FormatPal4,
		Width:  4, Height: 1,
		Texels:  []byte{0b11_10_01_00},
		Palette: make([]uint16, 4),
	}
	d := Decode(tex)
	want := []uint16{0, 1, 2, 3}
	for i, w := range want {
		if d.Index[i] != w {
			t.Errorf("pixel %d: got index %d, want %d", i, d.Index[i], w)
		}
	}
}

func TestDecodeAI_A3I5_AlphaExpansion(t *testing.T) {
	// index bits 0-4, alpha bits 5-7 (3-bit alpha).
	tex := Texture{
		Format: FormatA3I5,
		Width:  1, Height: 1,
		Texels:  []byte{0xFF}, // idx=0x1F, alpha field = 0x7 (max)
		Palette: []uint16{0x7FFF},
	}
	d := Decode(tex)
	if d.RGBA[3] != 255 {
		t.Errorf("max 3-bit alpha should expand to 255, got %d", d.RGBA[3])
	}
}

func TestDecodeAI_A5I3_ZeroAlpha(t *testing.T) {
	tex := Texture{
		Format: FormatA5I3,
		Width:  1, Height: 1,
		Texels:  []byte{0x00}, // alpha field all zero
		Palette: []uint16{0x7FFF},
	}
	d := Decode(tex)
	if d.RGBA[3] != 0 {
		t.Errorf("zero alpha field should expand to 0, got %d", d.RGBA[3])
	}
}

func TestDecode_OutOfRangePaletteIndexClamps(t *testing.T) {
	tex := Texture{
		Format: FormatPal256,
		Width:  1, Height: 1,
		Texels:  []byte{200},
		Palette: []uint16{0x001F, 0x03E0}, // only 2 entries
	}
	d := Decode(tex)
	if d.RGBA[3] != 255 {
		t.Errorf("out-of-range index should clamp and stay opaque, got alpha=%d", d.RGBA[3])
	}
}

func TestFormat_BitsPerPixel(t *testing.T) {
	cases := map[Format]int{
		FormatA3I5:   8,
		FormatPal4:   2,
		FormatPal16:  4,
		FormatPal256: 8,
		FormatTex4x4: 0,
		FormatA5I3:   8,
		FormatDirect: 16,
	}
	for f, want := range cases {
		if got := f.BitsPerPixel(); got != want {
			t.Errorf("%v: got %d bits, want %d", f, got, want)
		}
	}
}
