package assets

import (
	"image"
	"image/color"
	"testing"
)

func makeTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	return img
}

func TestTGA_EncodeDecodeRoundTrip(t *testing.T) {
	src := makeTestImage(4, 3)
	data := encodeTGA(src)
	got, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := src.RGBAAt(x, y)
			gotPx := got.RGBAAt(x, y)
			if gotPx != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, gotPx, want)
			}
		}
	}
}

func TestDecodeTGA_RejectsTruncatedHeader(t *testing.T) {
	if _, err := decodeTGA([]byte{1, 2, 3}); err != ErrInvalidTGA {
		t.Errorf("expected ErrInvalidTGA for truncated header, got %v", err)
	}
}

func TestDecodeTGA_RejectsUnsupportedImageType(t *testing.T) {
	hdr := make([]byte, 18)
	hdr[2] = 1 // color-mapped, unsupported
	hdr[16] = 32
	if _, err := decodeTGA(hdr); err != ErrInvalidTGA {
		t.Errorf("expected ErrInvalidTGA for unsupported image type, got %v", err)
	}
}

func TestDecodeTGA_RLEPacket(t *testing.T) {
	// Build a small RLE-encoded 24bpp image by hand: one run of 4 identical
	// pixels, matching imgType 10 + bpp 24.
	w, h := 4, 1
	hdr := make([]byte, 18)
	hdr[2] = 10
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = 24
	hdr[17] = 0x20 // top-left origin

	body := []byte{0x80 | 3, 10, 20, 30} // RLE packet: repeat count 4, BGR = 10,20,30
	data := append(hdr, body...)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	for x := 0; x < w; x++ {
		c := img.RGBAAt(x, 0)
		if c.R != 30 || c.G != 20 || c.B != 10 || c.A != 255 {
			t.Errorf("pixel %d: got %v, want R=30 G=20 B=10 A=255", x, c)
		}
	}
}
