package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
)

// ErrInvalidTGA is returned by decodeTGA for any malformed or unsupported
// input (truncated header, unsupported image type). The dump/replace paths
// treat this as "no replacement available" rather than propagating it.
var ErrInvalidTGA = errors.New("assets: invalid or unsupported TGA")

// encodeTGA writes img as an uncompressed 32-bit-per-pixel TGA (image type
// 2, BGRA, top-down), the documented fallback format for dumps when
// WritePNG is false (spec.md §4.8, testable property 6's round-trip).
func encodeTGA(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	var buf bytes.Buffer

	hdr := make([]byte, 18)
	hdr[2] = 2 // uncompressed true-color
	binary.LittleEndian.PutUint16(hdr[12:], uint16(w))
	binary.LittleEndian.PutUint16(hdr[14:], uint16(h))
	hdr[16] = 32          // bits per pixel
	hdr[17] = 0x08 | 0x20 // 8 bits alpha, top-left origin
	buf.Write(hdr)

	row := make([]byte, w*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			o := x * 4
			row[o], row[o+1], row[o+2], row[o+3] = c.B, c.G, c.R, c.A
		}
		buf.Write(row)
	}
	return buf.Bytes()
}

// decodeTGA reads an uncompressed or run-length-encoded 24 or 32bpp TGA,
// the two variants the original hirez dumper's loader accepts for
// user-supplied replacement images.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, ErrInvalidTGA
	}
	idLen := int(data[0])
	imgType := data[2]
	w := int(binary.LittleEndian.Uint16(data[12:]))
	h := int(binary.LittleEndian.Uint16(data[14:]))
	bpp := int(data[16])
	descriptor := data[17]
	if w <= 0 || h <= 0 || (bpp != 24 && bpp != 32) {
		return nil, ErrInvalidTGA
	}
	if imgType != 2 && imgType != 10 {
		return nil, ErrInvalidTGA
	}

	body := data[18+idLen:]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bytesPerPixel := bpp / 8

	topDown := descriptor&0x20 != 0

	px := make([]byte, w*h*bytesPerPixel)
	if imgType == 2 {
		if len(body) < len(px) {
			return nil, ErrInvalidTGA
		}
		copy(px, body)
	} else {
		if err := decodeRLE(body, px, bytesPerPixel); err != nil {
			return nil, err
		}
	}

	for y := 0; y < h; y++ {
		srcRow := y
		if !topDown {
			srcRow = h - 1 - y
		}
		for x := 0; x < w; x++ {
			o := (srcRow*w + x) * bytesPerPixel
			if o+bytesPerPixel > len(px) {
				return nil, ErrInvalidTGA
			}
			b, g, r := px[o], px[o+1], px[o+2]
			a := uint8(255)
			if bytesPerPixel == 4 {
				a = px[o+3]
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img, nil
}

// decodeRLE unpacks TGA's run-length packet scheme into dst (already sized
// width*height*bytesPerPixel).
func decodeRLE(src, dst []byte, bytesPerPixel int) error {
	si, di := 0, 0
	for di < len(dst) {
		if si >= len(src) {
			return ErrInvalidTGA
		}
		packet := src[si]
		si++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if si+bytesPerPixel > len(src) {
				return ErrInvalidTGA
			}
			px := src[si : si+bytesPerPixel]
			si += bytesPerPixel
			for i := 0; i < count && di < len(dst); i++ {
				copy(dst[di:di+bytesPerPixel], px)
				di += bytesPerPixel
			}
		} else {
			n := count * bytesPerPixel
			if si+n > len(src) || di+n > len(dst) {
				return ErrInvalidTGA
			}
			copy(dst[di:di+n], src[si:si+n])
			si += n
			di += n
		}
	}
	return nil
}
