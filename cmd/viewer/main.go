// Command viewer is a small ebiten.Game demo that drives gpu2d against a
// synthetic VRAM fixture and displays both display units side by side. It
// exists to exercise gpu2d end to end outside of a real emulator core,
// following the teacher's cli/runner.go and emu/emulator_ebiten.go
// Update/Draw split.
package main

import (
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/user-none/ds2d/gpu2d"
)

const (
	screenW, screenH = 256, 192
	windowScale      = 2
)

// fixtureVRAM is a minimal gpu2d.VRAMSource backed by plain byte slices, big
// enough to hold one BG0 tilemap/tileset and a handful of OBJ tiles per
// unit. It has no palette banking beyond bank 0 and no LCDC/capture support,
// which is enough to exercise the BG/OBJ/window/compositor path.
type fixtureVRAM struct {
	bg      [2][]byte
	obj     [2][]byte
	palette [4][]uint16 // indexed by PaletteRegion
}

func (v *fixtureVRAM) BGVRAM(unit int) gpu2d.VRAMWindow {
	return gpu2d.VRAMWindow{Bytes: v.bg[unit], Mask: uint32(len(v.bg[unit]) - 1)}
}

func (v *fixtureVRAM) OBJVRAM(unit int) gpu2d.VRAMWindow {
	return gpu2d.VRAMWindow{Bytes: v.obj[unit], Mask: uint32(len(v.obj[unit]) - 1)}
}

func (v *fixtureVRAM) BGExtPal(unit int, slot int, tileHigh4 int) gpu2d.Palette16 {
	return gpu2d.Palette16{}
}

func (v *fixtureVRAM) OBJExtPal(unit int, slot int) gpu2d.Palette256 {
	return gpu2d.Palette256{}
}

func (v *fixtureVRAM) LCDCBank(index int) (bank []byte, ok bool) {
	return nil, false
}

func (v *fixtureVRAM) Palette(region gpu2d.PaletteRegion) []uint16 {
	return v.palette[region]
}

func (v *fixtureVRAM) MarkDirty(bank int, block int) {}

// newFixture builds a checkerboard BG0 (4bpp text mode) over a gradient
// palette, plus one 16-color sprite, for unit A. Unit B is left blank,
// standing in for a disabled or idle second display.
func newFixture() (*fixtureVRAM, *gpu2d.DisplayUnit, *gpu2d.DisplayUnit) {
	v := &fixtureVRAM{}
	v.bg[0] = make([]byte, 64*1024)
	v.obj[0] = make([]byte, 32*1024)
	v.bg[1] = make([]byte, 2*1024)
	v.obj[1] = make([]byte, 2*1024)

	palA := make([]uint16, 256)
	for i := 1; i < 16; i++ {
		// A simple ramp so adjacent tile indices are visibly distinct.
		c := uint16(i*2) & 0x1F
		palA[i] = c | c<<5 | c<<10
	}
	palOBJ := make([]uint16, 256)
	palOBJ[1] = 0x001F // red
	palOBJ[2] = 0x03E0 // green
	v.palette[gpu2d.PaletteBGA] = palA
	v.palette[gpu2d.PaletteBGB] = make([]uint16, 256)
	v.palette[gpu2d.PaletteOBJA] = palOBJ
	v.palette[gpu2d.PaletteOBJB] = make([]uint16, 256)

	// Two 4bpp 8x8 tiles at char base 0: tile 0 solid color 1, tile 1 solid
	// color 2, each byte packing two 4-bit pixels.
	for row := 0; row < 8; row++ {
		v.bg[0][row*4+0] = 0x11
		v.bg[0][row*4+1] = 0x11
		v.bg[0][row*4+2] = 0x11
		v.bg[0][row*4+3] = 0x11
		v.bg[0][32+row*4+0] = 0x22
		v.bg[0][32+row*4+1] = 0x22
		v.bg[0][32+row*4+2] = 0x22
		v.bg[0][32+row*4+3] = 0x22
	}
	// 32x32 tilemap at map base 0x2000, alternating tile 0/1 checkerboard.
	const mapBase = 0x2000
	for ty := 0; ty < 32; ty++ {
		for tx := 0; tx < 32; tx++ {
			tile := uint16((tx + ty) & 1)
			addr := mapBase + (ty*32+tx)*2
			v.bg[0][addr] = byte(tile)
			v.bg[0][addr+1] = 0
		}
	}

	// One 16x16 4bpp sprite tile (4 char tiles), solid color 1, at OBJ tile 0.
	for i := 0; i < 4*32; i++ {
		v.obj[0][i] = 0x11
	}

	unitA := gpu2d.NewDisplayUnit(0, v, nil)
	unitA.Regs.DispCnt.LayerEnable[0] = true
	unitA.Regs.DispCnt.ObjEnable = true
	unitA.Regs.BGCnt[0] = gpu2d.BGControl{MapBase: mapBase, ScreenSize: 0}

	// Sprite 0: 16x16 square (shape 0, size 1), 16-color, at (100,100).
	const attr0, attr1, attr2 = 100, 100 | 0x4000, 0
	unitA.OAM[0], unitA.OAM[1] = byte(attr0), byte(attr0>>8)
	unitA.OAM[2], unitA.OAM[3] = byte(attr1), byte(attr1>>8)
	unitA.OAM[4], unitA.OAM[5] = byte(attr2), byte(attr2>>8)

	unitB := gpu2d.NewDisplayUnit(1, v, nil)
	unitB.Enabled = true
	unitB.Regs.DispCnt.ForcedBlank = true

	return v, unitA, unitB
}

type game struct {
	unitA, unitB *gpu2d.DisplayUnit
	frame        int
	imgA, imgB   *ebiten.Image
	pixA, pixB   []byte
}

func newGame() *game {
	_, unitA, unitB := newFixture()
	return &game{
		unitA: unitA,
		unitB: unitB,
		imgA:  ebiten.NewImage(screenW, screenH),
		imgB:  ebiten.NewImage(screenW, screenH),
		pixA:  make([]byte, screenW*screenH*4),
		pixB:  make([]byte, screenW*screenH*4),
	}
}

func (g *game) Update() error {
	g.unitA.Regs.BGScrollX[0] = uint16(g.frame)
	renderUnit(g.unitA, g.pixA)
	renderUnit(g.unitB, g.pixB)
	gpu2d.VBlankEnd(g.unitA, g.unitB)
	g.imgA.WritePixels(g.pixA)
	g.imgB.WritePixels(g.pixB)
	g.frame++
	return nil
}

// renderUnit draws all 192 scanlines and converts each to image/draw's
// R,G,B,A byte order (gpu2d.OutputLine packs B,G,R,A into a uint32 word).
func renderUnit(u *gpu2d.DisplayUnit, dst []byte) {
	for line := 0; line < screenH; line++ {
		u.DrawSprites(line)
		u.DrawScanline(line)
		row := u.OutputLine(line)
		for x, bgra := range row {
			o := (line*screenW + x) * 4
			dst[o+0] = byte(bgra >> 16) // R
			dst[o+1] = byte(bgra >> 8)  // G
			dst[o+2] = byte(bgra >> 0)  // B
			dst[o+3] = byte(bgra >> 24) // A
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	out := image.NewRGBA(image.Rect(0, 0, screenW*2, screenH))
	draw.Draw(out, image.Rect(0, 0, screenW, screenH), toImage(g.pixA), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(screenW, 0, screenW*2, screenH), toImage(g.pixB), image.Point{}, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, screenW*2*windowScale, screenH*windowScale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), out, out.Bounds(), draw.Over, nil)

	screen.WritePixels(scaled.Pix)
}

func toImage(pix []byte) *image.RGBA {
	return &image.RGBA{Pix: pix, Stride: screenW * 4, Rect: image.Rect(0, 0, screenW, screenH)}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW * 2 * windowScale, screenH * windowScale
}

func main() {
	ebiten.SetWindowSize(screenW*2*windowScale, screenH*windowScale)
	ebiten.SetWindowTitle("ds2d viewer")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
