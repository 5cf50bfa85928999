package gpu2d

// VRAMWindow is a byte-addressable, power-of-two-folded view over one of the
// console's VRAM regions. Mask is (size-1); every address into the window is
// folded with Addr before use, so callers never index out of range. This is
// the "flat coherent view" spec.md §1 treats as external — the real
// per-scanline VRAM-to-bank mapping lives outside this module.
type VRAMWindow struct {
	Bytes []byte
	Mask  uint32
}

// Addr folds addr into the window, returning the in-range offset.
func (w VRAMWindow) Addr(addr uint32) uint32 {
	return addr & w.Mask
}

// Byte reads a single byte through the mask fold. Returns 0 for an empty
// (unmapped) window rather than panicking — an unmapped bank is a normal,
// non-fatal condition (spec.md §7).
func (w VRAMWindow) Byte(addr uint32) uint8 {
	if len(w.Bytes) == 0 {
		return 0
	}
	return w.Bytes[w.Addr(addr)&uint32(len(w.Bytes)-1)]
}

// Word16 reads a little-endian 16-bit value at addr (folded, byte-aligned).
func (w VRAMWindow) Word16(addr uint32) uint16 {
	lo := w.Byte(addr)
	hi := w.Byte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Word32 reads a little-endian 32-bit value at addr (folded, byte-aligned).
func (w VRAMWindow) Word32(addr uint32) uint32 {
	return uint32(w.Word16(addr)) | uint32(w.Word16(addr+2))<<16
}

// Palette16 is a fixed 16-entry 15-bit-color palette bank (background
// extended palette slot, or an object extended-palette bank slice).
type Palette16 [16]uint16

// Palette256 is a fixed 256-entry 15-bit-color palette (object extended
// palette, or a flat BG/OBJ base palette region).
type Palette256 [256]uint16

// VRAMSource is the collaborator interface the render path pulls memory
// views through. One instance is supplied per display unit; num (0 or 1)
// lets a single implementation serve both units out of a shared bus.
type VRAMSource interface {
	// BGVRAM returns the background tile/map window for the given unit.
	BGVRAM(unit int) VRAMWindow
	// OBJVRAM returns the sprite tile window for the given unit.
	OBJVRAM(unit int) VRAMWindow
	// BGExtPal returns the 16-color extended palette bank selected by
	// (slot, tileHigh4) for the given unit's background layer.
	BGExtPal(unit int, slot int, tileHigh4 int) Palette16
	// OBJExtPal returns the 256-color extended palette bank selected by
	// slot (0..15, from the sprite's palette-number attribute bits) for
	// the given unit.
	OBJExtPal(unit int, slot int) Palette256
	// LCDCBank returns a 128KiB direct buffer for VRAM-display mode and
	// display capture. ok is false when no bank is mapped at that index.
	LCDCBank(index int) (bank []byte, ok bool)
	// Palette returns the 16-bit-color palette buffer for the given region
	// (see PaletteRegion below).
	Palette(region PaletteRegion) []uint16
	// MarkDirty flags a 512-byte block of the given LCDC bank as written,
	// so downstream texture-cache invalidation can detect the write.
	MarkDirty(bank int, block int)
}

// PaletteRegion selects one of the four flat 16-bit-color palette buffers.
type PaletteRegion int

const (
	PaletteBGA PaletteRegion = iota
	PaletteBGB
	PaletteOBJA
	PaletteOBJB
)

// DirtyBlockSize is the capture-write granularity named in spec.md §4.5.
const DirtyBlockSize = 512
