package texcache

// DumpSink receives one decoded texture's RGBA per cache miss, keyed by a
// content hash over its decoded RGBA (see contentHash) — the 3D-texture analogue of
// gpu2d's per-sprite SpriteDumpSink (spec.md §4.7's texture-cache feeder is
// explicitly modeled on the same offline-dump idea as sprites).
type DumpSink interface {
	DumpTexture(hash uint64, width, height int, rgba []byte)
}

// ReplaceSource looks up a loaded replacement image for a texture content
// hash, the texture-cache counterpart of gpu2d.ReplacementSource.
type ReplaceSource interface {
	SampleTexture(hash uint64, nativeX, nativeY, nativeW, nativeH int) (r, g, b, a uint8, ok bool)
}

// contentHash computes spec.md's TextureKey: the FNV-1a-64 of the decoded
// RGBA buffer mixed with (width, height, flags, format tag) — flags' bit 0
// is the mip flag (always 0; this cache has no mip concept) and bit 1 is
// Color0Transparent. Hashing the decoded pixels rather than the raw
// texel/palette bytes means two textures that decode to the same image (e.g.
// the same bitmap re-addressed at a different VRAM offset) dump and replace
// under the same key, matching assets.MakeKey's hash family closely enough
// that the two caches' dump/replace file names never collide across
// sprite/texture namespaces (which also carry a Kind-derived subdirectory).
func contentHash(tex Texture, d Decoded) uint64 {
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

	for _, b := range d.RGBA {
		mix(b)
	}
	mixInt(d.Width)
	mixInt(d.Height)
	var flags byte
	if tex.Color0Transparent {
		flags |= 0x2
	}
	mix(flags)
	mix(byte(tex.Format))
	return h
}
