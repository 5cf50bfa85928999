package assets

import "hash/fnv"

// MakeKey computes an FNV-1a-64 hash over the exact native pixel bytes a
// decode produced. Service does not call it: dump file names and
// replacement lookups use the hash the caller passes in (gpu2d's and
// texcache's content hashes, which also mix in dimensions and format)
// (spec.md's GLOSSARY pins this to FNV-1a-64; the standard
// library's hash/fnv implements the identical offset/prime, so this is the
// one place the module intentionally reaches for the standard library
// instead of a third-party hashing package — see DESIGN.md).
func MakeKey(nativeRGBA []byte) uint64 {
	h := fnv.New64a()
	h.Write(nativeRGBA)
	return h.Sum64()
}

// Kind tags which dump/replace namespace a key belongs to, since sprites
// and textures are dumped to separate directories with separate filename
// rules even when two hashes happen to collide across namespaces.
type Kind uint8

const (
	KindSprite Kind = iota
	KindTexture
)

func (k Kind) dirName() string {
	if k == KindTexture {
		return "textures"
	}
	return "sprites"
}
