package assets

// SpriteDumpConfig controls sprite dumping/replacement, mirroring the
// original's per-game sprite hi-res options (spec.md §6).
type SpriteDumpConfig struct {
	DumpEnabled    bool
	ReplaceEnabled bool
	WritePNG       bool // PNG always available here (image/png is stdlib); TGA stays as documented fallback
}

// TextureDumpConfig is the 3D-texture analogue of SpriteDumpConfig.
type TextureDumpConfig struct {
	DumpEnabled    bool
	ReplaceEnabled bool
	WritePNG       bool
}

// DefaultSpriteDumpConfig matches the original's "writePNG=true when PNG
// support is compiled in" default (spec.md §4.8, supplemented from
// original_source/src/video/hirez/SpriteDump.h).
func DefaultSpriteDumpConfig() SpriteDumpConfig {
	return SpriteDumpConfig{WritePNG: true}
}

// DefaultTextureDumpConfig is TextureDumpConfig's equivalent default.
func DefaultTextureDumpConfig() TextureDumpConfig {
	return TextureDumpConfig{WritePNG: true}
}
