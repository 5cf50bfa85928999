// Package assets is the content-addressed sprite/texture dump-and-replace
// layer (spec.md §4.8): it hashes decoded native pixels, optionally writes
// them to disk for a user to touch up, and optionally samples a
// user-supplied hi-res replacement back during rendering. It implements
// gpu2d.ReplacementSource so a DisplayUnit can be wired to it directly.
package assets

import (
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"
)

// Service is the top-level asset cache: one instance per running game.
type Service struct {
	mu      sync.Mutex
	baseDir string
	gameID  string

	sprite  SpriteDumpConfig
	texture TextureDumpConfig

	dumped  *dumpSet
	replace *replacementCache
	queue   *dumpQueue
}

// dumpSetLimit/replacementCacheLimit bound the two session caches; picked
// generously above what a single game's sprite/texture set realistically
// needs, so eviction is a safety valve rather than the common case.
const (
	dumpSetLimit          = 4096
	replacementCacheLimit = 2048
)

// NewService constructs a Service rooted at baseDir (a per-frontend
// directory the caller owns, e.g. "<configdir>/hires"). It starts with no
// game loaded; call SetGameId before any Dump/Sample calls matter.
func NewService(baseDir string) *Service {
	return &Service{
		baseDir: baseDir,
		sprite:  DefaultSpriteDumpConfig(),
		texture: DefaultTextureDumpConfig(),
		dumped:  newDumpSet(dumpSetLimit),
		replace: newReplacementCache(replacementCacheLimit),
	}
}

// gameConfig is the on-disk shape of a game's dump/replace settings,
// persisted one level above the sprites/textures directories.
type gameConfig struct {
	Sprite  SpriteDumpConfig
	Texture TextureDumpConfig
}

// SetGameId switches the active game: resets the session dedup set and
// replacement cache (a sprite hash from one game has no meaning for
// another's VRAM), restarts the dump worker rooted at the new game's
// subdirectory, and loads that game's persisted dump/replace settings if a
// config file exists (matching the teacher's LoadConfig "missing file means
// defaults" behavior).
func (s *Service) SetGameId(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue != nil {
		s.queue.Shutdown()
	}
	s.gameID = gameID
	s.dumped.Reset()
	s.replace.Reset()
	s.queue = newDumpQueue(filepath.Join(s.baseDir, gameID))

	s.sprite = DefaultSpriteDumpConfig()
	s.texture = DefaultTextureDumpConfig()
	var cfg gameConfig
	if err := readJSON(s.configPath(), &cfg); err == nil {
		s.sprite = cfg.Sprite
		s.texture = cfg.Texture
	} else if !os.IsNotExist(err) {
		log.Printf("assets: loading config for %q: %v", gameID, err)
	}
}

func (s *Service) configPath() string {
	return filepath.Join(s.baseDir, s.gameID, "config.json")
}

// saveConfig persists the current dump/replace settings, logging (not
// returning) any write failure, matching how SetSpriteDumpConfig et al. are
// called from UI code with no error path of their own.
func (s *Service) saveConfig() {
	cfg := gameConfig{Sprite: s.sprite, Texture: s.texture}
	if err := atomicWriteJSON(s.configPath(), cfg); err != nil {
		log.Printf("assets: saving config for %q: %v", s.gameID, err)
	}
}

// SetSpriteDumpConfig/SetTextureDumpConfig update the dump/replace toggles
// and persist them immediately so they survive past this session.
func (s *Service) SetSpriteDumpConfig(c SpriteDumpConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sprite = c
	s.saveConfig()
}

func (s *Service) SetTextureDumpConfig(c TextureDumpConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texture = c
	s.saveConfig()
}

// Shutdown stops the dump worker, draining any buffered requests first.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue != nil {
		s.queue.Shutdown()
		s.queue = nil
	}
}

// DumpSprite implements gpu2d.SpriteDumpSink: hash is the caller's own
// content hash over the sprite's decoded RGBA pixels (gpu2d's
// spriteContentHash), not recomputed here from rgba, so a dumped file and
// Sample's later lookup for the same sprite always agree on a filename.
func (s *Service) DumpSprite(hash uint64, width, height int, rgba []byte) {
	s.dump(KindSprite, hash, width, height, rgba, s.sprite.DumpEnabled, s.sprite.WritePNG)
}

// DumpTexture is DumpSprite's 3D-texture counterpart; hash is texcache's own
// content hash over the decoded texture's RGBA pixels.
func (s *Service) DumpTexture(hash uint64, width, height int, rgba []byte) {
	s.dump(KindTexture, hash, width, height, rgba, s.texture.DumpEnabled, s.texture.WritePNG)
}

func (s *Service) dump(kind Kind, hash uint64, width, height int, rgba []byte, enabled, png bool) {
	if !enabled {
		return
	}

	s.mu.Lock()
	queue := s.queue
	alreadySeen := s.dumped.CheckAndAdd(hash)
	s.mu.Unlock()

	if alreadySeen || queue == nil {
		return
	}

	cp := make([]byte, len(rgba))
	copy(cp, rgba)
	queue.Enqueue(dumpRequest{Kind: kind, Hash: hash, Width: width, Height: height, RGBA: cp, WritePNG: png})
}

// Sample implements gpu2d.ReplacementSource: it looks up (and lazily loads)
// a replacement image for hash, sampling the native-resolution pixel at
// (nativeX, nativeY). ok is false when no replacement file exists or the
// kind's ReplaceEnabled toggle is off.
func (s *Service) Sample(hash uint64, nativeX, nativeY, nativeW, nativeH int) (r, g, b, a uint8, ok bool) {
	return s.sample(KindSprite, hash, nativeX, nativeY, nativeW, nativeH)
}

// SampleTexture is Sample's 3D-texture counterpart (texcache's feeder calls
// this directly; it isn't part of the gpu2d.ReplacementSource interface,
// which is sprite-only per spec.md §4.2 step 8).
func (s *Service) SampleTexture(hash uint64, nativeX, nativeY, nativeW, nativeH int) (r, g, b, a uint8, ok bool) {
	return s.sample(KindTexture, hash, nativeX, nativeY, nativeW, nativeH)
}

func (s *Service) sample(kind Kind, hash uint64, nativeX, nativeY, nativeW, nativeH int) (r, g, b, a uint8, ok bool) {
	s.mu.Lock()
	enabled := (kind == KindSprite && s.sprite.ReplaceEnabled) || (kind == KindTexture && s.texture.ReplaceEnabled)
	dir := filepath.Join(s.baseDir, s.gameID, kind.dirName())
	s.mu.Unlock()
	if !enabled {
		return 0, 0, 0, 0, false
	}

	entry, found := s.replace.Get(hash)
	if !found {
		var loadErr error
		entry, loadErr = loadReplacement(dir, hash, nativeW, nativeH)
		if loadErr != nil {
			if !os.IsNotExist(loadErr) {
				log.Printf("assets: loading replacement for hash %016x: %v", hash, loadErr)
			}
			return 0, 0, 0, 0, false
		}
		s.replace.Put(hash, entry)
	}

	if nativeX < 0 || nativeY < 0 || nativeX >= entry.nativeW || nativeY >= entry.nativeH {
		return 0, 0, 0, 0, false
	}
	o := (nativeY*entry.nativeW + nativeX) * 4
	return entry.rgba[o], entry.rgba[o+1], entry.rgba[o+2], entry.rgba[o+3], true
}

// loadReplacement reads hash's replacement file (PNG preferred, TGA
// fallback), rejects it unless its dimensions are an exact integer
// multiple of (nativeW, nativeH) on both axes (spec.md §4.2 step 8), and
// nearest-neighbor-downsamples it back to native resolution so Sample never
// has per-pixel scaling work on the hot path.
func loadReplacement(dir string, hash uint64, nativeW, nativeH int) (replacementEntry, error) {
	for _, wantPNG := range []bool{true, false} {
		path := filepath.Join(dir, filename(hash, wantPNG))
		data, err := os.ReadFile(path)
		if err != nil {
			if wantPNG {
				continue
			}
			return replacementEntry{}, err
		}

		var img *image.RGBA
		if wantPNG {
			decoded, derr := decodePNGBytes(data)
			if derr != nil {
				return replacementEntry{}, derr
			}
			img = toRGBAImage(decoded)
		} else {
			img, err = decodeTGA(data)
			if err != nil {
				return replacementEntry{}, err
			}
		}

		w, h := img.Rect.Dx(), img.Rect.Dy()
		if nativeW <= 0 || nativeH <= 0 || w%nativeW != 0 || h%nativeH != 0 {
			return replacementEntry{}, ErrInvalidTGA
		}

		return downsample(img, nativeW, nativeH), nil
	}
	return replacementEntry{}, os.ErrNotExist
}

// toRGBAImage converts any decoded image.Image to *image.RGBA so downsample
// has one concrete pixel layout to work with regardless of codec.
func toRGBAImage(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// downsample nearest-neighbor-scales src down to exactly nativeW x nativeH,
// which for an exact integer-ratio source is equivalent to picking every
// Nth pixel (the replacement image's "author draws at Nx scale" contract).
func downsample(src *image.RGBA, nativeW, nativeH int) replacementEntry {
	dst := image.NewRGBA(image.Rect(0, 0, nativeW, nativeH))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return replacementEntry{nativeW: nativeW, nativeH: nativeH, rgba: dst.Pix}
}
