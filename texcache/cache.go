package texcache

import "sync"

// Key identifies one texture binding well enough to reuse a decode across
// frames: the VRAM offset/format/size a polygon's texture attributes
// resolve to, plus the palette offset (so two textures sharing texel data
// but different palettes don't collide).
type Key struct {
	TexelAddr uint32
	PalAddr   uint32
	Format    Format
	Width     int
	Height    int
	Color0Transparent bool
}

// Cache memoizes Decode results across frames, keyed by Key, invalidated by
// VRAM writes the caller reports through MarkBankDirty and Clear. This mirrors the
// teacher's badge/game-image caches: a mutex-guarded map with no size cap,
// cleared wholesale on invalidation of the banks it draws from rather than
// tracked per-entry (spec.md §4.7 never asks for partial invalidation,
// only "redecode when the source VRAM bank is dirty").
type Cache struct {
	mu      sync.Mutex
	entries map[Key]Decoded
	dirty   map[int]struct{} // VRAM bank indices touched since the last Clear

	Dump    DumpSink       // optional; nil disables per-decode texture dumping
	Replace ReplaceSource  // optional; nil disables replacement substitution
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]Decoded),
		dirty:   make(map[int]struct{}),
	}
}

// Get returns the cached decode for key, decoding tex and storing it on a
// miss. Callers are responsible for calling MarkBankDirty/Clear when the
// VRAM bank(s) a texture reads from have been written. A fresh decode is
// dumped (if Dump is set) and has any loaded replacement pixels substituted
// in (if Replace is set) before being cached, so repeat hits never redo
// either of those.
func (c *Cache) Get(key Key, tex Texture) Decoded {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.entries[key]; ok {
		return d
	}
	d := Decode(tex)
	c.applyDumpAndReplace(tex, &d)
	c.entries[key] = d
	return d
}

func (c *Cache) applyDumpAndReplace(tex Texture, d *Decoded) {
	if c.Dump == nil && c.Replace == nil {
		return
	}
	hash := contentHash(tex, *d)
	if c.Dump != nil {
		c.Dump.DumpTexture(hash, d.Width, d.Height, d.RGBA)
	}
	if c.Replace == nil {
		return
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			r, g, b, a, ok := c.Replace.SampleTexture(hash, x, y, d.Width, d.Height)
			if !ok {
				continue
			}
			o := (y*d.Width + x) * 4
			d.RGBA[o], d.RGBA[o+1], d.RGBA[o+2], d.RGBA[o+3] = r, g, b, a
		}
	}
}

// MarkBankDirty records that VRAM bank n was written since the last Clear;
// it only sets the flag that Dirty reports. Nothing is dropped until Clear,
// which discards every cached decode, not only those from bank n.
func (c *Cache) MarkBankDirty(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[n] = struct{}{}
}

// Clear drops every cached decode, intended to be called once whenever any
// bank feeding 3D texture VRAM has pending dirty blocks — a coarse but
// simple invalidation matching the teacher's caches, which never evict
// selectively either.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]Decoded)
	c.dirty = make(map[int]struct{})
}

// Dirty reports whether any bank has been marked dirty since the last Clear.
func (c *Cache) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirty) > 0
}
