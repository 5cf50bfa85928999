package assets

import "sync"

// dumpSet deduplicates dump requests within a session: once a hash has been
// written (or queued), it's never dumped again for the lifetime of the
// current game. It is bounded rather than allowed to grow forever across a
// long play session — when full, it evicts roughly half its entries in
// whatever order Go's map iteration happens to produce. This is
// deliberately not LRU (spec.md is explicit that eviction here doesn't need
// to track recency, just bound memory; see DESIGN.md's note on why
// hashicorp/golang-lru wasn't used here).
type dumpSet struct {
	mu    sync.Mutex
	limit int
	seen  map[uint64]struct{}
}

func newDumpSet(limit int) *dumpSet {
	return &dumpSet{limit: limit, seen: make(map[uint64]struct{})}
}

// CheckAndAdd reports whether hash was already seen; if not, it records it
// (evicting first if the set is at capacity) and returns false.
func (s *dumpSet) CheckAndAdd(hash uint64) (alreadySeen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[hash]; ok {
		return true
	}
	if len(s.seen) >= s.limit {
		evictRoughlyHalf(s.seen)
	}
	s.seen[hash] = struct{}{}
	return false
}

// Reset clears the set, called on SetGameId so hashes from a previous game
// don't suppress legitimate dumps for the new one.
func (s *dumpSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[uint64]struct{})
}

func evictRoughlyHalf(m map[uint64]struct{}) {
	target := len(m) / 2
	for k := range m {
		if target <= 0 {
			break
		}
		delete(m, k)
		target--
	}
}

// replacementEntry is one loaded replacement image, pre-scaled down to the
// sprite/texture's native resolution via nearest-neighbor (see
// loadReplacement) so Sample is a flat array read with no per-pixel work.
type replacementEntry struct {
	nativeW, nativeH int
	rgba             []byte // nativeW*nativeH*4
}

// replacementCache is the bounded, arbitrarily-evicted store of loaded
// replacement images, keyed by content hash. Like dumpSet, it intentionally
// does not track recency — when full it drops roughly half its entries in
// map-iteration order.
type replacementCache struct {
	mu      sync.Mutex
	limit   int
	entries map[uint64]replacementEntry
}

func newReplacementCache(limit int) *replacementCache {
	return &replacementCache{limit: limit, entries: make(map[uint64]replacementEntry)}
}

func (c *replacementCache) Get(hash uint64) (replacementEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[hash]
	return e, ok
}

func (c *replacementCache) Put(hash uint64, e replacementEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[hash]; !exists && len(c.entries) >= c.limit {
		evictRoughlyHalfEntries(c.entries)
	}
	c.entries[hash] = e
}

func (c *replacementCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]replacementEntry)
}

func evictRoughlyHalfEntries(m map[uint64]replacementEntry) {
	target := len(m) / 2
	for k := range m {
		if target <= 0 {
			break
		}
		delete(m, k)
		target--
	}
}
