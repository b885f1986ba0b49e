package sherlock

import (
	"unsafe"

	"sherlock/board"
)

// Cache is an opt-in, clustered, always-replace legality verdict cache keyed
// by a board's Zobrist hash, in the shape of a search engine's transposition
// table. Unlike a transposition table an entry carries no score, depth, or
// best move; legality is a decision problem, so a hit is just a hash and a
// bool.
//
// A Cache is never implicit: nothing in this module reaches for one on its
// own. Callers that want memoized verdicts create one explicitly and pass
// it to IsLegalCached, which keeps the engine free of global mutable state;
// two goroutines sharing a *Cache are on their own for synchronization, same
// as two goroutines sharing any other value.
const (
	defaultCacheSizeMB = 16
	cacheClusterSize   = 4
)

type cacheEntry struct {
	hash     uint64
	legal    bool
	occupied bool
}

// Cache holds verdicts for previously analysed positions.
type Cache struct {
	entries  []cacheEntry
	clusters uint64
}

// NewCache allocates a cache sized to approximately sizeMB megabytes.
// sizeMB <= 0 uses a small default.
func NewCache(sizeMB int) *Cache {
	if sizeMB <= 0 {
		sizeMB = defaultCacheSizeMB
	}
	entrySize := uint64(unsafe.Sizeof(cacheEntry{}))
	clusterBytes := entrySize * cacheClusterSize
	clusters := uint64(sizeMB) * 1024 * 1024 / clusterBytes
	if clusters == 0 {
		clusters = 1
	}
	return &Cache{
		entries:  make([]cacheEntry, clusters*cacheClusterSize),
		clusters: clusters,
	}
}

func (c *Cache) lookup(hash uint64) (legal bool, found bool) {
	base := int((hash % c.clusters) * cacheClusterSize)
	for i := 0; i < cacheClusterSize; i++ {
		e := &c.entries[base+i]
		if e.occupied && e.hash == hash {
			return e.legal, true
		}
	}
	return false, false
}

func (c *Cache) store(hash uint64, legal bool) {
	base := int((hash % c.clusters) * cacheClusterSize)
	for i := 0; i < cacheClusterSize; i++ {
		if !c.entries[base+i].occupied {
			c.entries[base+i] = cacheEntry{hash: hash, legal: legal, occupied: true}
			return
		}
	}
	// Cluster full: always replace the first slot. A depth-aware replacement
	// policy was tried for the transposition table this is adapted from and
	// measured worse; a verdict cache has even less signal to replace on.
	c.entries[base] = cacheEntry{hash: hash, legal: legal, occupied: true}
}

// IsLegalCached behaves like IsLegal but consults cache first and stores the
// verdict after computing it. A nil cache degrades to plain IsLegal.
func IsLegalCached(b *board.Board, cache *Cache) bool {
	if cache == nil {
		return IsLegal(b)
	}
	hash := b.Hash()
	if legal, found := cache.lookup(hash); found {
		return legal
	}
	legal := IsLegal(b)
	cache.store(hash, legal)
	return legal
}
