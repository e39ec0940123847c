package layout

import (
	"sync"

	"treescope/internal/domain"
)

// maxCachedLayouts bounds the memoized layouts; the cache resets when full
// rather than evicting, since a handful of keys covers a whole session.
const maxCachedLayouts = 64

type cacheKey struct {
	fp   domain.Fingerprint
	opts Options
}

// Cache memoizes layout passes. Layouts are pure functions of the immutable
// tree, so keying on the root's structural fingerprint plus the options is
// enough; FileNode equality is shallow by design. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	cells map[cacheKey][]Cell
	arcs  map[cacheKey][]Arc
}

func NewCache() *Cache {
	return &Cache{
		cells: make(map[cacheKey][]Cell),
		arcs:  make(map[cacheKey][]Arc),
	}
}

// Cells returns the memoized treemap for root, computing it on first use.
// Callers must not modify the returned slice.
func (cache *Cache) Cells(root *domain.FileNode, opts Options) []Cell {
	if root == nil {
		return nil
	}
	key := cacheKey{fp: root.Fingerprint(), opts: opts}
	cache.mu.RLock()
	cells, ok := cache.cells[key]
	cache.mu.RUnlock()
	if ok {
		return cells
	}
	cells = MakeCells(root, opts)
	cache.mu.Lock()
	if len(cache.cells) >= maxCachedLayouts {
		cache.cells = make(map[cacheKey][]Cell)
	}
	cache.cells[key] = cells
	cache.mu.Unlock()
	return cells
}

// Arcs returns the memoized radial layout for root, adaptive policy
// included, computing it on first use. Callers must not modify the returned
// slice.
func (cache *Cache) Arcs(root *domain.FileNode, opts Options) []Arc {
	if root == nil {
		return nil
	}
	key := cacheKey{fp: root.Fingerprint(), opts: opts}
	cache.mu.RLock()
	arcs, ok := cache.arcs[key]
	cache.mu.RUnlock()
	if ok {
		return arcs
	}
	arcs = MakeArcsAdaptive(root, opts)
	cache.mu.Lock()
	if len(cache.arcs) >= maxCachedLayouts {
		cache.arcs = make(map[cacheKey][]Arc)
	}
	cache.arcs[key] = arcs
	cache.mu.Unlock()
	return arcs
}
