// Package verdictcache memoizes decisions for URLs seen earlier in a session.
package verdictcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/services/scanner"
)

// Stats reports lightweight cache metrics.
type Stats struct {
	Capacity  int    // configured capacity (0 for disabled cache)
	Size      int    // current number of entries
	Hits      uint64 // total cache hits since construction
	Misses    uint64 // total cache misses since construction
	Evictions uint64 // total evictions since construction
}

// Cache is an LRU of decisions keyed by Key.
type Cache struct {
	lru       *lru.Cache[string, domain.Decision]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a Cache with the given capacity. If size <= 0 the returned
// cache is disabled: it always misses and stores nothing.
func New(size int) (*Cache, error) {
	c := &Cache{}
	if size <= 0 {
		return c, nil
	}
	l, err := lru.NewWithEvict(size, func(string, domain.Decision) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	c.capacity = size
	return c, nil
}

// Get looks up a decision. Hits and misses are counted.
func (c *Cache) Get(key string) (domain.Decision, bool) {
	if c.lru == nil {
		return domain.Decision{}, false
	}
	if d, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return d, true
	}
	c.misses.Add(1)
	return domain.Decision{}, false
}

// Put stores a decision.
func (c *Cache) Put(key string, d domain.Decision) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, d)
}

// Len returns the number of cached decisions.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge clears the cache. Evictions are counted via the eviction callback.
func (c *Cache) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Capacity:  c.capacity,
		Size:      c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

var _ scanner.VerdictCache = (*Cache)(nil)
