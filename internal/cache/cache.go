// Package cache implements the review cache: at most one fresh report per
// (workflow, report kind), replaced wholesale on every re-run.
package cache

import (
	"context"
	"sync"
	"time"

	"rpascope/ports"
)

type entry struct {
	value    interface{}
	version  uint64
	storedAt time.Time
}

// MemoryCache is the in-process review cache. A single mutex serializes
// get/put/invalidate so two concurrent re-runs for the same workflow can
// never interleave partial writes; the last writer wins and its version
// stamp supersedes the previous entry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[ports.CacheKey]*entry
	ttl     time.Duration
	version uint64
}

// NewMemoryCache creates a cache; ttl of zero disables expiry
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[ports.CacheKey]*entry),
		ttl:     ttl,
	}
}

// Get returns the cached report and whether it was a hit. Expired entries
// are treated as misses and evicted lazily.
func (c *MemoryCache) Get(_ context.Context, key ports.CacheKey) (interface{}, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && time.Since(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if current, still := c.entries[key]; still && current.version == e.version {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Put replaces the entry for the key wholesale; it never merges
func (c *MemoryCache) Put(_ context.Context, key ports.CacheKey, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.entries[key] = &entry{value: value, version: c.version, storedAt: time.Now()}
	return nil
}

// Invalidate removes the entry for the key
func (c *MemoryCache) Invalidate(_ context.Context, key ports.CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of live entries (test helper)
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
