package server

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/platform"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Source    string
	Window    string
	ElementID int
}

// cacheEntry holds cached roots with their timestamp.
type cacheEntry struct {
	roots     []a11y.Element
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for element trees.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Roots returns cached roots if within TTL, otherwise reads fresh.
func (c *TreeCache) Roots(ctx context.Context, src platform.Source, opts platform.ReadOptions) ([]a11y.Element, error) {
	if c.ttl == 0 {
		return src.Roots(ctx, opts)
	}

	key := cacheKey{
		Source:    src.Describe(),
		Window:    opts.Window,
		ElementID: opts.ElementID,
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		roots := entry.roots
		c.mu.Unlock()
		return roots, nil
	}
	c.mu.Unlock()

	roots, err := src.Roots(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{roots: roots, timestamp: c.now()}
	c.mu.Unlock()

	return roots, nil
}

// Invalidate removes all cache entries read from the named source.
func (c *TreeCache) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Source == source {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached scopes.
func (c *TreeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
