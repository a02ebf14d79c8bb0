// Package snapshot caches a whole collection in memory for the list
// views, which filter and sort in-process. A refresh is guarded by
// seqguard so a slow fetch that was superseded (by a newer fetch or by
// a write-triggered invalidation) can never clobber fresher data.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/daehokim/soluhub/internal/app/system/seqguard"
)

// Fetch loads the current collection contents from the store.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// Cache holds one collection's snapshot.
type Cache[T any] struct {
	ttl time.Duration

	mu       sync.RWMutex
	guard    seqguard.Guard
	items    []T
	loadedAt time.Time
}

// NewCache returns an empty cache whose snapshots expire after ttl.
// A non-positive ttl disables caching: every Get fetches.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl}
}

// Get returns the cached snapshot, refreshing via fetch when the cache
// is empty or expired. The caller always receives the data its fetch
// produced; only the shared cache is protected from stale writes.
func (c *Cache[T]) Get(ctx context.Context, fetch Fetch[T]) ([]T, error) {
	c.mu.RLock()
	if c.ttl > 0 && !c.loadedAt.IsZero() && time.Since(c.loadedAt) < c.ttl {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	tok := c.guard.Begin()
	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.guard.Commit(tok) {
		c.items = items
		c.loadedAt = time.Now()
	}
	c.mu.Unlock()

	return items, nil
}

// Invalidate drops the snapshot and supersedes any refresh already in
// flight, so data fetched before a write cannot repopulate the cache.
// Call after every create, update, or delete.
func (c *Cache[T]) Invalidate() {
	c.guard.Begin()
	c.mu.Lock()
	c.items = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}
