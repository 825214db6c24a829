package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"projectpulse/domain/sheet"
	"projectpulse/ports"
)

// Entry is one cached fetch: the raw table plus the time it was fetched.
type Entry struct {
	Table     sheet.Table
	FetchedAt time.Time
}

// Expired reports whether the entry is older than ttl at the given instant.
// Pure so expiry is testable without a real clock.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) >= ttl
}

// TableCache keeps the last fetched table for a bounded time window so every
// page render does not refetch the sheet. Concurrent refreshes of an expired
// entry collapse into a single upstream fetch.
type TableCache struct {
	source ports.TableSource
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	entry    *Entry
	inflight singleflight.Group
}

// New creates a cache in front of the given source.
func New(source ports.TableSource, ttl time.Duration) *TableCache {
	return &TableCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached table, fetching through the source when the cache
// is empty or expired.
func (c *TableCache) Get(ctx context.Context) (sheet.Table, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry != nil && !entry.Expired(c.now(), c.ttl) {
		return entry.Table, nil
	}

	v, err, _ := c.inflight.Do("fetch", func() (interface{}, error) {
		// Another caller may have refreshed while this one waited.
		c.mu.RLock()
		entry := c.entry
		c.mu.RUnlock()
		if entry != nil && !entry.Expired(c.now(), c.ttl) {
			return entry.Table, nil
		}

		table, err := c.source.Fetch(ctx)
		if err != nil {
			return sheet.Table{}, err
		}

		c.mu.Lock()
		c.entry = &Entry{Table: table, FetchedAt: c.now()}
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return sheet.Table{}, err
	}
	return v.(sheet.Table), nil
}

// Invalidate drops the cached entry. The next Get refetches. Backs the
// manual refresh button.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// FetchedAt returns the fetch time of the current entry, or the zero time
// when nothing is cached.
func (c *TableCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return time.Time{}
	}
	return c.entry.FetchedAt
}
