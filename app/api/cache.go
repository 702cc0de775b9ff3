package api

import (
	"sync"
	"time"

	"github.com/sduras/webwatch/app/scrape"
)

// snapshotCache keeps the most recent batch around for ttl so bursts of
// requests do not refetch every source. A ttl of zero disables caching.
type snapshotCache struct {
	mu       sync.RWMutex
	batch    scrape.BatchResult
	storedAt time.Time
	ttl      time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

func (c *snapshotCache) get() (scrape.BatchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ttl <= 0 || c.storedAt.IsZero() {
		return scrape.BatchResult{}, false
	}
	if time.Since(c.storedAt) > c.ttl {
		return scrape.BatchResult{}, false
	}

	return c.batch, true
}

func (c *snapshotCache) set(batch scrape.BatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.batch = batch
	c.storedAt = time.Now()
}

func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.storedAt = time.Time{}
}

// age reports how long ago the cached batch was stored, or zero when the
// cache is empty.
func (c *snapshotCache) age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.storedAt.IsZero() {
		return 0
	}

	return time.Since(c.storedAt)
}
