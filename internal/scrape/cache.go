// Package scrape holds the TradingView HTML collaborators: the sectors
// overview scraper and the world macro-indicators table parser, both behind
// a short-lived in-memory cache so repeated requests don't hammer the site.
package scrape

import (
	"sync"
	"time"
)

// MemoryCache is a read-mostly TTL cache shared across requests. The clock
// is injected so expiry is testable.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   any
	expires time.Time
}

func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:   value,
		expires: c.now().Add(c.ttl),
	}
}
