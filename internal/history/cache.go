package history

import (
	"sync"
	"time"
)

// statsCache provides thread-safe caching for computed statistics
type statsCache struct {
	mu          sync.RWMutex
	stats       []Stats
	lastRefresh time.Time
	valid       bool
	ttl         time.Duration // cache time-to-live
}

// newStatsCache creates a new statistics cache with the specified TTL
func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl}
}

// get returns cached stats if available and fresh
func (c *statsCache) get() ([]Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Since(c.lastRefresh) > c.ttl {
		return nil, false
	}
	return c.stats, true
}

// set stores freshly computed stats
func (c *statsCache) set(stats []Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = stats
	c.lastRefresh = time.Now()
	c.valid = true
}

// invalidate drops the cached stats; called whenever the log changes
func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = nil
	c.valid = false
}
