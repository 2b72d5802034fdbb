// Package cache is the explicit in-memory activity cache owned by the
// tool layer. The analysis core never sees it; callers fetch through
// the cache and pass plain slices down.
package cache

import (
	"strings"
	"sync"
	"time"

	"runcoach/internal/strava"
)

type entry struct {
	activities []strava.Activity
	expiresAt  time.Time
}

// Activities is a TTL cache of fetched activity lists, keyed by a
// composite string. Safe for concurrent use.
type Activities struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Activities {
	return &Activities{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds a composite cache key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached slice for key if present and fresh.
func (c *Activities) Get(key string) ([]strava.Activity, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.activities, true
}

// Put stores a slice under key, replacing any previous entry and
// dropping any entries that have already expired.
func (c *Activities) Put(key string, activities []strava.Activity) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{activities: activities, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of stored entries, fresh or not.
func (c *Activities) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
