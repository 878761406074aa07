// Package cache implements the in-memory analysis cache keyed by
// request fingerprint (repository URL + issue number) with TTL expiry.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/ahmednasr/issue-assistant/internal/models"
)

// entry pairs a stored analysis with its insertion time.
type entry struct {
	value      models.Analysis
	insertedAt time.Time
}

// Cache is a TTL-bounded map of analysis results shared by all requests.
// A single mutex guards the map; expired entries are evicted lazily on
// lookup, there is no background sweep.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	enabled bool

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// New returns an empty cache. When enabled is false the cache is inert:
// Get always misses and Set is a no-op.
func New(enabled bool, ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
}

// Key builds the fingerprint for one analysis request.
//
// The raw request URL is used as-is: two spellings of the same repository
// ("https://github.com/a/b" vs "https://github.com/a/b.git") produce
// distinct entries. That matches the observable behavior callers already
// rely on; do not normalize here without a product decision.
func Key(repoURL string, issueNumber int) string {
	return fmt.Sprintf("%s::%d", repoURL, issueNumber)
}

// Get returns the stored analysis for key if it is still fresh.
// An entry whose age has reached the TTL is deleted and reported absent.
func (c *Cache) Get(key string) (models.Analysis, bool) {
	if !c.enabled {
		return models.Analysis{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.Analysis{}, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return models.Analysis{}, false
	}
	return e.value, true
}

// Set stores value under key with a fresh timestamp, unconditionally
// replacing any existing entry. No-op when the cache is disabled.
func (c *Cache) Set(key string, value models.Analysis) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, insertedAt: c.now()}
}

// Clear drops every entry, enabled or not. Used by DELETE /api/cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of stored entries, counting expired ones that
// have not been evicted yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
