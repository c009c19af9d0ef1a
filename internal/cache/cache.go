package cache

import (
	"sync"
	"time"
)

// DefaultMaxAge is how long an entry stays fresh unless the caller
// overrides it per lookup.
const DefaultMaxAge = 5 * time.Minute

type entry[V any] struct {
	value V
	at    time.Time
}

// Cache is an in-memory read cache with per-entry expiry. Stale entries are
// evicted lazily on the next access to the same key; there is no background
// sweep.
type Cache[V any] struct {
	mu     sync.Mutex
	items  map[string]entry[V]
	maxAge time.Duration
	now    func() time.Time
}

// New creates a cache with the given default max age. A non-positive maxAge
// falls back to DefaultMaxAge.
func New[V any](maxAge time.Duration) *Cache[V] {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Cache[V]{
		items:  make(map[string]entry[V]),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Get returns the cached value for key if it is younger than the default
// max age.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.GetWithin(key, c.maxAge)
}

// GetWithin is Get with a per-lookup max age override. A stale entry is
// removed and reported as a miss.
func (c *Cache[V]) GetWithin(key string, maxAge time.Duration) (V, bool) {
	if maxAge <= 0 {
		maxAge = c.maxAge
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.at) >= maxAge {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put records value under key with the current timestamp, overwriting any
// prior entry.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, at: c.now()}
}

// Fresh reports whether key holds an unexpired entry without consuming it.
// Like Get, it evicts the entry when stale.
func (c *Cache[V]) Fresh(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// InvalidateAll clears every entry.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry[V])
}

// Len returns the number of entries currently held, stale or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SetClock replaces the cache's time source. Tests use this to control
// expiry deterministically.
func (c *Cache[V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
