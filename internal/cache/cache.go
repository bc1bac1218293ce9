package cache

import (
	"sync"
	"time"
)

// Cache is a small time-boxed cache for read-mostly catalog data (quests,
// sliders). Each instance is owned by the component that reads through it;
// there is no shared global cache. The zero TTL means entries never expire
// until Invalidate.
type Cache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	value T
	set   bool
	when  time.Time
}

func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// NewWithClock builds a cache with an injected clock, for tests.
func NewWithClock[T any](ttl time.Duration, now func() time.Time) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: now}
}

// Get returns the cached value and whether it is present and fresh.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.set {
		var zero T
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(c.when) >= c.ttl {
		var zero T
		c.set = false
		return zero, false
	}
	return c.value, true
}

// Set stores a value and restarts its TTL window.
func (c *Cache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.set = true
	c.when = c.now()
}

// Invalidate drops the cached value so the next read refetches.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.set = false
}

// GetOrFetch returns the fresh cached value or fetches, stores, and returns
// a new one. A fetch error leaves the cache untouched.
func (c *Cache[T]) GetOrFetch(fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(); ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(v)
	return v, nil
}

// Refresh forces a fetch and replaces the cached value on success.
func (c *Cache[T]) Refresh(fetch func() (T, error)) (T, error) {
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(v)
	return v, nil
}
