// Package cache provides a generic TTL cache with load-through lookups
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry wraps a cached value with its expiration time
type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a generic thread-safe cache with TTL expiration. Concurrent
// GetOrLoad calls for the same missing key share a single load.
type Cache[T any] struct {
	entries map[string]entry[T]
	mu      sync.RWMutex
	ttl     time.Duration
	loads   singleflight.Group
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache with the specified TTL
func New[T any](ttl time.Duration) *Cache[T] {
	c := &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value, returning (value, true) if found and not expired
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || c.now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the cache's TTL, replacing any previous value
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Failed loads are not cached.
func (c *Cache[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.loads.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Delete removes a key from the cache
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries from the cache
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

// Size returns the number of entries (including expired)
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background cleanup goroutine. It is safe to call twice.
func (c *Cache[T]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup runs periodically to remove expired entries
func (c *Cache[T]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[T]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
