// file: internal/cache/cache.go
// version: 1.1.0
// guid: 0a2b4c6d-8e9f-4a1b-8c3d-5e7f9a0b2c4d

package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a small generic expiring cache safe for concurrent use. Expired
// entries are dropped lazily on access and on Put.
type TTL[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	ttl   time.Duration
}

// New creates a cache whose entries live for the given duration.
func New[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
	}
}

// Get retrieves a value if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a value, evicting any expired entries while it holds the lock.
func (c *TTL[V]) Put(key string, value V) {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
	c.items[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
}

// Drop removes a single key.
func (c *TTL[V]) Drop(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Flush removes all entries.
func (c *TTL[V]) Flush() {
	c.mu.Lock()
	c.items = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
