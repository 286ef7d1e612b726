// Package cache provides a bounded, TTL-expiring in-memory key-value
// store. Each cache instance owns its entries exclusively; there is no
// sharing across instances or processes.
package cache

import (
	"sync"
	"time"
)

// entry is a cached value with its expiry deadline.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a generic string-keyed store with a per-entry TTL and a
// maximum entry count. When full, expired entries are reclaimed first;
// if none are expired, the oldest-inserted entry is evicted. A TTL or
// max size of zero turns every write into a no-op.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]entry[V]
	order   []string // insertion order, oldest first
}

// New creates a cache with the given TTL and maximum entry count.
func New[V any](ttl time.Duration, maxSize int) *Cache[V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]entry[V]),
	}
}

// Set stores a value under key. When the cache is at capacity it first
// purges expired entries, then evicts the oldest-inserted survivor if
// still full. Overwriting an existing key keeps its original insertion
// position.
func (c *Cache[V]) Set(key string, value V) {
	if c.maxSize == 0 || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.purgeExpiredLocked()
		}
		if len(c.entries) >= c.maxSize {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Get returns the value for key if present and not expired. An expired
// entry is deleted as a side effect of the lookup.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Has reports whether key is present and not expired, with the same
// expiry side effect as Get.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key unconditionally and reports whether it existed.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.removeLocked(key)
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
	c.order = c.order[:0]
}

// Len purges expired entries and returns the count of survivors, so
// the reported size is never stale-inflated.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked()
	return len(c.entries)
}

func (c *Cache[V]) purgeExpiredLocked() {
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(key)
		}
	}
}

func (c *Cache[V]) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	c.removeLocked(c.order[0])
}

func (c *Cache[V]) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
