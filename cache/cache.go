// Package cache provides a bounded, thread-safe memoization cache for
// derived per-type metadata. The cache is never a source of truth: absence of
// an entry changes only the latency of a computation, never its result.
package cache

import (
	"strings"
	"sync"
	"sync/atomic"
)

// keySeparator joins composite key parts; it cannot appear in type names.
const keySeparator = "\x1f"

// Key composes a cache key from a type name and optional context parts.
func Key(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

// Cache is a generic, bounded memoization cache. Entries are evicted in
// insertion order once capacity is exceeded; exact recency ordering is not a
// correctness requirement, only boundedness. Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]V
	order    []K // insertion order, oldest first
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a Cache with the given capacity. Non-positive capacities fall
// back to 256.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache[K, V]{
		items:    make(map[K]V, capacity),
		capacity: capacity,
	}
}

// Get retrieves a value. Returns the zero value and false on a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put adds or updates a value, evicting the oldest entry when at capacity.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value)
}

// put stores a value. Must be called with mu held.
func (c *Cache[K, V]) put(key K, value V) {
	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	if len(c.items) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = value
	c.order = append(c.order, key)
}

// GetOrCompute returns the cached value for key, or calls fn to compute it.
// Computation failures are returned to the caller and never cached, so a
// transient provider error does not poison subsequent lookups.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring the write lock.
	if v, ok := c.items[key]; ok {
		return v, nil
	}

	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.put(key, v)
	return v, nil
}

// Delete removes an entry.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]V, c.capacity)
	c.order = c.order[:0]
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats holds cache statistics.
type Stats struct {
	Size     int     `json:"size"`
	Capacity int     `json:"maxSize"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRate  float64 `json:"hitRate"`
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:     size,
		Capacity: c.capacity,
		Hits:     hits,
		Misses:   misses,
		HitRate:  hitRate,
	}
}
