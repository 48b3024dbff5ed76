// Package cache provides a small bounded key-value cache with per-entry
// expiry and least-recently-used eviction. It backs hot listing detail
// lookups so repeated postback taps do not hammer the document store.
package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	// DefaultMaxSize is the default entry cap.
	DefaultMaxSize = 256

	// DefaultTTL is the default per-entry time to live.
	DefaultTTL = 30 * time.Second
)

type entry[K comparable, V any] struct {
	key        K
	value      V
	insertedAt time.Time
}

// Cache is a bounded TTL cache with LRU eviction.
// All operations are serialized by a single mutex: entries are small and
// access is infrequent relative to network I/O, so correctness wins over
// throughput here.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List // front = most recently used
	items   map[K]*list.Element

	now func() time.Time // overridable in tests
}

// New creates a cache holding at most maxSize entries, each visible for ttl
// after insertion. Non-positive arguments fall back to the defaults.
func New[K comparable, V any](maxSize int, ttl time.Duration) *Cache[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[K, V]{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		items:   make(map[K]*list.Element),
		now:     time.Now,
	}
}

// Get returns the live value for key and marks it most recently used.
// An expired entry is dropped and treated as absent (lazy expiry, no
// background sweep).
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	ent := elem.Value.(*entry[K, V])
	if c.now().Sub(ent.insertedAt) >= c.ttl {
		c.order.Remove(elem)
		delete(c.items, key)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return ent.value, true
}

// Set inserts or overwrites the value for key, stamps the current time and
// marks the entry most recently used. If the cache exceeds its size cap
// after insertion, the single least-recently-used entry is evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.insertedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&entry[K, V]{
		key:        key,
		value:      value,
		insertedAt: c.now(),
	})
	c.items[key] = elem

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
		}
	}
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been dropped by a Get.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
