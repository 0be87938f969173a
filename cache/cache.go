package cache

// cache/cache.go

import (
	"github.com/bipin-k/lrucache/internal"
	"go.uber.org/zap"
)

// ErrInvalidCapacity is returned by New when capacity is not positive.
var ErrInvalidCapacity = internal.ErrInvalidCapacity

// maxPrealloc bounds the slots reserved up front for large capacities.
const maxPrealloc = 1024

// LRUCache is a fixed-capacity key-value cache that evicts the least
// recently used entry when a new key is added to a full cache.
//
// LRUCache is not safe for concurrent use. Callers sharing one instance
// between goroutines must guard every call with their own lock.
type LRUCache[K comparable, V any] struct {
	capacity int
	index    map[K]handle
	recency  *recencyList[K, V]

	logger  *zap.SugaredLogger
	onEvict func(key K, value V)
}

type options[K comparable, V any] struct {
	logger  *zap.SugaredLogger
	onEvict func(key K, value V)
}

// Option configures an LRUCache.
type Option[K comparable, V any] func(*options[K, V])

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger[K comparable, V any](logger *zap.SugaredLogger) Option[K, V] {
	return func(o *options[K, V]) {
		o.logger = logger
	}
}

// WithOnEvict registers fn to be called with every entry evicted for capacity.
// fn runs after the entry has left the cache and before the new entry is
// inserted; it must not call Put on the same cache.
func WithOnEvict[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvict = fn
	}
}

// New creates a cache holding at most capacity entries.
// It fails with ErrInvalidCapacity when capacity <= 0.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRUCache[K, V], error) {
	if err := internal.ValidateCapacity(capacity); err != nil {
		return nil, err
	}

	o := options[K, V]{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop().Sugar()
	}

	hint := min(capacity, maxPrealloc)
	c := &LRUCache[K, V]{
		capacity: capacity,
		index:    make(map[K]handle, hint),
		recency:  newRecencyList[K, V](hint),
		logger:   o.logger,
		onEvict:  o.onEvict,
	}

	c.logger.Debugw("Created LRU cache", "capacity", capacity)
	return c, nil
}

// Get returns the value stored for key and marks it most recently used.
// The second result is false when key is not resident.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.recency.moveToFront(h)
	return c.recency.at(h).value, true
}

// Put stores value under key and marks it most recently used.
// Adding a new key to a full cache first evicts the least recently used entry.
func (c *LRUCache[K, V]) Put(key K, value V) {
	if h, ok := c.index[key]; ok {
		c.recency.at(h).value = value
		c.recency.moveToFront(h)
		return
	}

	if c.recency.len() >= c.capacity {
		c.evictOldest()
	}

	c.index[key] = c.recency.pushFront(key, value)
}

// Len returns the number of resident entries.
func (c *LRUCache[K, V]) Len() int {
	return len(c.index)
}

// Cap returns the capacity the cache was created with.
func (c *LRUCache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the resident keys from most to least recently used.
// It does not change recency.
func (c *LRUCache[K, V]) Keys() []K {
	return c.recency.keys()
}

// evictOldest drops the tail entry from both the list and the index.
func (c *LRUCache[K, V]) evictOldest() {
	h, ok := c.recency.removeBack()
	if !ok {
		return
	}

	n := c.recency.at(h)
	key, value := n.key, n.value
	delete(c.index, key)
	c.recency.release(h)

	c.logger.Debugw("Evicted entry due to capacity",
		"key", key,
		"capacity", c.capacity,
	)

	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
