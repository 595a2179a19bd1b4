package cache

import (
	"container/list"
	"sync"
)

// LRU is a bounded least-recently-used store. It never exceeds its
// configured capacity; inserting past capacity evicts the entry unused
// longest. Get and Put are the only operations that change recency order.
// Safe for concurrent use: every operation is a single critical section.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	index    map[string]*list.Element
}

type lruEntry struct {
	key   string
	value interface{}
}

// NewLRU creates an LRU cache with the given capacity. Capacities below 1
// are clamped to 1.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get returns the value for key and marks it as most recently used.
// A miss has no side effects.
func (c *LRU) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).value, true
}

// Put inserts or overwrites key and marks it as most recently used,
// evicting the least-recently-used entry if the cache is over capacity.
func (c *LRU) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		elem.Value.(*lruEntry).value = value
		c.order.MoveToFront(elem)
		return
	}

	c.index[key] = c.order.PushFront(&lruEntry{key: key, value: value})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.index, oldest.Value.(*lruEntry).key)
		}
	}
}

// Len returns the number of entries currently cached
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns all present keys in recency order, most recent first
func (c *LRU) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry).key)
	}
	return keys
}
