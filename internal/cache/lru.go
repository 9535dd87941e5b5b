// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a small LRU used for compiled program reuse.
package cache

// node is a doubly-linked list node. It carries the key for O(1)
// deletion from the index map and the value so lookups never touch a
// second structure.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// LRU is a fixed-capacity least-recently-used cache. Head of the
// internal list is most recently used. Not safe for concurrent use;
// callers synchronize.
type LRU[K comparable, V any] struct {
	capacity int
	index    map[K]*node[K, V]
	head     *node[K, V]
	tail     *node[K, V]

	// onEvict, when set, runs for every entry removed by capacity
	// eviction, Remove or Clear. Used to release GPU resources.
	onEvict func(K, V)
}

// NewLRU creates a cache holding at most capacity entries. A capacity
// below 1 is treated as 1.
func NewLRU[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		index:    make(map[K]*node[K, V], capacity),
		onEvict:  onEvict,
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return len(c.index) }

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Put inserts or replaces the value for key, evicting the least
// recently used entry when over capacity. Replacing an existing key
// evicts the old value through the eviction hook.
func (c *LRU[K, V]) Put(key K, value V) {
	if n, ok := c.index[key]; ok {
		old := n.value
		n.value = value
		c.moveToFront(n)
		if c.onEvict != nil {
			c.onEvict(key, old)
		}
		return
	}

	n := &node[K, V]{key: key, value: value}
	c.index[key] = n
	c.pushFront(n)

	for len(c.index) > c.capacity {
		oldest := c.tail
		if oldest == nil {
			break
		}
		c.unlink(oldest)
		delete(c.index, oldest.key)
		if c.onEvict != nil {
			c.onEvict(oldest.key, oldest.value)
		}
	}
}

// Remove drops key from the cache, running the eviction hook if the key
// was present.
func (c *LRU[K, V]) Remove(key K) {
	n, ok := c.index[key]
	if !ok {
		return
	}
	c.unlink(n)
	delete(c.index, key)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}

// Clear evicts every entry.
func (c *LRU[K, V]) Clear() {
	for key, n := range c.index {
		delete(c.index, key)
		if c.onEvict != nil {
			c.onEvict(key, n.value)
		}
	}
	c.head = nil
	c.tail = nil
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
