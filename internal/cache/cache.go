// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache memoizes pure functions, like compiling a format layout or
// loading a time zone, with random replacement once a size bound is reached.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultSize is the size bound of a Memo created with a size of zero.
const DefaultSize = 1 << 10

// Memo caches the results of a function. It is safe for concurrent use.
type Memo[K comparable, V any] struct {
	fill    func(K) V
	maxSize int64

	mu sync.RWMutex
	m  map[K]V
	n  int64

	hits   atomic.Int64
	misses atomic.Int64
}

// New returns a Memo for fill. If V implements Sizer, it is used to weigh
// elements against maxSize. Otherwise every element has size 1.
func New[K comparable, V any](fill func(K) V, maxSize int64) *Memo[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}
	return &Memo[K, V]{
		fill:    fill,
		maxSize: maxSize,
		m:       make(map[K]V),
	}
}

// Get returns fill(k), calling fill only if k is not cached. Concurrent
// misses for the same key may call fill more than once; the first result
// stored wins.
func (c *Memo[K, V]) Get(k K) V {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	nv := c.fill(k)

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[k]; ok {
		return v
	}
	c.m[k] = nv
	c.n += size(nv)
	// Map iteration order is unspecified, which makes this a random
	// replacement. The new element stays even if it exceeds the bound alone.
	for ek := range c.m {
		if c.n <= c.maxSize {
			break
		}
		if ek != k {
			c.evictLocked(ek)
		}
	}
	return nv
}

// evictLocked removes k. c.mu must be held for writing.
func (c *Memo[K, V]) evictLocked(k K) {
	if v, ok := c.m[k]; ok {
		delete(c.m, k)
		c.n -= size(v)
	}
}

// Len returns the number of cached elements.
func (c *Memo[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Stats counts cache hits and misses.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the hit and miss counts since c was created.
func (c *Memo[K, V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Flush removes all elements.
func (c *Memo[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
	c.n = 0
}

// Sizer is an optional interface for a value to report its own size. The
// reported size must be positive and never change for the same receiver.
type Sizer interface {
	Size() int64
}

func size[V any](v V) int64 {
	if s, ok := any(v).(Sizer); ok {
		return s.Size()
	}
	return 1
}
