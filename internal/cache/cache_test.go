// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemo(t *testing.T) {
	var calls atomic.Int64
	m := New(func(s string) string {
		calls.Add(1)
		return strings.ToUpper(s)
	}, 0)

	assert.Equal(t, "ABC", m.Get("abc"))
	assert.Equal(t, "ABC", m.Get("abc"))
	assert.Equal(t, "XYZ", m.Get("xyz"))
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, Stats{Hits: 1, Misses: 2}, m.Stats())

	m.Flush()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "ABC", m.Get("abc"))
	assert.Equal(t, int64(3), calls.Load())
}

func TestMemoBound(t *testing.T) {
	m := New(func(i int) int { return i * i }, 4)
	for i := range 100 {
		assert.Equal(t, i*i, m.Get(i))
		assert.LessOrEqual(t, m.Len(), 4)
	}
	// The last element is always kept.
	before := m.Stats().Hits
	m.Get(99)
	assert.Equal(t, before+1, m.Stats().Hits)
}

type sized []int

func (s sized) Size() int64 { return int64(len(s)) }

func TestMemoSizer(t *testing.T) {
	m := New(func(n int) sized { return make(sized, n) }, 10)
	m.Get(4)
	m.Get(5)
	assert.Equal(t, 2, m.Len())
	// 4+5+6 exceeds the bound, so at least one element is evicted.
	m.Get(6)
	assert.Less(t, m.Len(), 3)
	// An element larger than the bound still stays.
	m.Get(20)
	assert.Equal(t, 1, m.Len())
	assert.Len(t, m.Get(20), 20)
}

func TestMemoConcurrent(t *testing.T) {
	m := New(func(i int) int { return i + 1 }, 16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (i + g) % 32
				if got := m.Get(k); got != k+1 {
					t.Errorf("Get(%d) = %d, want %d", k, got, k+1)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 16)
	st := m.Stats()
	assert.Equal(t, int64(8000), st.Hits+st.Misses)
}
