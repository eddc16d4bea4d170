// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based queue, used to feed
// work and events into the event loop from any goroutine. It must
// be initialized using [Queue.Init] before use.
type Queue[T any] struct {
	head atomic.Pointer[queueItem[T]]
	tail atomic.Pointer[queueItem[T]]
	len  atomic.Uint64
	pool sync.Pool
}

type queueItem[T any] struct {
	next atomic.Pointer[queueItem[T]]
	v    T
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	q.pool.New = func() any { return &queueItem[T]{} }
	head := &queueItem[T]{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Send adds an item to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := q.pool.Get().(*queueItem[T])
	i.next.Store(nil)
	i.v = v

	for {
		last := q.tail.Load()
		lastNext := last.next.Load()
		if q.tail.Load() != last {
			continue
		}
		if lastNext != nil {
			q.tail.CompareAndSwap(last, lastNext)
			continue
		}
		if last.next.CompareAndSwap(nil, i) {
			q.tail.CompareAndSwap(last, i)
			q.len.Add(1)
			return
		}
	}
}

// Next removes and returns the next item in the queue, with false
// if the queue is empty.
func (q *Queue[T]) Next() (T, bool) {
	for {
		first := q.head.Load()
		last := q.tail.Load()
		firstNext := first.next.Load()
		if first != q.head.Load() {
			continue
		}
		if first == last {
			if firstNext == nil {
				var zv T
				return zv, false
			}
			q.tail.CompareAndSwap(last, firstNext)
			continue
		}
		v := firstNext.v
		if q.head.CompareAndSwap(first, firstNext) {
			q.len.Add(^uint64(0))
			var zv T
			first.v = zv
			q.pool.Put(first)
			return v, true
		}
	}
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() uint64 {
	return q.len.Load()
}
