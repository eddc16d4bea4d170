// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesString(t *testing.T) {
	assert.Equal(t, "ElementAdded", ElementAdded.String())
	assert.Equal(t, "UnknownType", UnknownType.String())
	assert.Equal(t, "Types(-1)", Types(-1).String())
	assert.True(t, OperationCommit.IsValid())
	assert.False(t, UnknownType.IsValid())
	assert.False(t, TypesN.IsValid())
}

func TestTypesText(t *testing.T) {
	b, err := Undone.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Undone", string(b))

	var tp Types
	require.NoError(t, tp.UnmarshalText([]byte("ElementRemoved")))
	assert.Equal(t, ElementRemoved, tp)
	assert.Error(t, tp.UnmarshalText([]byte("Exploded")))
}

func TestBase(t *testing.T) {
	ev := NewBase(ElementChanged)
	assert.Equal(t, ElementChanged, ev.Type())
	assert.False(t, ev.Time().IsZero())
	assert.False(t, ev.IsHandled())
	ev.SetHandled()
	assert.True(t, ev.IsHandled())
	ev.ClearHandled()
	assert.False(t, ev.IsHandled())
	assert.Contains(t, ev.String(), "ElementChanged")
}

func TestListenersOrder(t *testing.T) {
	var ls Listeners
	var order []int
	ls.Add(Custom, func(ev Event) { order = append(order, 1) })
	ls.Add(Custom, func(ev Event) { order = append(order, 2) })
	ls.Add(ElementAdded, func(ev Event) { order = append(order, 99) })

	ls.Call(NewCustom(nil))
	assert.Equal(t, []int{2, 1}, order) // last added runs first
}

func TestListenersHandled(t *testing.T) {
	var ls Listeners
	var order []int
	ls.Add(Custom, func(ev Event) { order = append(order, 1) })
	ls.Add(Custom, func(ev Event) {
		order = append(order, 2)
		ev.SetHandled()
	})

	ev := NewCustom(nil)
	ls.Call(ev)
	assert.Equal(t, []int{2}, order) // handled stops dispatch

	ls.Call(ev) // already handled: no calls at all
	assert.Equal(t, []int{2}, order)
}

func TestListenersRemove(t *testing.T) {
	var ls Listeners
	n := 0
	id := ls.Add(Custom, func(ev Event) { n++ })
	keep := ls.Add(Custom, func(ev Event) { n += 10 })

	assert.Equal(t, 2, ls.Len())
	assert.True(t, ls.Remove(Custom, id))
	assert.False(t, ls.Remove(Custom, id))
	assert.Equal(t, 1, ls.Len())

	ls.Call(NewCustom(nil))
	assert.Equal(t, 10, n)
	assert.True(t, ls.Remove(Custom, keep))
}

func TestListenersRemoveDuringCall(t *testing.T) {
	var ls Listeners
	n := 0
	var id uint64
	id = ls.Add(Custom, func(ev Event) {
		n++
		ls.Remove(Custom, id) // one-shot style self-removal
	})

	ls.Call(NewCustom(nil))
	ls.Call(NewCustom(nil))
	assert.Equal(t, 1, n)
}

func TestQueueFIFO(t *testing.T) {
	var q Queue[int]
	q.Init()
	_, ok := q.Next()
	assert.False(t, ok)

	for i := range 5 {
		q.Send(i)
	}
	assert.Equal(t, uint64(5), q.Len())
	for i := range 5 {
		v, ok := q.Next()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = q.Next()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), q.Len())
}

func TestQueueConcurrent(t *testing.T) {
	var q Queue[int]
	q.Init()
	const senders = 4
	const per = 1000

	var wg sync.WaitGroup
	for s := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range per {
				q.Send(s*per + i)
			}
		}()
	}
	wg.Wait()

	seen := make(map[int]bool, senders*per)
	for {
		v, ok := q.Next()
		if !ok {
			break
		}
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Len(t, seen, senders*per)
}
