// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"slices"
	"sync/atomic"

	"github.com/cadkit/cadkit/base/findfast"
)

// listenerIDs is the source of unique listener registration IDs.
// Go functions are not comparable, so removal goes through the ID
// returned by [Listeners.Add].
var listenerIDs atomic.Uint64

// Listener is one registered event listener function with the ID
// it was registered under.
type Listener struct {
	ID   uint64
	Func func(ev Event)
}

// Listeners registers lists of event listener functions to
// receive different event types. Listeners are closures with all
// context captured, registered on specific objects. Registration
// and dispatch happen on the event loop goroutine, so no locking
// is used.
type Listeners map[Types][]Listener

// Init ensures that the map is constructed.
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]Listener)
}

// Add adds a listener function for the given type, returning the
// registration ID that [Listeners.Remove] takes.
func (ls *Listeners) Add(typ Types, fun func(ev Event)) uint64 {
	ls.Init()
	id := listenerIDs.Add(1)
	(*ls)[typ] = append((*ls)[typ], Listener{ID: id, Func: fun})
	return id
}

// Remove removes the listener with the given registration ID for
// the given type, returning false if it is not registered. It is
// safe to call from within a listener for the same type: dispatch
// in progress completes over the original list.
func (ls *Listeners) Remove(typ Types, id uint64) bool {
	ets := (*ls)[typ]
	i := findfast.FindFunc(ets, func(l Listener) bool { return l.ID == id })
	if i < 0 {
		return false
	}
	(*ls)[typ] = slices.Delete(slices.Clone(ets), i, i+1)
	return true
}

// Call calls all listener functions for the given event. It goes
// in reverse order, so the last listener added is the first
// called, and it stops when the event is marked as handled. This
// gives natural override behavior without a priority mechanism.
func (ls *Listeners) Call(ev Event) {
	if ev.IsHandled() {
		return
	}
	ets := (*ls)[ev.Type()]
	for i := len(ets) - 1; i >= 0; i-- {
		ets[i].Func(ev)
		if ev.IsHandled() {
			break
		}
	}
}

// Len returns the total number of registered listeners across
// all types.
func (ls Listeners) Len() int {
	n := 0
	for _, ets := range ls {
		n += len(ets)
	}
	return n
}
