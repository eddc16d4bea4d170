// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the document event types and the
// listener lists that deliver them. Events are delivered
// synchronously on the event loop goroutine; see the safe
// package for deferring listener work that mutates the model.
package events

import (
	"fmt"
	"time"
)

// Event is the interface for all document events. Concrete events
// embed [Base] and add their payload fields.
type Event interface {
	fmt.Stringer

	// Type returns the type of this event.
	Type() Types

	// AsBase returns this event as a [Base] event, for access to
	// the fields common to all events.
	AsBase() *Base

	// IsHandled returns whether a listener has marked this event
	// as handled, which stops it from reaching earlier listeners.
	IsHandled() bool

	// SetHandled marks this event as handled.
	SetHandled()

	// Time returns the time at which the event was generated.
	Time() time.Time
}

// Base is the base type for all events, providing the fields and
// methods common to all of them. Use [NewBase] or call [Base.Init]
// to stamp the generation time.
type Base struct {

	// Typ is the type of this event.
	Typ Types

	// Data is optional arbitrary data attached to the event,
	// used by [Custom] events.
	Data any

	// genTime is when the event was generated.
	genTime time.Time

	// handled marks the event as processed, ending dispatch.
	handled bool
}

// NewBase returns a new [Base] event of the given type, with the
// generation time stamped.
func NewBase(typ Types) Base {
	ev := Base{Typ: typ}
	ev.Init()
	return ev
}

// NewCustom returns a new [Custom] event with the given data.
func NewCustom(data any) *Base {
	ev := NewBase(Custom)
	ev.Data = data
	return &ev
}

// Init stamps the generation time to now.
func (ev *Base) Init() {
	ev.genTime = time.Now()
}

func (ev *Base) Type() Types {
	return ev.Typ
}

func (ev *Base) AsBase() *Base {
	return ev
}

func (ev *Base) IsHandled() bool {
	return ev.handled
}

func (ev *Base) SetHandled() {
	ev.handled = true
}

// ClearHandled clears the handled mark, for events that are
// re-dispatched to another listener list.
func (ev *Base) ClearHandled() {
	ev.handled = false
}

func (ev *Base) Time() time.Time {
	return ev.genTime
}

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v}", ev.Typ, ev.genTime.Format(time.StampMilli))
}
