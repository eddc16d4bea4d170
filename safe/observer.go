// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package safe

import (
	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/model"
)

// Observer is an explicit registration table of event handlers on
// one document, removable as a unit with [Observer.Detach].
// Handlers registered with [Observer.On] and the typed helpers are
// deferred through [Defer], so they are free to mutate the
// document; [Observer.OnSync] registers raw synchronous listeners
// for read-only reactions.
type Observer struct {
	doc  *model.Document
	regs []registration
}

// registration is one listener registration, by type and ID.
type registration struct {
	typ events.Types
	id  uint64
}

// NewObserver returns a new observer for the given document.
// Registration methods validate the document; a nil or invalid one
// makes them log and no-op.
func NewObserver(doc *model.Document) *Observer {
	return &Observer{doc: doc}
}

// On registers fun to handle events of the given type. The event
// is captured at dispatch and fun runs deferred via [Defer], in a
// transparent operation, so it can mutate the document. Operation
// events from transparent operations are not dispatched to
// deferred handlers: the operations wrapping other deferred work
// emit them, and deferring reactions to those would re-trigger
// forever. Use [Observer.OnSync] to see them.
// It returns the observer for chaining.
func (ob *Observer) On(typ events.Types, fun func(ev events.Event)) *Observer {
	return ob.OnSync(typ, func(ev events.Event) {
		if oev, ok := ev.(*model.OpEvent); ok && oev.Transparent {
			return
		}
		errors.Log(Defer(ob.doc, func() { fun(ev) }))
	})
}

// OnSync registers fun as a raw synchronous listener for events of
// the given type. It runs inside the mutation that emits the event
// and must not mutate the document; use [Observer.On] for that.
// It returns the observer for chaining.
func (ob *Observer) OnSync(typ events.Types, fun func(ev events.Event)) *Observer {
	if !ob.doc.Valid() {
		errors.Log(errors.Newf("%w: cannot register %v handler", ErrInvalidTarget, typ))
		return ob
	}
	id := ob.doc.On(typ, fun)
	ob.regs = append(ob.regs, registration{typ: typ, id: id})
	return ob
}

// OnElementAdded registers fun to handle [events.ElementAdded],
// deferred, called with the added entity.
func (ob *Observer) OnElementAdded(fun func(ent model.Entity)) *Observer {
	return ob.On(events.ElementAdded, func(ev events.Event) {
		if tev, ok := ev.(*model.TreeEvent); ok {
			fun(tev.Entity)
		}
	})
}

// OnElementRemoved registers fun to handle [events.ElementRemoved],
// deferred, called with the stable ID of the removed entity. The
// entity handle itself is already invalid when removal events fire.
func (ob *Observer) OnElementRemoved(fun func(id uint64)) *Observer {
	return ob.On(events.ElementRemoved, func(ev events.Event) {
		if tev, ok := ev.(*model.TreeEvent); ok {
			fun(tev.ID)
		}
	})
}

// OnElementChanged registers fun to handle [events.ElementChanged],
// deferred, called with the changed entity and the field name.
func (ob *Observer) OnElementChanged(fun func(ent model.Entity, field string)) *Observer {
	return ob.On(events.ElementChanged, func(ev events.Event) {
		if tev, ok := ev.(*model.TreeEvent); ok {
			fun(tev.Entity, tev.Field)
		}
	})
}

// OnOperationCommit registers fun to handle [events.OperationCommit],
// deferred, called with the operation name. Transparent commits are
// not seen; see [Observer.On].
func (ob *Observer) OnOperationCommit(fun func(name string)) *Observer {
	return ob.On(events.OperationCommit, func(ev events.Event) {
		if oev, ok := ev.(*model.OpEvent); ok {
			fun(oev.Name)
		}
	})
}

// Detach removes all of the observer's registrations from the
// document. It is idempotent, and a no-op on a closed document,
// whose listeners are already gone.
func (ob *Observer) Detach() {
	if ob.doc != nil {
		for _, rg := range ob.regs {
			ob.doc.Off(rg.typ, rg.id)
		}
	}
	ob.regs = nil
}
