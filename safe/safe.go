// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package safe makes it safe to mutate a document from observer
// callbacks. Document events fire synchronously, inside the
// mutation that caused them, where further mutation would corrupt
// the operation in progress. [Defer] moves the work out of the
// dispatch: it runs after the current call stack has unwound,
// wrapped in a transparent operation that merges into the undo
// step that triggered it. [Observer] builds on it with a
// registration table of auto-deferring event handlers.
package safe

import (
	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/base/logx"
	"github.com/cadkit/cadkit/model"
	"github.com/cadkit/cadkit/undo"
)

// Trace logs the scheduling, running, and duplicate suppression of
// deferred work at the debug level.
var Trace bool

// opName names the transparent operation wrapping deferred work.
const opName = "Deferred change"

// Errors returned by [Defer].
var (
	// ErrInvalidTarget indicates a document that is nil, closed, or
	// not attached to a host scheduler.
	ErrInvalidTarget = errors.New("safe: invalid target document")

	// ErrNilWork indicates a nil work function.
	ErrNilWork = errors.New("safe: nil work function")
)

// task is one unit of deferred work against one document.
type task struct {
	doc  *model.Document
	work func()

	// done guards against duplicate delivery by the scheduler;
	// see [model.Scheduler].
	done bool
}

// Defer schedules work to run against the given document once the
// current call stack has unwound, on the next idle iteration of
// the host event loop. It validates synchronously and returns nil
// with the work not yet run; the work itself runs exactly once,
// wrapped in a transparent operation so that it merges into the
// undo step whose events triggered it instead of appearing as a
// separate step.
//
// The wrapping operation is always committed, never aborted, even
// when work panics: rolling back a transparent operation would
// corrupt the step it merges into. A panic propagates after the
// commit to the event loop, which recovers and logs it.
//
// Defer returns [ErrInvalidTarget] if the document is nil, closed,
// or has no scheduler, and [ErrNilWork] if work is nil. There is
// no cancellation: once scheduled, a task cannot be withdrawn,
// though it is silently dropped if the document closes before it
// runs.
func Defer(doc *model.Document, work func()) error {
	if work == nil {
		return ErrNilWork
	}
	if !doc.Valid() {
		return errors.Newf("%w: document is nil or closed", ErrInvalidTarget)
	}
	if doc.Scheduler == nil {
		return errors.Newf("%w: document has no scheduler", ErrInvalidTarget)
	}
	tk := &task{doc: doc, work: work}
	doc.Scheduler.Defer(tk.run)
	if Trace {
		logx.PrintlnDebug("safe: deferred work scheduled")
	}
	return nil
}

// run is the scheduled callback. The scheduler may deliver it more
// than once; the done flag makes the work run exactly once.
func (tk *task) run() {
	if tk.done {
		if Trace {
			logx.PrintlnDebug("safe: duplicate delivery suppressed")
		}
		return
	}
	tk.done = true
	if !tk.doc.Valid() { // closed since scheduling
		return
	}
	if err := tk.doc.StartOperation(opName, &undo.Options{Transparent: true}); err != nil {
		errors.Log(err)
		return
	}
	defer func() { errors.Log(tk.doc.CommitOperation()) }()
	if Trace {
		logx.PrintlnDebug("safe: running deferred work")
	}
	tk.work()
}
