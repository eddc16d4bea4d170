// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package undo provides a change-closure based undo / redo stack
// with named, nestable operations. Model mutators record each
// change as a pair of Redo / Undo closures inside an open
// operation; committing the operation makes it one undoable
// record. Transparent operations merge into the previous record
// so they never appear as a separate undo step, which is how
// deferred observer work stays invisible to the user.
//
// All methods are called on the event loop goroutine; the stack
// does no locking.
package undo

import (
	"time"

	"github.com/cadkit/cadkit/base/errors"
)

// DefaultMaxRecords is the default limit on committed records;
// the oldest record is dropped when the limit is exceeded.
// See [Stack.Max].
var DefaultMaxRecords = 1000

// Errors returned by [Stack.Undo] and [Stack.Redo].
var (
	// ErrInOperation is returned when undo or redo is attempted
	// while an operation is still open.
	ErrInOperation = errors.New("undo: operation still open")

	// ErrNothingToUndo is returned when there is no record to undo.
	ErrNothingToUndo = errors.New("undo: nothing to undo")

	// ErrNothingToRedo is returned when there is no record to redo.
	ErrNothingToRedo = errors.New("undo: nothing to redo")
)

// Change is one reversible model change, recorded by the mutator
// that applied it. Redo reapplies the change and Undo reverts it;
// both run on the event loop goroutine, in record order for redo
// and reverse record order for undo.
type Change struct {

	// Label describes the change for debugging (e.g., "add Shape").
	Label string

	// Redo reapplies the change.
	Redo func()

	// Undo reverts the change.
	Undo func()
}

// Options are the options for beginning an operation.
// A nil *Options means the defaults (visible, undoable).
type Options struct {

	// Transparent merges the operation into the previous committed
	// record on commit, so it does not appear as its own undo step.
	Transparent bool

	// NoUndo discards the operation's changes on commit instead of
	// recording them, for changes that should not be undoable at all.
	NoUndo bool
}

// Op is one named operation: an ordered list of changes that undo
// and redo as a unit.
type Op struct {

	// Name is the operation name shown in undo menus.
	Name string

	// Changes are the changes in the order they were applied.
	Changes []Change

	// Transparent marks the operation as merged-on-commit.
	Transparent bool

	// NoUndo marks the operation's changes as not recorded.
	NoUndo bool

	// Time is when the operation was committed.
	Time time.Time
}

// Stack manages the undo / redo records for one document.
type Stack struct {

	// Recs are the committed operation records, oldest first.
	Recs []*Op

	// Idx is the number of records currently applied: the record
	// that Undo reverts next is Recs[Idx-1], and the record that
	// Redo reapplies next is Recs[Idx].
	Idx int

	// Max is the limit on committed records, with the oldest
	// dropped when exceeded. It is set to [DefaultMaxRecords]
	// on first commit if zero; set it to -1 for no limit.
	Max int

	// open are the currently open operations, innermost last.
	open []*Op
}

// Begin opens a new operation with the given name and options
// (nil means defaults) and returns it. Operations nest: an
// operation begun while another is open folds into the outer
// one on commit, and only the outermost commit creates a record.
func (us *Stack) Begin(name string, opts *Options) *Op {
	if opts == nil {
		opts = &Options{}
	}
	op := &Op{Name: name, Transparent: opts.Transparent, NoUndo: opts.NoUndo}
	us.open = append(us.open, op)
	return op
}

// InOp returns whether any operation is currently open.
func (us *Stack) InOp() bool {
	return len(us.open) > 0
}

// Depth returns the number of currently open operations.
func (us *Stack) Depth() int {
	return len(us.open)
}

// CurrentOp returns the innermost open operation, or nil.
func (us *Stack) CurrentOp() *Op {
	if len(us.open) == 0 {
		return nil
	}
	return us.open[len(us.open)-1]
}

// Save records the given change in the innermost open operation.
// If no operation is open, the change is committed directly as
// its own record named by the change label.
func (us *Stack) Save(ch Change) {
	if op := us.CurrentOp(); op != nil {
		op.Changes = append(op.Changes, ch)
		return
	}
	op := us.Begin(ch.Label, nil)
	op.Changes = append(op.Changes, ch)
	us.Commit(op)
}

// Commit commits the given operation, which must be the innermost
// open one. A nested commit folds the changes into the enclosing
// operation. A top-level commit of a normal operation appends a
// new record and truncates any redo tail; a transparent one merges
// its changes into the previous committed record instead. Empty
// operations and NoUndo operations leave no record.
func (us *Stack) Commit(op *Op) {
	n := len(us.open)
	if n == 0 || us.open[n-1] != op {
		errors.Log(errors.Newf("undo: Commit of %q out of order", op.Name))
		return
	}
	us.open = us.open[:n-1]
	if len(op.Changes) == 0 {
		return
	}
	if enc := us.CurrentOp(); enc != nil {
		enc.Changes = append(enc.Changes, op.Changes...)
		return
	}
	if op.NoUndo {
		return
	}
	op.Time = time.Now()
	us.Recs = us.Recs[:us.Idx] // new work invalidates the redo tail
	if op.Transparent && us.Idx > 0 {
		prev := us.Recs[us.Idx-1]
		prev.Changes = append(prev.Changes, op.Changes...)
		return
	}
	us.Recs = append(us.Recs, op)
	us.Idx++
	us.trim()
}

// Abort aborts the given operation, which must be the innermost
// open one, reverting its changes in reverse order. Changes folded
// in from nested commits revert with it.
func (us *Stack) Abort(op *Op) {
	n := len(us.open)
	if n == 0 || us.open[n-1] != op {
		errors.Log(errors.Newf("undo: Abort of %q out of order", op.Name))
		return
	}
	us.open = us.open[:n-1]
	for i := len(op.Changes) - 1; i >= 0; i-- {
		if u := op.Changes[i].Undo; u != nil {
			u()
		}
	}
}

// Undo reverts the most recent committed record, returning its
// name. It returns [ErrInOperation] if an operation is open and
// [ErrNothingToUndo] if there is no record to undo.
func (us *Stack) Undo() (string, error) {
	if us.InOp() {
		return "", ErrInOperation
	}
	if us.Idx <= 0 {
		return "", ErrNothingToUndo
	}
	us.Idx--
	op := us.Recs[us.Idx]
	for i := len(op.Changes) - 1; i >= 0; i-- {
		if u := op.Changes[i].Undo; u != nil {
			u()
		}
	}
	return op.Name, nil
}

// Redo reapplies the most recently undone record, returning its
// name. It returns [ErrInOperation] if an operation is open and
// [ErrNothingToRedo] if there is no record to redo.
func (us *Stack) Redo() (string, error) {
	if us.InOp() {
		return "", ErrInOperation
	}
	if us.Idx >= len(us.Recs) {
		return "", ErrNothingToRedo
	}
	op := us.Recs[us.Idx]
	us.Idx++
	for _, ch := range op.Changes {
		if r := ch.Redo; r != nil {
			r()
		}
	}
	return op.Name, nil
}

// UndoAvailable returns whether there is a record to undo.
func (us *Stack) UndoAvailable() bool {
	return !us.InOp() && us.Idx > 0
}

// RedoAvailable returns whether there is a record to redo.
func (us *Stack) RedoAvailable() bool {
	return !us.InOp() && us.Idx < len(us.Recs)
}

// UndoName returns the name of the record that Undo would revert,
// or "" if none.
func (us *Stack) UndoName() string {
	if us.Idx <= 0 {
		return ""
	}
	return us.Recs[us.Idx-1].Name
}

// RedoName returns the name of the record that Redo would
// reapply, or "" if none.
func (us *Stack) RedoName() string {
	if us.Idx >= len(us.Recs) {
		return ""
	}
	return us.Recs[us.Idx].Name
}

// Reset discards all records and open operations.
func (us *Stack) Reset() {
	us.Recs = nil
	us.Idx = 0
	us.open = nil
}

// trim drops the oldest records when over the Max limit.
func (us *Stack) trim() {
	if us.Max == 0 {
		us.Max = DefaultMaxRecords
	}
	if us.Max < 0 {
		return
	}
	for len(us.Recs) > us.Max {
		us.Recs = us.Recs[1:]
		us.Idx--
	}
}
