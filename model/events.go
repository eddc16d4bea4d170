// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/cadkit/cadkit/events"
)

// TreeEvent is the event for element changes in a document tree:
// [events.ElementAdded], [events.ElementRemoved], and
// [events.ElementChanged].
type TreeEvent struct {
	events.Base

	// Entity is the entity concerned. It is nil for
	// [events.ElementRemoved], whose entity handle is already
	// invalid when listeners run; use ID instead.
	Entity Entity

	// ID is the document-stable identifier of the entity, valid
	// for all tree events including removals.
	ID uint64

	// Path is the path of the entity at the time of the event.
	Path string

	// Field is the name of the field that changed, for
	// [events.ElementChanged] (e.g., "Name", "Pos", "Size").
	Field string
}

func (ev *TreeEvent) String() string {
	if ev.Field != "" {
		return fmt.Sprintf("%v{ID: %d, Path: %q, Field: %q}", ev.Type(), ev.ID, ev.Path, ev.Field)
	}
	return fmt.Sprintf("%v{ID: %d, Path: %q}", ev.Type(), ev.ID, ev.Path)
}

// OpEvent is the event for operation lifecycle changes on a
// document: [events.OperationStart], [events.OperationCommit],
// [events.OperationAbort], [events.Undone], and [events.Redone].
type OpEvent struct {
	events.Base

	// Name is the name of the operation.
	Name string

	// Transparent is whether the operation merges into the
	// previous undo record instead of being its own step.
	Transparent bool
}

func (ev *OpEvent) String() string {
	return fmt.Sprintf("%v{Name: %q, Transparent: %v}", ev.Type(), ev.Name, ev.Transparent)
}

// DocEvent is the event for whole-document changes:
// [events.DocumentSaved] and [events.DocumentClosing].
type DocEvent struct {
	events.Base

	// Filename is the file involved, for [events.DocumentSaved].
	Filename string
}

func (ev *DocEvent) String() string {
	return fmt.Sprintf("%v{Filename: %q}", ev.Type(), ev.Filename)
}
