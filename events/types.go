// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// Types determines the type of a document event. The type names
// the source and action of the event (e.g., ElementAdded and
// ElementRemoved are separate types). Most events use the same
// [Base] type or a small struct embedding it, and only need to
// set relevant fields and the type.
type Types int64

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// ElementAdded happens after an element has been added to a
	// document tree and is fully connected to its parent.
	ElementAdded

	// ElementRemoved happens after an element has been removed
	// from a document tree. The element handle is already invalid
	// when listeners run; events carry the stable ID instead.
	ElementRemoved

	// ElementChanged happens after a field of an element has been
	// modified in place (renamed, moved, resized, rematerialized).
	ElementChanged

	// OperationStart happens when an undo operation is opened on
	// a document, before any of its changes are applied.
	OperationStart

	// OperationCommit happens after an undo operation has been
	// committed to the document's undo stack.
	OperationCommit

	// OperationAbort happens after an open undo operation has
	// been aborted and its changes rolled back.
	OperationAbort

	// Undone happens after the document has undone an operation.
	Undone

	// Redone happens after the document has redone an operation.
	Redone

	// DocumentSaved happens after the document has been written
	// to a file.
	DocumentSaved

	// DocumentClosing happens just before a document is closed
	// and its elements are destroyed.
	DocumentClosing

	// Custom is an app-defined event with arbitrary data.
	Custom

	// TypesN is the number of event types.
	TypesN
)

var typeNames = [...]string{
	UnknownType:     "UnknownType",
	ElementAdded:    "ElementAdded",
	ElementRemoved:  "ElementRemoved",
	ElementChanged:  "ElementChanged",
	OperationStart:  "OperationStart",
	OperationCommit: "OperationCommit",
	OperationAbort:  "OperationAbort",
	Undone:          "Undone",
	Redone:          "Redone",
	DocumentSaved:   "DocumentSaved",
	DocumentClosing: "DocumentClosing",
	Custom:          "Custom",
}

// String returns the name of the event type.
func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return fmt.Sprintf("Types(%d)", int64(tp))
	}
	return typeNames[tp]
}

// IsValid returns whether tp is a valid, known event type.
func (tp Types) IsValid() bool {
	return tp > UnknownType && tp < TypesN
}

// MarshalText implements [encoding.TextMarshaler].
func (tp Types) MarshalText() ([]byte, error) {
	return []byte(tp.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (tp *Types) UnmarshalText(text []byte) error {
	s := string(text)
	for i, nm := range typeNames {
		if nm == s {
			*tp = Types(i)
			return nil
		}
	}
	return fmt.Errorf("events: unknown event type %q", s)
}
