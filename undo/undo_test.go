// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package undo_test

import (
	"testing"

	"github.com/cadkit/cadkit/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intChange records setting an int variable, capturing old and
// new values in the closures like model mutators do.
func intChange(v *int, nv int) undo.Change {
	ov := *v
	*v = nv
	return undo.Change{
		Label: "set int",
		Redo:  func() { *v = nv },
		Undo:  func() { *v = ov },
	}
}

func TestBasicUndoRedo(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("set to 1", nil)
	us.Save(intChange(&v, 1))
	us.Commit(op)

	op = us.Begin("set to 2", nil)
	us.Save(intChange(&v, 2))
	us.Commit(op)

	require.Equal(t, 2, v)
	assert.True(t, us.UndoAvailable())
	assert.Equal(t, "set to 2", us.UndoName())

	name, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, "set to 2", name)
	assert.Equal(t, 1, v)

	name, err = us.Undo()
	require.NoError(t, err)
	assert.Equal(t, "set to 1", name)
	assert.Equal(t, 0, v)

	_, err = us.Undo()
	assert.ErrorIs(t, err, undo.ErrNothingToUndo)

	name, err = us.Redo()
	require.NoError(t, err)
	assert.Equal(t, "set to 1", name)
	assert.Equal(t, 1, v)

	_, err = us.Redo()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	_, err = us.Redo()
	assert.ErrorIs(t, err, undo.ErrNothingToRedo)
}

func TestUndoOrderWithinOp(t *testing.T) {
	us := &undo.Stack{}
	var order []string

	op := us.Begin("two changes", nil)
	us.Save(undo.Change{Undo: func() { order = append(order, "a") }})
	us.Save(undo.Change{Undo: func() { order = append(order, "b") }})
	us.Commit(op)

	_, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order) // reverse of record order
}

func TestEmptyOpLeavesNoRecord(t *testing.T) {
	us := &undo.Stack{}
	op := us.Begin("nothing", nil)
	us.Commit(op)
	assert.False(t, us.UndoAvailable())
	assert.Empty(t, us.Recs)
}

func TestNestedOpsFold(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	outer := us.Begin("outer", nil)
	us.Save(intChange(&v, 1))
	inner := us.Begin("inner", nil)
	us.Save(intChange(&v, 2))
	us.Commit(inner)
	assert.Empty(t, us.Recs) // inner folds, no record yet
	us.Commit(outer)

	require.Len(t, us.Recs, 1)
	assert.Equal(t, "outer", us.UndoName())

	_, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, v) // both changes reverted as one unit
}

func TestTransparentMergesIntoPrevious(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("user action", nil)
	us.Save(intChange(&v, 1))
	us.Commit(op)

	op = us.Begin("fixup", &undo.Options{Transparent: true})
	us.Save(intChange(&v, 2))
	us.Commit(op)

	require.Len(t, us.Recs, 1) // merged, not a separate step
	assert.Equal(t, "user action", us.UndoName())

	_, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, v) // undoing the user action undoes the fixup too

	_, err = us.Redo()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestTransparentWithEmptyStack(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("fixup", &undo.Options{Transparent: true})
	us.Save(intChange(&v, 1))
	us.Commit(op)

	// nothing to merge into: it becomes its own record
	require.Len(t, us.Recs, 1)
	_, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestNoUndoDiscardsChanges(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("ephemeral", &undo.Options{NoUndo: true})
	us.Save(intChange(&v, 1))
	us.Commit(op)

	assert.Equal(t, 1, v)
	assert.False(t, us.UndoAvailable())
	assert.Empty(t, us.Recs)
}

func TestAbortRevertsChanges(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("doomed", nil)
	us.Save(intChange(&v, 1))
	us.Save(intChange(&v, 2))
	us.Abort(op)

	assert.Equal(t, 0, v)
	assert.Empty(t, us.Recs)
	assert.False(t, us.InOp())
}

func TestUndoRedoBlockedWhileOpen(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	op := us.Begin("first", nil)
	us.Save(intChange(&v, 1))
	us.Commit(op)

	open := us.Begin("open", nil)
	_, err := us.Undo()
	assert.ErrorIs(t, err, undo.ErrInOperation)
	_, err = us.Redo()
	assert.ErrorIs(t, err, undo.ErrInOperation)
	assert.False(t, us.UndoAvailable())
	us.Commit(open)

	assert.True(t, us.UndoAvailable())
}

func TestNewWorkTruncatesRedoTail(t *testing.T) {
	us := &undo.Stack{}
	v := 0

	for i := 1; i <= 3; i++ {
		op := us.Begin("step", nil)
		us.Save(intChange(&v, i))
		us.Commit(op)
	}
	_, err := us.Undo()
	require.NoError(t, err)
	_, err = us.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, v)
	assert.True(t, us.RedoAvailable())

	op := us.Begin("branch", nil)
	us.Save(intChange(&v, 9))
	us.Commit(op)

	assert.False(t, us.RedoAvailable())
	require.Len(t, us.Recs, 2)

	_, err = us.Undo()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSaveWithoutOpenOp(t *testing.T) {
	us := &undo.Stack{}
	v := 0
	us.Save(intChange(&v, 7))

	require.Len(t, us.Recs, 1)
	assert.Equal(t, "set int", us.UndoName())
	_, err := us.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestMaxRecords(t *testing.T) {
	us := &undo.Stack{Max: 3}
	v := 0

	for i := 1; i <= 5; i++ {
		op := us.Begin("step", nil)
		us.Save(intChange(&v, i))
		us.Commit(op)
	}
	assert.Len(t, us.Recs, 3)
	assert.Equal(t, 3, us.Idx)
}
