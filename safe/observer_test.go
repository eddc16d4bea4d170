// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package safe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/host"
	"github.com/cadkit/cadkit/model"
	. "github.com/cadkit/cadkit/safe"
)

// newTestDocument returns a document wired to a fresh loop.
func newTestDocument(name string) (*model.Document, *host.Loop) {
	lp := host.NewLoop()
	dc := model.NewDocument(name)
	dc.Scheduler = lp
	return dc, lp
}

func TestObserverOnElementAdded(t *testing.T) {
	dc, lp := newTestDocument("scene")
	var added []string
	NewObserver(dc).OnElementAdded(func(ent model.Entity) {
		added = append(added, ent.AsEntity().Name)
	})

	_, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	assert.Empty(t, added) // deferred, not run during the mutation

	lp.Settle()
	assert.Equal(t, []string{"base"}, added)
}

func TestObserverMutatingHandler(t *testing.T) {
	dc, lp := newTestDocument("scene")
	var renameErr error
	NewObserver(dc).OnElementAdded(func(ent model.Entity) {
		if ent.AsEntity().Name == "base" {
			renameErr = dc.SetName(ent, "grouped")
		}
	})

	sh, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	lp.Settle()
	require.NoError(t, renameErr)
	assert.Equal(t, "grouped", sh.Name)
	assert.Len(t, dc.Undos.Recs, 1)

	name, err := dc.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Add shape", name)
	assert.False(t, sh.Valid()) // rename and add undone as one step
}

func TestObserverOnElementRemoved(t *testing.T) {
	dc, lp := newTestDocument("scene")
	sh, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	id := sh.ID()

	var removed []uint64
	NewObserver(dc).OnElementRemoved(func(id uint64) {
		removed = append(removed, id)
	})
	require.NoError(t, dc.Remove(sh))
	lp.Settle()
	assert.Equal(t, []uint64{id}, removed)
}

func TestObserverOnElementChanged(t *testing.T) {
	dc, lp := newTestDocument("scene")
	sh, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)

	var fields []string
	NewObserver(dc).OnElementChanged(func(ent model.Entity, field string) {
		fields = append(fields, field)
	})
	require.NoError(t, dc.SetName(sh, "renamed"))
	require.NoError(t, dc.SetShapeMaterial(sh, ""))
	lp.Settle()
	assert.Equal(t, []string{"Name"}, fields) // same-material set is a no-op
}

// Deferred handler work is wrapped in a transparent operation; its
// commit must not re-trigger operation handlers, or the loop would
// never go idle.
func TestObserverOnOperationCommit(t *testing.T) {
	dc, lp := newTestDocument("scene")
	var ops []string
	NewObserver(dc).OnOperationCommit(func(name string) {
		ops = append(ops, name)
	})

	_, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	lp.Settle()
	assert.Equal(t, []string{"Add shape"}, ops)
	assert.False(t, lp.Step()) // the loop actually went idle
}

func TestObserverOnSync(t *testing.T) {
	dc, _ := newTestDocument("scene")
	var seen []string
	NewObserver(dc).OnSync(events.ElementAdded, func(ev events.Event) {
		tev := ev.(*model.TreeEvent)
		seen = append(seen, tev.Entity.AsEntity().Name)
	})

	_, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, seen) // synchronous, no loop needed
}

func TestObserverDetach(t *testing.T) {
	dc, lp := newTestDocument("scene")
	count := 0
	ob := NewObserver(dc).OnElementAdded(func(ent model.Entity) { count++ })

	_, err := dc.AddShape(dc.Root, model.Box, "a")
	require.NoError(t, err)
	lp.Settle()
	assert.Equal(t, 1, count)

	ob.Detach()
	ob.Detach() // idempotent
	_, err = dc.AddShape(dc.Root, model.Box, "b")
	require.NoError(t, err)
	lp.Settle()
	assert.Equal(t, 1, count)
}

func TestObserverInvalidDocument(t *testing.T) {
	ob := NewObserver(nil)
	assert.NotPanics(t, func() {
		ob.On(events.ElementAdded, func(ev events.Event) {})
		ob.Detach()
	})

	dc, _ := newTestDocument("scene")
	dc.Close()
	ob = NewObserver(dc)
	assert.NotPanics(t, func() {
		ob.OnElementAdded(func(ent model.Entity) {})
		ob.Detach()
	})
}

func TestObserverChaining(t *testing.T) {
	dc, lp := newTestDocument("scene")
	var got []string
	ob := NewObserver(dc).
		OnElementAdded(func(ent model.Entity) {
			got = append(got, "added "+ent.AsEntity().Name)
		}).
		OnOperationCommit(func(name string) {
			got = append(got, "committed "+name)
		})

	_, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	lp.Settle()
	assert.Equal(t, []string{"added base", "committed Add shape"}, got)

	ob.Detach()
	_, err = dc.AddGroup(dc.Root, "g")
	require.NoError(t, err)
	lp.Settle()
	assert.Len(t, got, 2)
}
