// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cadkit/cadkit/host"
	"github.com/cadkit/cadkit/model"
)

func TestAppNewDocument(t *testing.T) {
	ap := NewApp("cadkit-test")
	dc := ap.NewDocument("house")
	require.NotNil(t, dc)
	assert.True(t, dc.Valid())
	assert.Same(t, ap.Loop, dc.Scheduler)
	assert.Equal(t, ap.Settings.MaxUndoRecords, dc.Undos.Max)
	assert.Same(t, dc, ap.ActiveDocument())
	assert.Len(t, ap.Docs, 1)
}

func TestAppActiveDocument(t *testing.T) {
	ap := NewApp("cadkit-test")
	assert.Nil(t, ap.ActiveDocument())
	a := ap.NewDocument("a")
	b := ap.NewDocument("b")
	assert.Same(t, b, ap.ActiveDocument())
	require.NoError(t, ap.SetActiveDocument(a))
	assert.Same(t, a, ap.ActiveDocument())

	foreign := model.NewDocument("x")
	assert.Error(t, ap.SetActiveDocument(foreign))
	assert.Same(t, a, ap.ActiveDocument())
}

func TestAppCloseDocument(t *testing.T) {
	ap := NewApp("cadkit-test")
	a := ap.NewDocument("a")
	b := ap.NewDocument("b")
	c := ap.NewDocument("c")
	require.NoError(t, ap.SetActiveDocument(b))

	ap.CloseDocument(b)
	assert.False(t, b.Valid())
	assert.Len(t, ap.Docs, 2)
	assert.Same(t, a, ap.ActiveDocument())

	ap.CloseDocument(c)
	assert.Same(t, a, ap.ActiveDocument())

	ap.CloseDocument(a)
	assert.Nil(t, ap.ActiveDocument())
	assert.Empty(t, ap.Docs)
}

func TestAppSaveOpenDocument(t *testing.T) {
	ap := NewApp("cadkit-test")
	dc := ap.NewDocument("house")
	_, err := dc.AddShape(dc.Root, model.Box, "base")
	require.NoError(t, err)
	fname := filepath.Join(t.TempDir(), "house.cadkit.json")
	require.NoError(t, dc.SaveJSON(fname))

	ld, err := ap.OpenDocument(fname)
	require.NoError(t, err)
	assert.True(t, ld.Valid())
	assert.Same(t, ap.Loop, ld.Scheduler)
	assert.Same(t, ld, ap.ActiveDocument())
	assert.Equal(t, 1, ld.Root.NumChildren())

	_, err = ap.OpenDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAppQuit(t *testing.T) {
	ap := NewApp("cadkit-test")
	dc := ap.NewDocument("house")
	done := make(chan struct{})
	go func() {
		ap.Run()
		close(done)
	}()
	ap.Quit()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("app did not quit")
	}
	assert.False(t, dc.Valid())
	assert.Empty(t, ap.Docs)
}
