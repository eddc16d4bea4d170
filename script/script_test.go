// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadkit/cadkit/host"
	. "github.com/cadkit/cadkit/script"
)

func TestRunnerRun(t *testing.T) {
	ap := host.NewApp("cadkit-script-test")
	rn := NewRunner(ap)
	dc := ap.NewDocument("scene")
	err := rn.Run(`
doc := app.ActiveDocument()
_, err := doc.AddShape(doc.Root, model.Box, "base")
if err != nil {
	panic(err)
}
`)
	require.NoError(t, err)
	require.Equal(t, 1, dc.Root.NumChildren())
	assert.Equal(t, "base", dc.Root.Child(0).AsEntity().Name)
}

func TestRunnerObserverScript(t *testing.T) {
	ap := host.NewApp("cadkit-script-test")
	rn := NewRunner(ap)
	dc := ap.NewDocument("scene")
	err := rn.Run(`
doc := app.ActiveDocument()
safe.NewObserver(doc).OnElementAdded(func(ent model.Entity) {
	doc.SetName(ent, "observed")
})
doc.AddShape(doc.Root, model.Box, "box")
`)
	require.NoError(t, err)
	ap.Loop.Settle()
	require.Equal(t, 1, dc.Root.NumChildren())
	assert.Equal(t, "observed", dc.Root.Child(0).AsEntity().Name)
}

func TestRunnerRunFile(t *testing.T) {
	ap := host.NewApp("cadkit-script-test")
	rn := NewRunner(ap)
	ap.NewDocument("scene")
	fname := filepath.Join(t.TempDir(), "build.go")
	src := "doc := app.ActiveDocument()\ndoc.AddGroup(doc.Root, \"walls\")\n"
	require.NoError(t, os.WriteFile(fname, []byte(src), 0666))
	require.NoError(t, rn.RunFile(fname))
	assert.Equal(t, 1, ap.ActiveDocument().Root.NumChildren())

	assert.Error(t, rn.RunFile(filepath.Join(t.TempDir(), "missing.go")))
}

func TestRunnerBadSource(t *testing.T) {
	ap := host.NewApp("cadkit-script-test")
	rn := NewRunner(ap)
	assert.Error(t, rn.Run("this is not go code !!!"))
}
