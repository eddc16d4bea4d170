// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/math32"
	. "github.com/cadkit/cadkit/model"
)

func makeTestTree() *Group {
	root := NewRoot[*Group]("scene")
	sh := New[*Shape](root)
	sh.SetName("ball")
	sh.Kind = Sphere
	sh.Size = math32.Vec3(2, 2, 2)
	sh.Pos = math32.Vec3(1, 0, -1)
	sh.Material = "glass"
	sh.SetProperty("layer", "furniture")
	gp := New[*Group](root)
	gp.SetName("sub")
	gp.Scale = math32.Vec3(2, 1, 1)
	inner := New[*Shape](gp)
	inner.SetName("b")
	return root
}

func assertTestTree(t *testing.T, ent Entity) {
	ng, ok := ent.(*Group)
	require.True(t, ok)
	assert.Equal(t, "scene", ng.Name)
	require.Equal(t, 2, ng.NumChildren())

	ns, ok := ng.ChildByName("ball").(*Shape)
	require.True(t, ok)
	assert.Equal(t, Sphere, ns.Kind)
	assert.Equal(t, math32.Vec3(2, 2, 2), ns.Size)
	assert.Equal(t, math32.Vec3(1, 0, -1), ns.Pos)
	assert.Equal(t, "glass", ns.Material)
	assert.Equal(t, "furniture", ns.Property("layer"))
	assert.Equal(t, Entity(ng), ns.Parent)

	sub, ok := ng.ChildByName("sub").(*Group)
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(2, 1, 1), sub.Scale)
	require.Equal(t, 1, sub.NumChildren())
	assert.Equal(t, "/scene/sub/b", sub.Child(0).AsEntity().Path())
}

func TestEntityMarshalJSON(t *testing.T) {
	root := makeTestTree()
	b, err := json.Marshal(root)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, bytes.HasPrefix(b, []byte(`{"kind":"group","numChildren":2,`)))
	assert.Contains(t, s, `"kind":"shape"`)
	assert.Contains(t, s, `"Material":"glass"`)
}

func TestEntityUnmarshalRootJSON(t *testing.T) {
	root := makeTestTree()
	b, err := json.Marshal(root)
	require.NoError(t, err)

	nr, err := UnmarshalRootJSON(b)
	require.NoError(t, err)
	assertTestTree(t, nr)
	assert.Nil(t, nr.AsEntity().Parent)

	_, err = UnmarshalRootJSON([]byte(`{"kind":"nosuch","numChildren":0,"Name":"x"}`))
	assert.Error(t, err)
}

func TestEntityJSONFile(t *testing.T) {
	root := makeTestTree()
	fn := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveNewJSON(root, fn))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, JSONKindPrefix))

	nr, err := OpenNewJSON(fn)
	require.NoError(t, err)
	assertTestTree(t, nr)
}

func TestEntityJSONStream(t *testing.T) {
	root := makeTestTree()
	var buf bytes.Buffer
	require.NoError(t, WriteNewJSON(root, &buf))
	nr, err := ReadNewJSON(&buf)
	require.NoError(t, err)
	assertTestTree(t, nr)
}

func TestReadRootKindJSON(t *testing.T) {
	_, _, err := ReadRootKindJSON([]byte(`{"Name":"x"}`))
	assert.Error(t, err)

	kind, rest, err := ReadRootKindJSON([]byte("{\"cadkit.RootKind\": \"shape\"}\n{\"kind\":\"shape\"}"))
	require.NoError(t, err)
	assert.Equal(t, "shape", kind)
	assert.Equal(t, `{"kind":"shape"}`, string(rest))
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	dc := NewDocument("villa")
	dc.Meta.SetAuthor("kit")
	dc.Meta.SetUnits("m")
	require.NoError(t, dc.AddMaterial(&Material{Name: "brick", Color: RGBA{R: 1, A: 1}, Roughness: 0.9}))
	require.NoError(t, dc.AddMaterial(&Material{Name: "glass", Color: RGBA{B: 1, A: 0.4}, Metallic: 0.1}))
	gp, _ := dc.AddGroup(dc.Root, "house")
	sh, _ := dc.AddShape(gp, Box, "wall")
	require.NoError(t, dc.SetSize(sh, math32.Vec3(4, 3, 0.25)))
	require.NoError(t, dc.SetShapeMaterial(sh, "brick"))

	var buf bytes.Buffer
	require.NoError(t, dc.WriteJSON(&buf))

	nd, err := ReadDocumentJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "villa", nd.Meta.Name())
	assert.Equal(t, "kit", nd.Meta.Author())
	assert.Equal(t, "m", nd.Meta.Units())
	assert.Equal(t, []string{"brick", "glass"}, nd.Materials.Keys())
	assert.Equal(t, float32(0.9), nd.Material("brick").Roughness)

	assert.Equal(t, "villa", nd.Root.Name)
	ng, ok := nd.Root.ChildByName("house").(*Group)
	require.True(t, ok)
	ns, ok := ng.ChildByName("wall").(*Shape)
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(4, 3, 0.25), ns.Size)
	assert.Equal(t, "brick", ns.Material)
	assert.NotZero(t, ns.ID())

	// the loaded document is fully operational
	ball, err := nd.AddShape(ng, Sphere, "ball")
	require.NoError(t, err)
	assert.NotEqual(t, ns.ID(), ball.ID())
	_, err = nd.Undo()
	require.NoError(t, err)
	assert.False(t, ball.Valid())
}

func TestDocumentJSONFile(t *testing.T) {
	dc := NewDocument("villa")
	gp, _ := dc.AddGroup(dc.Root, "house")
	dc.AddShape(gp, Cylinder, "pillar")

	var saved *DocEvent
	dc.On(events.DocumentSaved, func(ev events.Event) { saved = ev.(*DocEvent) })

	fn := filepath.Join(t.TempDir(), "villa.json")
	require.NoError(t, dc.SaveJSON(fn))
	require.NotNil(t, saved)
	assert.Equal(t, fn, saved.Filename)
	assert.Equal(t, fn, dc.Meta.Filename())

	nd, err := OpenDocumentJSON(fn)
	require.NoError(t, err)
	assert.Equal(t, fn, nd.Meta.Filename())
	ng, ok := nd.Root.ChildByName("house").(*Group)
	require.True(t, ok)
	ns, ok := ng.ChildByName("pillar").(*Shape)
	require.True(t, ok)
	assert.Equal(t, Cylinder, ns.Kind)
}

func TestDocumentJSONClosed(t *testing.T) {
	dc := NewDocument("doc")
	dc.Close()
	var buf bytes.Buffer
	assert.ErrorIs(t, dc.WriteJSON(&buf), ErrInvalidDocument)
	assert.ErrorIs(t, dc.SaveJSON(filepath.Join(t.TempDir(), "x.json")), ErrInvalidDocument)
}
