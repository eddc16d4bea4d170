// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLookup(t *testing.T) {
	om := New[string, int]()
	om.Add("steel", 1)
	om.Add("brass", 2)
	om.Add("glass", 3)

	assert.Equal(t, 3, om.Len())
	assert.Equal(t, 2, om.ValueByKey("brass"))
	assert.Equal(t, 0, om.ValueByKey("chrome"))

	v, ok := om.ValueByKeyTry("glass")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = om.ValueByKeyTry("chrome")
	assert.False(t, ok)

	assert.True(t, om.HasKey("steel"))
	assert.Equal(t, 1, om.IndexByKey("brass"))
	assert.Equal(t, -1, om.IndexByKey("chrome"))
	assert.Equal(t, "glass", om.KeyByIndex(2))
	assert.Equal(t, 1, om.ValueByIndex(0))
}

func TestAddReplaces(t *testing.T) {
	om := New[string, int]()
	om.Add("steel", 1)
	om.Add("brass", 2)
	om.Add("steel", 10)

	assert.Equal(t, 2, om.Len())
	assert.Equal(t, 10, om.ValueByKey("steel"))
	assert.Equal(t, 0, om.IndexByKey("steel")) // order position kept
}

func TestInsertDelete(t *testing.T) {
	om := New[string, int]()
	om.Add("a", 1)
	om.Add("c", 3)
	om.InsertAtIndex(1, "b", 2)

	assert.Equal(t, []string{"a", "b", "c"}, om.Keys())
	assert.Equal(t, []int{1, 2, 3}, om.Values())
	assert.Equal(t, 2, om.IndexByKey("c"))

	assert.Panics(t, func() { om.InsertAtIndex(0, "b", 9) })

	require.True(t, om.DeleteKey("b"))
	assert.False(t, om.DeleteKey("b"))
	assert.Equal(t, []string{"a", "c"}, om.Keys())
	assert.Equal(t, 1, om.IndexByKey("c"))
}

func TestZeroAndNil(t *testing.T) {
	var om Map[string, int]
	assert.Equal(t, 0, om.Len())
	om.Add("x", 1)
	assert.Equal(t, 1, om.ValueByKey("x"))

	var nm *Map[string, int]
	assert.Equal(t, 0, nm.Len())
}
