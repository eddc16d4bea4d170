// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-6

func TestScalars(t *testing.T) {
	assert.Equal(t, float32(2), Abs(-2))
	assert.Equal(t, float32(3), Sqrt(9))
	assert.Equal(t, float32(1), Min(1, 2))
	assert.Equal(t, float32(2), Max(1, 2))
	assert.Equal(t, float32(1), Clamp(0, 1, 3))
	assert.Equal(t, float32(3), Clamp(9, 1, 3))
	assert.Equal(t, float32(2), Clamp(2, 1, 3))
	assert.True(t, IsNaN(Infinity-Infinity))
	assert.False(t, IsNaN(0))
	assert.True(t, AlmostEqual(1, 1+1e-7, tol))
	assert.False(t, AlmostEqual(1, 1.01, tol))
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)

	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, Vec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, Vec3(2, 4, 6), a.MulScalar(2))
	assert.Equal(t, Vec3(0.5, 1, 1.5), a.DivScalar(2))
	assert.Equal(t, Vector3{}, a.DivScalar(0))
	assert.Equal(t, Vec3(-1, -2, -3), a.Negate())
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, float32(14), a.LengthSquared())
	assert.Equal(t, Vec3(1, 2, 3), a.Min(b))
	assert.Equal(t, Vec3(4, 5, 6), a.Max(b))
	assert.Equal(t, Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, "(1, 2, 3)", a.String())

	n := Vec3(3, 0, 4).Normal()
	assert.True(t, n.AlmostEqual(Vec3(0.6, 0, 0.8), tol))

	c := Vec3(9, -9, 2)
	c.Clamp(Vec3(0, 0, 0), Vec3(5, 5, 5))
	assert.Equal(t, Vec3(5, 0, 2), c)
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec3(1, 1, 1))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(1, 1, 1), b.Min)
	assert.Equal(t, Vec3(1, 1, 1), b.Max)

	b.ExpandByPoint(Vec3(-1, 2, 0))
	assert.Equal(t, Vec3(-1, 1, 0), b.Min)
	assert.Equal(t, Vec3(1, 2, 1), b.Max)

	assert.Equal(t, Vec3(0, 1.5, 0.5), b.Center())
	assert.Equal(t, Vec3(2, 1, 1), b.Size())
	assert.True(t, b.ContainsPoint(Vec3(0, 1.5, 0.5)))
	assert.False(t, b.ContainsPoint(Vec3(0, 0, 0)))
}

func TestBox3ExpandByBox(t *testing.T) {
	b := B3(0, 0, 0, 1, 1, 1)
	b.ExpandByBox(B3(2, -1, 0, 3, 0.5, 4))
	assert.Equal(t, B3(0, -1, 0, 3, 1, 4), b)

	// expanding by an empty box changes nothing
	before := b
	b.ExpandByBox(B3Empty())
	assert.Equal(t, before, b)
}

func TestBox3TranslateScale(t *testing.T) {
	b := B3(0, 0, 0, 2, 2, 2)
	assert.Equal(t, B3(1, 1, 1, 3, 3, 3), b.Translate(Vec3(1, 1, 1)))
	assert.Equal(t, B3(0, 0, 0, 4, 2, 2), b.Scaled(Vec3(2, 1, 1)))
	// negative scale keeps Min the minimum corner
	assert.Equal(t, B3(-4, 0, 0, 0, 2, 2), b.Scaled(Vec3(-2, 1, 1)))
}

func TestBox3Intersects(t *testing.T) {
	a := B3(0, 0, 0, 2, 2, 2)
	assert.True(t, a.IntersectsBox(B3(1, 1, 1, 3, 3, 3)))
	assert.False(t, a.IntersectsBox(B3(3, 3, 3, 4, 4, 4)))
	u := a.Union(B3(1, 1, 1, 3, 3, 3))
	assert.Equal(t, B3(0, 0, 0, 3, 3, 3), u)
}
