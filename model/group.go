// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cadkit/cadkit/math32"

// Boxer is implemented by entities that contribute geometry to
// bounding box computations.
type Boxer interface {

	// BBox returns the axis-aligned bounding box of this entity in
	// its parent's coordinates, empty ([math32.B3Empty]) if the
	// entity has no geometry.
	BBox() math32.Box3
}

// Group is a container entity that groups child entities and
// positions and scales them as a unit. The root of every
// [Document] is a Group.
type Group struct {
	EntityBase

	// Scale is the per-axis scale applied to all children.
	// It defaults to (1, 1, 1).
	Scale math32.Vector3
}

func (gp *Group) KindName() string { return "group" }

func (gp *Group) Init() {
	gp.Scale = math32.Vec3(1, 1, 1)
}

// BBox returns the union of the children's bounding boxes, scaled
// by the group scale and translated by the group position. It is
// empty for a group with no geometry below it.
func (gp *Group) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, kid := range gp.Children {
		bx, ok := kid.(Boxer)
		if !ok {
			continue
		}
		bb.ExpandByBox(bx.BBox())
	}
	if bb.IsEmpty() {
		return bb
	}
	return bb.Scaled(gp.Scale).Translate(gp.Pos)
}

func init() {
	RegisterKind(&Group{})
}
