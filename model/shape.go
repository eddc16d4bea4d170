// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/cadkit/cadkit/math32"
)

// ShapeKinds are the kinds of primitive solid that a [Shape] can be.
type ShapeKinds int32

const (
	// Box is a rectangular box, with Size as its full extents.
	Box ShapeKinds = iota

	// Sphere is an ellipsoid inscribed in the Size extents.
	Sphere

	// Cylinder is a cylinder along the Y axis inscribed in the
	// Size extents.
	Cylinder

	// ShapeKindsN is the number of shape kinds.
	ShapeKindsN
)

var shapeKindNames = [...]string{
	Box:      "Box",
	Sphere:   "Sphere",
	Cylinder: "Cylinder",
}

// String returns the name of the shape kind.
func (sk ShapeKinds) String() string {
	if sk < 0 || sk >= ShapeKindsN {
		return fmt.Sprintf("ShapeKinds(%d)", int32(sk))
	}
	return shapeKindNames[sk]
}

// MarshalText implements [encoding.TextMarshaler].
func (sk ShapeKinds) MarshalText() ([]byte, error) {
	return []byte(sk.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (sk *ShapeKinds) UnmarshalText(text []byte) error {
	s := string(text)
	for i, nm := range shapeKindNames {
		if nm == s {
			*sk = ShapeKinds(i)
			return nil
		}
	}
	return fmt.Errorf("model: unknown shape kind %q", s)
}

// Shape is a leaf entity representing one primitive solid, with
// its position at the center of its extents.
type Shape struct {
	EntityBase

	// Kind is the kind of primitive solid.
	Kind ShapeKinds

	// Size is the full extents of the shape along each axis.
	// It defaults to (1, 1, 1).
	Size math32.Vector3

	// Material is the name of this shape's material in the
	// document material library, empty for the default material.
	Material string
}

func (sh *Shape) KindName() string { return "shape" }

func (sh *Shape) Init() {
	sh.Size = math32.Vec3(1, 1, 1)
}

// BBox returns the bounding box of the shape extents centered on
// the shape position.
func (sh *Shape) BBox() math32.Box3 {
	bb := math32.Box3{}
	bb.SetFromCenterAndSize(sh.Pos, sh.Size)
	return bb
}

func init() {
	RegisterKind(&Shape{})
}
