// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 is a 3D axis-aligned bounding box defined by its minimum
// and maximum corner points.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns a new [Box3] from the given minimum and maximum
// x, y, and z coordinates.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Empty returns a new empty [Box3], with Min at +Infinity and
// Max at -Infinity, so that expanding by any point makes the box
// that point.
func B3Empty() Box3 {
	b := Box3{}
	b.SetEmpty()
	return b
}

// SetEmpty sets this box to empty (Min +Infinity, Max -Infinity).
func (b *Box3) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns true if this box is empty (max < min on any
// coordinate).
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// SetFromPoints sets this box to the bounding box of the given
// points.
func (b *Box3) SetFromPoints(points []Vector3) {
	b.SetEmpty()
	for _, p := range points {
		b.ExpandByPoint(p)
	}
}

// SetFromCenterAndSize sets this box from a center point and a
// size vector from the minimum corner to the maximum corner.
func (b *Box3) SetFromCenterAndSize(center, size Vector3) {
	half := size.MulScalar(0.5)
	b.Min = center.Sub(half)
	b.Max = center.Add(half)
}

// ExpandByPoint expands this box as needed to include the given
// point.
func (b *Box3) ExpandByPoint(point Vector3) {
	b.Min.SetMin(point)
	b.Max.SetMax(point)
}

// ExpandByBox expands this box as needed to include the given box.
func (b *Box3) ExpandByBox(box Box3) {
	if box.IsEmpty() {
		return
	}
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// ExpandByScalar expands this box symmetrically by the given
// scalar, subtracting it from Min and adding it to Max.
func (b *Box3) ExpandByScalar(scalar float32) {
	b.Min.SetSubScalar(scalar)
	b.Max.SetAddScalar(scalar)
}

// Center returns the center point of this box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size returns the size of this box: the vector from its minimum
// corner to its maximum corner.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint returns whether this box contains the given point.
func (b Box3) ContainsPoint(point Vector3) bool {
	if point.X < b.Min.X || point.X > b.Max.X ||
		point.Y < b.Min.Y || point.Y > b.Max.Y ||
		point.Z < b.Min.Z || point.Z > b.Max.Z {
		return false
	}
	return true
}

// IntersectsBox returns whether the other box intersects this one.
func (b Box3) IntersectsBox(other Box3) bool {
	if other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z {
		return false
	}
	return true
}

// Union returns the union of this box with the other.
func (b Box3) Union(other Box3) Box3 {
	other.Min.SetMin(b.Min)
	other.Max.SetMax(b.Max)
	return other
}

// Translate returns this box translated by the given offset.
func (b Box3) Translate(offset Vector3) Box3 {
	return Box3{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Scaled returns this box with both corners multiplied
// componentwise by the given scale factors, re-sorted so Min
// stays the minimum corner under negative scales.
func (b Box3) Scaled(scale Vector3) Box3 {
	a := b.Min.Mul(scale)
	c := b.Max.Mul(scale)
	return Box3{Min: a.Min(c), Max: a.Max(c)}
}
