// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// RGBA is a float32 linear color with alpha.
type RGBA struct {
	R float32
	G float32
	B float32
	A float32
}

// Material is one named material in a document's material
// library. Materials are not tree entities; shapes refer to them
// by name through [Shape.Material].
type Material struct {

	// Name is the unique name of the material within its document.
	Name string

	// Color is the base color.
	Color RGBA

	// Metallic is the metalness factor, 0 to 1.
	Metallic float32

	// Roughness is the surface roughness factor, 0 to 1.
	Roughness float32
}
