// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cadkit/cadkit/base/findfast"

// IndexOf returns the index of the given entity in the given
// slice, or -1 if not found. The optional startIndex gives a
// starting point for the bidirectional search, which is much
// faster for large lists when roughly correct.
func IndexOf(slice []Entity, child Entity, startIndex ...int) int {
	return findfast.FindFunc(slice, func(e Entity) bool { return e == child }, startIndex...)
}

// IndexByName returns the index of the first entity in the given
// slice with the given name, or -1 if not found. The optional
// startIndex gives a starting point for the bidirectional search.
func IndexByName(slice []Entity, name string, startIndex ...int) int {
	return findfast.FindFunc(slice, func(e Entity) bool { return e.AsEntity().Name == name }, startIndex...)
}
