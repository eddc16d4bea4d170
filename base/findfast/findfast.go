// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package findfast implements bidirectional slice searching that
// starts from an estimated index and expands outward, which is
// much faster than a linear scan when the caller has a rough idea
// of where the item is (for example, a child's last known index
// in a sibling list).
package findfast

// FindFunc returns the index of the first item in the slice for
// which match returns true, searching bidirectionally outward
// from the optional starting index (defaults to the middle).
// Returns -1 if no item matches.
func FindFunc[T any](s []T, match func(e T) bool, startIndex ...int) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	start := -1
	if len(startIndex) > 0 {
		start = startIndex[0]
	}
	if start < 0 {
		start = n / 2
	}
	if start == 0 {
		for i, e := range s {
			if match(e) {
				return i
			}
		}
		return -1
	}
	if start >= n {
		start = n - 1
	}
	up := start + 1
	dn := start
	upDone := false
	for {
		if !upDone && up < n {
			if match(s[up]) {
				return up
			}
			up++
		} else {
			upDone = true
		}
		if dn >= 0 {
			if match(s[dn]) {
				return dn
			}
			dn--
		} else if upDone {
			break
		}
	}
	return -1
}

// Find is [FindFunc] for comparable elements, matching by ==.
func Find[T comparable](s []T, item T, startIndex ...int) int {
	return FindFunc(s, func(e T) bool { return e == item }, startIndex...)
}
