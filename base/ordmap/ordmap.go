// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements an ordered map: a slice that retains
// the order in which items were added, paired with a map from key
// to slice index for fast lookup. Adding and lookup are fast;
// deleting and inserting are slower because indexes above the
// change must be renumbered, which is acceptable for the small
// keyed collections it is used for (material libraries, named
// registries).
package ordmap

import (
	"fmt"
	"slices"
)

// KeyValue is one key-value pair in the ordered slice.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map. The zero value is usable; the
// index map is created on first Add.
type Map[K comparable, V any] struct {

	// Order is the ordered list of key-value pairs, in the order added.
	Order []KeyValue[K, V]

	// indexes is the key to index lookup map.
	indexes map[K]int
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{indexes: make(map[K]int)}
}

// Init creates the index map if it does not yet exist.
func (om *Map[K, V]) Init() {
	if om.indexes == nil {
		om.indexes = make(map[K]int)
	}
}

// Reset removes all elements.
func (om *Map[K, V]) Reset() {
	om.Order = nil
	om.indexes = nil
}

// Add adds the given value under the given key. If the key is
// already present, its value is replaced in place, keeping the
// original order position.
func (om *Map[K, V]) Add(key K, val V) {
	om.Init()
	if idx, has := om.indexes[key]; has {
		om.Order[idx] = KeyValue[K, V]{Key: key, Value: val}
		return
	}
	om.indexes[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// InsertAtIndex inserts the given value with the given key at the
// given index, renumbering everything above it. It panics if the
// key already exists, as the behavior would be undefined.
func (om *Map[K, V]) InsertAtIndex(idx int, key K, val V) {
	if _, has := om.indexes[key]; has {
		panic("ordmap: InsertAtIndex key already exists")
	}
	om.Init()
	for o := idx; o < len(om.Order); o++ {
		om.indexes[om.Order[o].Key] = o + 1
	}
	om.indexes[key] = idx
	om.Order = slices.Insert(om.Order, idx, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKey returns the value for the given key, with a zero
// value for a missing key. See [Map.ValueByKeyTry] for a version
// distinguishing missing keys.
func (om *Map[K, V]) ValueByKey(key K) V {
	if idx, ok := om.indexes[key]; ok {
		return om.Order[idx].Value
	}
	var zv V
	return zv
}

// ValueByKeyTry returns the value for the given key, and false
// if the key is not present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if idx, ok := om.indexes[key]; ok {
		return om.Order[idx].Value, true
	}
	var zv V
	return zv, false
}

// HasKey returns whether the given key is present.
func (om *Map[K, V]) HasKey(key K) bool {
	_, ok := om.indexes[key]
	return ok
}

// IndexByKey returns the order index of the given key, or -1 if
// the key is not present.
func (om *Map[K, V]) IndexByKey(key K) int {
	idx, ok := om.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// ValueByIndex returns the value at the given order index.
func (om *Map[K, V]) ValueByIndex(idx int) V {
	return om.Order[idx].Value
}

// KeyByIndex returns the key at the given order index.
func (om *Map[K, V]) KeyByIndex(idx int) K {
	return om.Order[idx].Key
}

// Len returns the number of items, safe to call on a nil map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// DeleteIndex deletes items in the index range [i, j), which must
// be non-empty, renumbering everything above it.
func (om *Map[K, V]) DeleteIndex(i, j int) {
	if j-i <= 0 {
		panic(fmt.Sprintf("ordmap: DeleteIndex range [%d, %d) is empty", i, j))
	}
	for o := j; o < len(om.Order); o++ {
		om.indexes[om.Order[o].Key] = o - (j - i)
	}
	for o := i; o < j; o++ {
		delete(om.indexes, om.Order[o].Key)
	}
	om.Order = slices.Delete(om.Order, i, j)
}

// DeleteKey deletes the item with the given key, returning false
// if the key is not present.
func (om *Map[K, V]) DeleteKey(key K) bool {
	idx, ok := om.indexes[key]
	if !ok {
		return false
	}
	om.DeleteIndex(idx, idx+1)
	return true
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	ks := make([]K, om.Len())
	for i, kv := range om.Order {
		ks[i] = kv.Key
	}
	return ks
}

// Values returns the values in order.
func (om *Map[K, V]) Values() []V {
	vs := make([]V, om.Len())
	for i, kv := range om.Order {
		vs[i] = kv.Value
	}
	return vs
}
