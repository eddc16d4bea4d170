// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements with
// generic support for type-safe Get and nil-safe Set. Metadata
// keys function as optional fields in a struct, so CamelCase
// naming is the convention. Standard keys used across cadkit
// (Name, Doc, Author, Units, Filename) have access functions,
// which is good practice for any key to avoid typos.
package metadata

import (
	"fmt"
	"maps"

	"github.com/cadkit/cadkit/base/errors"
)

// Data is metadata as a map of named any elements.
// The zero value is ready to use through the pointer methods,
// which create the map on first Set.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets the given key to the given value, creating the map
// first if it is nil.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Delete removes the given key.
func (md *Data) Delete(key string) {
	delete(*md, key)
}

// Get returns the metadata value of the given type for the given
// key, with an error if the key is not present or holds a
// different type.
func Get[T any](md Data, key string) (T, error) {
	var zv T
	x, ok := md[key]
	if !ok {
		return zv, fmt.Errorf("metadata: key %q not found", key)
	}
	v, ok := x.(T)
	if !ok {
		return zv, fmt.Errorf("metadata: key %q is a %T, not the expected %T", key, x, zv)
	}
	return v, nil
}

// Copy does a shallow copy of metadata from the source. Pointer
// values still point at the same underlying data, but the two
// maps remain distinct. It uses [maps.Copy].
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}

// Standard keys:

// SetName sets the "Name" standard key.
func (md *Data) SetName(name string) {
	md.Set("Name", name)
}

// Name returns the "Name" standard key value (empty if not set).
func (md *Data) Name() string {
	return errors.Ignore1(Get[string](*md, "Name"))
}

// SetDoc sets the "Doc" standard key, a free-form description.
func (md *Data) SetDoc(doc string) {
	md.Set("Doc", doc)
}

// Doc returns the "Doc" standard key value (empty if not set).
func (md *Data) Doc() string {
	return errors.Ignore1(Get[string](*md, "Doc"))
}

// SetAuthor sets the "Author" standard key.
func (md *Data) SetAuthor(author string) {
	md.Set("Author", author)
}

// Author returns the "Author" standard key value (empty if not set).
func (md *Data) Author() string {
	return errors.Ignore1(Get[string](*md, "Author"))
}

// SetUnits sets the "Units" standard key, the name of the length
// unit that model coordinates are expressed in (e.g., "mm").
func (md *Data) SetUnits(units string) {
	md.Set("Units", units)
}

// Units returns the "Units" standard key value (empty if not set).
func (md *Data) Units() string {
	return errors.Ignore1(Get[string](*md, "Units"))
}

// SetFilename sets the "Filename" standard key, the os path the
// data was last saved to or opened from.
func (md *Data) SetFilename(file string) {
	md.Set("Filename", file)
}

// Filename returns the "Filename" standard key value (empty if not set).
func (md *Data) Filename() string {
	return errors.Ignore1(Get[string](*md, "Filename"))
}
