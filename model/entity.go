// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides the cadkit document model: a tree of
// entities (groups and shapes) with stable IDs, materials,
// undoable named operations, and synchronous document events.
//
// The tree methods on [EntityBase] are raw plumbing that do not
// record undo or emit events; all model mutation in applications
// goes through the [Document] operations, which do.
package model

import (
	"fmt"
	"reflect"
	"sort"
)

// Entity is the interface that all document entities satisfy. The
// core functionality is defined on [EntityBase], which all entity
// types must embed; this interface only contains what entity
// types may need to override. Call [Entity.AsEntity] to access
// the core tree functionality. All values implementing Entity are
// pointer values.
type Entity interface {

	// AsEntity returns the [EntityBase] of this entity. Most core
	// tree functionality is implemented on [EntityBase].
	AsEntity() *EntityBase

	// Init is called when the entity is first initialized, before
	// it is added to a parent, and only once in its lifetime. It
	// is where entity types establish field defaults.
	Init()

	// OnAdd is called when the entity is added to a parent, once
	// in its lifetime unless the entity is moved. It is not called
	// on root entities.
	OnAdd()

	// Destroy recursively destroys the entity and all of its
	// children. Entity types can implement this to release
	// additional resources; they should call [EntityBase.Destroy]
	// at the end of their implementation.
	Destroy()

	// CopyFieldsFrom copies the fields of the entity from the
	// given entity. By default it is [EntityBase.CopyFieldsFrom],
	// which deep-copies all fields without a `copier:"-"` tag.
	// Implement it only for fields needing special logic, calling
	// [EntityBase.CopyFieldsFrom] first.
	CopyFieldsFrom(from Entity)

	// KindName returns the stable lowercase kind name of this
	// entity type, used for serialization and automatic naming.
	KindName() string
}

// Kind registry:

// kindRegistry maps kind names to their concrete types for
// creating entities when loading documents.
var kindRegistry = map[string]reflect.Type{}

// RegisterKind registers the concrete type of the given entity
// under its [Entity.KindName], so documents containing it can be
// loaded. Entity types register themselves in an init function.
func RegisterKind(ent Entity) {
	kindRegistry[ent.KindName()] = reflect.TypeOf(ent).Elem()
}

// NewOfKind returns a new uninitialized entity of the given
// registered kind name, or an error for an unknown kind.
func NewOfKind(kind string) (Entity, error) {
	typ, ok := kindRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("model: entity kind %q not registered", kind)
	}
	return reflect.New(typ).Interface().(Entity), nil
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	ks := make([]string, 0, len(kindRegistry))
	for k := range kindRegistry {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func init() {
	RegisterKind(&EntityBase{})
}
