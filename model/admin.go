// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"reflect"
	"strconv"
)

// admin.go has tree infrastructure code outside of the Entity
// interface.

// InitEntity initializes the entity, setting its This field to
// itself and calling [Entity.Init] once. All entity constructors
// go through here.
func InitEntity(this Entity) {
	n := this.AsEntity()
	if n.This != this {
		n.This = this
		n.This.Init()
	}
}

// SetParent sets the parent of the given child to the given
// parent, auto-naming the child if it has no name yet. This is
// only for children with no existing parent; see [MoveToParent]
// for children that already have one. It does not add the child
// to the parent's children list; see [EntityBase.AddChild] for a
// version that does.
func SetParent(child Entity, parent Entity) {
	n := child.AsEntity()
	n.Parent = parent
	if parent != nil {
		pb := parent.AsEntity()
		pb.numLifetimeChildren++
		if n.Name == "" {
			// subtract 1 so the names start at 0
			n.SetName(child.KindName() + "-" + strconv.FormatUint(pb.numLifetimeChildren-1, 10))
		}
	}
	child.OnAdd()
}

// MoveToParent removes the given entity from its current parent's
// children list and adds it as a child of the given new parent,
// without destroying it. The parents can be in different trees.
func MoveToParent(child Entity, parent Entity) {
	cb := child.AsEntity()
	if cb.Parent != nil {
		pb := cb.Parent.AsEntity()
		idx := IndexOf(pb.Children, child)
		if idx >= 0 {
			pb.Children = append(pb.Children[:idx], pb.Children[idx+1:]...)
		}
	}
	parent.AsEntity().AddChild(child)
}

// New returns a new initialized entity of the given type, adding
// it to the given optional parent. If no name is set by the
// caller afterward, attachment gives it an automatic kind-based
// name.
func New[T Entity](parent ...Entity) T {
	typ := reflect.TypeFor[T]().Elem()
	ent := reflect.New(typ).Interface().(T)
	if len(parent) > 0 && parent[0] != nil {
		parent[0].AsEntity().AddChild(ent)
	} else {
		InitEntity(ent)
	}
	return ent
}

// NewRoot returns a new initialized root entity of the given type
// with the given name.
func NewRoot[T Entity](name string) T {
	ent := New[T]()
	ent.AsEntity().SetName(name)
	return ent
}

// IsRoot returns whether the given entity is the root of its tree.
func IsRoot(n Entity) bool {
	nb := n.AsEntity()
	return nb.This == nil || nb.Parent == nil || nb.Parent.AsEntity().This == nil
}

// Root returns the root entity of the given entity's tree.
func Root(n Entity) Entity {
	if IsRoot(n) {
		return n.AsEntity().This
	}
	return Root(n.AsEntity().Parent)
}
