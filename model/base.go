// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cadkit/cadkit/math32"
	"github.com/jinzhu/copier"
)

// EntityBase implements the [Entity] interface and provides the
// core tree functionality for the cadkit model. All entity types
// must use EntityBase as an embedded struct.
//
// All entities must be initialized through [New], [NewRoot],
// [EntityBase.NewChild], [EntityBase.AddChild], or
// [EntityBase.Clone], which set the [EntityBase.This] field and
// call [Entity.Init].
//
// Entities support JSON marshalling and unmarshalling through the
// standard [encoding/json] interfaces; to load a root entity of
// the correct type from JSON, use [UnmarshalRootJSON].
type EntityBase struct {

	// Name is the name of this entity, typically unique relative
	// to other children of the same parent. It is used for finding
	// and serializing entities. If not otherwise set, it defaults
	// to the kind name of the entity plus the total number of
	// children ever added to its parent.
	Name string `copier:"-"`

	// Pos is the position of this entity relative to its parent.
	Pos math32.Vector3

	// This is the value of this entity as its true underlying
	// type, which allows methods defined on base types to call
	// methods defined on higher-level types. It is set to nil when
	// the entity is destroyed.
	This Entity `copier:"-" json:"-"`

	// Parent is the parent of this entity, set automatically when
	// it is added as a child of a parent. Entities have at most
	// one parent; use [MoveToParent] to change it.
	Parent Entity `copier:"-" json:"-"`

	// Children is the list of children of this entity, all of
	// which have this entity set as their parent. Use the child
	// helper functions rather than modifying it directly so
	// everything is updated properly.
	Children []Entity `copier:"-" json:",omitempty"`

	// Properties is a map for arbitrary key-value properties.
	// When possible, use typed fields on an entity type instead.
	// Use [EntityBase.SetProperty], [EntityBase.Property], and
	// [EntityBase.DeleteProperty] to access it.
	Properties map[string]any `copier:"-" json:",omitempty"`

	// id is the document-stable identifier, assigned when the
	// entity is first attached to a document. It is how events
	// refer to entities whose handles are no longer valid.
	id uint64

	// doc is the document this entity is attached to, if any.
	doc *Document

	// removed marks an entity that has been removed from its
	// document; a removed entity is invalid even though its tree
	// structure is retained for undo.
	removed bool

	// numLifetimeChildren is the number of children ever added to
	// this entity, used for automatic unique naming.
	numLifetimeChildren uint64

	// index is the last known value of our index in our parent,
	// used as a starting point for finding us there next time.
	// It is not guaranteed accurate; use [EntityBase.IndexInParent].
	index int
}

// String implements [fmt.Stringer] by returning the path of the
// entity.
func (n *EntityBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// AsEntity returns the [EntityBase] for this entity.
func (n *EntityBase) AsEntity() *EntityBase {
	return n
}

// KindName returns "entity". All real entity types override this.
func (n *EntityBase) KindName() string {
	return "entity"
}

// SetName sets the name of this entity. Renaming an entity in a
// document should go through [Document.SetName] so it is undoable
// and observed.
func (n *EntityBase) SetName(name string) {
	n.Name = name
}

// ID returns the document-stable identifier of this entity, which
// is zero until the entity is attached to a document.
func (n *EntityBase) ID() uint64 {
	return n.id
}

// Document returns the document this entity is attached to, or nil.
func (n *EntityBase) Document() *Document {
	return n.doc
}

// Valid returns whether this entity handle is still usable: it
// has not been destroyed and not been removed from its document.
func (n *EntityBase) Valid() bool {
	return n != nil && n.This != nil && !n.removed
}

// NewInstance returns a new uninitialized entity of the same type
// as this one.
func (n *EntityBase) NewInstance() Entity {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Entity)
}

// Parents:

// IndexInParent returns our index within our parent, caching the
// last value so subsequent calls are typically fast. It returns
// -1 if we have no parent.
func (n *EntityBase) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	idx := IndexOf(n.Parent.AsEntity().Children, n.This, n.index)
	n.index = idx
	return idx
}

// ParentByName returns the first parent up the hierarchy with the
// given name, or nil if none matches.
func (n *EntityBase) ParentByName(name string) Entity {
	if IsRoot(n.This) {
		return nil
	}
	if n.Parent.AsEntity().Name == name {
		return n.Parent
	}
	return n.Parent.AsEntity().ParentByName(name)
}

// Children:

// HasChildren returns whether this entity has any children.
func (n *EntityBase) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children this entity has.
func (n *EntityBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child at the given index, or nil if the index
// is out of range.
func (n *EntityBase) Child(i int) Entity {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child with the given name, or nil
// if none matches. The optional startIndex enables an optimized
// bidirectional search when you have an idea where it might be.
func (n *EntityBase) ChildByName(name string, startIndex ...int) Entity {
	return n.Child(IndexByName(n.Children, name, startIndex...))
}

// Paths:

// EscapePathName returns the name with any / replaced by \\ so it
// can appear as one element of a path.
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns the name with any \\ replaced by /.
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this entity from the tree root, using
// entity names separated by / delimiters, with any / characters
// in names escaped to \\.
func (n *EntityBase) Path() string {
	if n.Parent != nil {
		return n.Parent.AsEntity().Path() + "/" + EscapePathName(n.Name)
	}
	return "/" + EscapePathName(n.Name)
}

// PathFrom returns the path to this entity from the given parent,
// excluding the parent's name and the leading slash: in the tree
// a/b/c/d, the result of d.PathFrom(b) is c/d. It automatically
// uses the This version of the given parent.
func (n *EntityBase) PathFrom(parent Entity) string {
	if n.This == parent {
		return ""
	}
	parent = parent.AsEntity().This
	if n.Parent == nil || n.Parent == parent {
		return EscapePathName(n.Name)
	}
	ppath := n.Parent.AsEntity().PathFrom(parent)
	return ppath + "/" + EscapePathName(n.Name)
}

// FindPath returns the entity at the given path from this entity,
// in the format produced by [EntityBase.PathFrom], which only
// works correctly when names are unique. Index-based elements
// (e.g., [0] for the first child, negative from the end) are also
// supported. It returns nil if no entity is found.
func (n *EntityBase) FindPath(path string) Entity {
	cur := n.This
	pels := strings.Split(strings.Trim(strings.TrimSpace(path), "\""), "/")
	for _, pe := range pels {
		if len(pe) == 0 {
			continue
		}
		idx := findPathChild(cur, UnescapePathName(pe))
		if idx < 0 || idx >= len(cur.AsEntity().Children) {
			return nil
		}
		cur = cur.AsEntity().Children[idx]
	}
	return cur
}

// findPathChild finds the child with the given path element
// representation in [EntityBase.FindPath].
func findPathChild(n Entity, child string) int {
	if len(child) > 1 && child[0] == '[' && child[len(child)-1] == ']' {
		idx, err := strconv.Atoi(child[1 : len(child)-1])
		if err != nil {
			return -1
		}
		if idx < 0 { // from end
			idx = len(n.AsEntity().Children) + idx
		}
		return idx
	}
	return IndexByName(n.AsEntity().Children, child)
}

// Adding and Inserting Children:

// AddChild adds the given child at the end of the children list.
// The child is assumed to not be on another tree (see
// [MoveToParent]) and its existing name should be unique among
// children.
func (n *EntityBase) AddChild(kid Entity) {
	InitEntity(kid)
	n.Children = append(n.Children, kid)
	SetParent(kid, n.This)
}

// NewChild creates a new child of the same type as the given
// entity and adds it at the end of the children list.
func (n *EntityBase) NewChild(kid Entity) Entity {
	nc := kid.AsEntity().NewInstance()
	n.AddChild(nc)
	return nc
}

// InsertChild adds the given child at the given position in the
// children list. The child is assumed to not be on another tree.
func (n *EntityBase) InsertChild(kid Entity, index int) {
	InitEntity(kid)
	n.Children = slices.Insert(n.Children, index, kid)
	SetParent(kid, n.This)
}

// Deleting Children:

// DeleteChildAt deletes and destroys the child at the given
// index, returning false if there is no child there.
func (n *EntityBase) DeleteChildAt(index int) bool {
	child := n.Child(index)
	if child == nil {
		return false
	}
	n.Children = slices.Delete(n.Children, index, index+1)
	child.Destroy()
	return true
}

// DeleteChild deletes and destroys the given child, returning
// false if it cannot find it.
func (n *EntityBase) DeleteChild(child Entity) bool {
	if child == nil {
		return false
	}
	idx := IndexOf(n.Children, child)
	if idx < 0 {
		return false
	}
	return n.DeleteChildAt(idx)
}

// DeleteChildren deletes and destroys all children of this entity.
func (n *EntityBase) DeleteChildren() {
	kids := n.Children
	n.Children = n.Children[:0] // preserves capacity
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kid.Destroy()
	}
}

// Delete deletes this entity from its parent's children list and
// destroys it.
func (n *EntityBase) Delete() {
	if n.Parent == nil {
		n.This.Destroy()
	} else {
		n.Parent.AsEntity().DeleteChild(n.This)
	}
}

// Destroy recursively destroys this entity and all of its
// children, leaving This nil so the handle reads as invalid.
func (n *EntityBase) Destroy() {
	if n.This == nil { // already destroyed
		return
	}
	n.DeleteChildren()
	n.This = nil
}

// Property Storage:

// SetProperty sets the given property to the given value.
func (n *EntityBase) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	n.Properties[key] = value
}

// Property returns the property value for the given key, or nil
// if it does not exist.
func (n *EntityBase) Property(key string) any {
	return n.Properties[key]
}

// DeleteProperty deletes the property with the given key.
func (n *EntityBase) DeleteProperty(key string) {
	if n.Properties == nil {
		return
	}
	delete(n.Properties, key)
}

// Tree Walking:

const (
	// Continue = true can be returned from tree walking functions
	// to continue processing down the tree.
	Continue = true

	// Break = false can be returned from tree walking functions to
	// stop processing this branch of the tree.
	Break = false
)

// WalkUp calls the given function on this entity and all of its
// parents. It stops walking if the function returns [Break] and
// keeps walking on [Continue], returning whether the walk
// finished (false if aborted with [Break]).
func (n *EntityBase) WalkUp(fun func(e Entity) bool) bool {
	cur := n.This
	for {
		if !fun(cur) {
			return false
		}
		parent := cur.AsEntity().Parent
		if parent == nil || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of this entity's
// parents, but not the entity itself. It stops walking if the
// function returns [Break] and keeps walking on [Continue],
// returning whether the walk finished.
func (n *EntityBase) WalkUpParent(fun func(e Entity) bool) bool {
	if IsRoot(n.This) {
		return true
	}
	cur := n.Parent
	for {
		if !fun(cur) {
			return false
		}
		parent := cur.AsEntity().Parent
		if parent == nil || parent == cur {
			return true
		}
		cur = parent
	}
}

// WalkDown calls the given function on this entity and all of its
// children in depth-first order. It stops walking the current
// branch if the function returns [Break] and keeps going on
// [Continue]. It is non-recursive, using a traversal map, and the
// function is allowed to delete or destroy the node it is called
// on.
func (n *EntityBase) WalkDown(fun func(e Entity) bool) {
	if n.This == nil {
		return
	}
	tm := map[Entity]int{} // traversal map
	start := n.This
	cur := start
	tm[cur] = -1
outer:
	for {
		cb := cur.AsEntity()
		// fun can destroy the node, so check This before and after.
		if cb.This != nil && fun(cur) && cb.This != nil {
			if cb.HasChildren() {
				tm[cur] = 0
				nxt := cb.Child(0)
				if nxt != nil && nxt.AsEntity().This != nil {
					cur = nxt.AsEntity().This
					tm[cur] = -1
					continue
				}
			}
		} else {
			tm[cur] = cb.NumChildren()
		}
		// ascent branch: move right, then up
		for {
			cb := cur.AsEntity() // may have changed
			curChild := tm[cur]
			if curChild+1 < cb.NumChildren() {
				curChild++
				tm[cur] = curChild
				nxt := cb.Child(curChild)
				if nxt != nil && nxt.AsEntity().This != nil {
					cur = nxt.AsEntity().This
					tm[cur] = -1
					continue outer
				}
				continue
			}
			delete(tm, cur)
			if cur == start {
				break outer
			}
			parent := cb.Parent
			if parent == nil || parent == cur {
				break outer
			}
			cur = parent
		}
	}
}

// Deep Copy:

// CopyFrom copies the data and children of the given entity to
// this entity. Only copying from the same type is supported.
// Fields with a copier:"-" struct tag and unexported fields are
// not copied. See [Entity.CopyFieldsFrom] for field copying.
func (n *EntityBase) CopyFrom(from Entity) {
	if from == nil {
		slog.Error("model.EntityBase.CopyFrom: nil source", "destination", n)
		return
	}
	copyFrom(n.This, from)
}

// copyFrom is the implementation of [EntityBase.CopyFrom].
func copyFrom(to, from Entity) {
	tob := to.AsEntity()
	fromb := from.AsEntity()

	to.CopyFieldsFrom(from)
	if fromb.Properties != nil {
		if tob.Properties == nil {
			tob.Properties = map[string]any{}
		}
		maps.Copy(tob.Properties, fromb.Properties)
	}

	tob.DeleteChildren()
	for _, fk := range fromb.Children {
		nc := fk.AsEntity().NewInstance()
		InitEntity(nc)
		nc.AsEntity().SetName(fk.AsEntity().Name)
		tob.Children = append(tob.Children, nc)
		SetParent(nc, tob.This)
		copyFrom(nc, fk)
	}
}

// Clone creates and returns a deep copy of the tree from this
// entity down, with all pointers correctly pointing within the
// new tree. The clone is not attached to any document.
func (n *EntityBase) Clone() Entity {
	nc := n.NewInstance()
	InitEntity(nc)
	nc.AsEntity().SetName(n.Name)
	nc.AsEntity().CopyFrom(n.This)
	return nc
}

// CopyFieldsFrom copies the fields of the entity from the given
// entity, deep-copying all fields without a copier:"-" struct
// tag. Entity types with fields that need special handling
// implement this, calling [EntityBase.CopyFieldsFrom] first.
func (n *EntityBase) CopyFieldsFrom(from Entity) {
	err := copier.CopyWithOption(n.This, from.AsEntity().This, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("model.EntityBase.CopyFieldsFrom", "err", err)
	}
}

// Event methods:

// Init is a placeholder implementation of [Entity.Init] that does
// nothing.
func (n *EntityBase) Init() {}

// OnAdd is a placeholder implementation of [Entity.OnAdd] that
// does nothing.
func (n *EntityBase) OnAdd() {}
