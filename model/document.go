// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"reflect"
	"slices"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/base/metadata"
	"github.com/cadkit/cadkit/base/ordmap"
	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/math32"
	"github.com/cadkit/cadkit/undo"
)

// Errors returned by [Document] operations.
var (
	// ErrInvalidDocument indicates a nil or closed document.
	ErrInvalidDocument = errors.New("model: invalid document")

	// ErrInvalidEntity indicates an entity that is nil, destroyed,
	// removed, or not attached to this document.
	ErrInvalidEntity = errors.New("model: invalid entity")

	// ErrRootEntity indicates an operation that cannot apply to
	// the document root.
	ErrRootEntity = errors.New("model: cannot apply to the root group")

	// ErrNoOperation indicates a commit or abort with no
	// operation open.
	ErrNoOperation = errors.New("model: no open operation")

	// ErrUnknownMaterial indicates a reference to a material name
	// that is not in the document's material library.
	ErrUnknownMaterial = errors.New("model: unknown material")
)

// Scheduler defers work to run on the host event loop after the
// current call stack unwinds. The host sets one on each document
// it owns; the safe package uses it to move observer work out of
// event dispatch.
type Scheduler interface {

	// Defer schedules the given function to run once the current
	// call stack has unwound. Depending on how the host dispatches
	// deferred work, the function may be invoked more than once;
	// callers that need exactly-once semantics guard it with a
	// completion flag (see the safe package).
	Defer(fun func())
}

// Document is one open model document: a tree of entities under a
// root [Group], a material library, an undo stack, and listeners
// for document events.
//
// All mutation goes through the Document operation methods, which
// validate their targets, record undo changes, and emit events
// synchronously. The raw tree methods on [EntityBase] do none of
// that and are for plumbing only.
//
// A Document is confined to the goroutine of the event loop that
// its host runs; work from other goroutines must be posted to
// that loop rather than touching the document directly.
type Document struct {

	// Meta holds document metadata (Name, Author, Units, Filename).
	Meta metadata.Data

	// Root is the root group containing all entities.
	Root *Group

	// Materials is the material library, ordered by addition.
	Materials ordmap.Map[string, *Material]

	// Undos is the undo stack recording committed operations.
	Undos undo.Stack

	// Listeners are the registered event listener functions.
	Listeners events.Listeners

	// Scheduler defers work to the host event loop. It is set by
	// the host that owns the document and is nil for documents
	// used without a host.
	Scheduler Scheduler

	// nextID is the source of entity IDs for this document.
	nextID uint64

	// closed marks a document that has been closed.
	closed bool
}

// NewDocument returns a new document with the given name and an
// empty root group.
func NewDocument(name string) *Document {
	dc := &Document{}
	dc.Meta.SetName(name)
	dc.Root = NewRoot[*Group](name)
	dc.adopt(dc.Root)
	return dc
}

// Valid returns whether this document is usable: non-nil, not
// closed, and with an intact root.
func (dc *Document) Valid() bool {
	return dc != nil && !dc.closed && dc.Root != nil && dc.Root.This != nil
}

// validTarget returns an error unless the given entity is a valid
// operation target in this document.
func (dc *Document) validTarget(ent Entity) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	// entity values are always pointers, so a typed nil is as
	// invalid as an untyped one
	if ent == nil || reflect.ValueOf(ent).IsNil() {
		return ErrInvalidEntity
	}
	eb := ent.AsEntity()
	if !eb.Valid() || eb.doc != dc {
		return ErrInvalidEntity
	}
	return nil
}

// adopt makes the given subtree part of this document, assigning
// IDs to entities that have none and clearing removal marks.
func (dc *Document) adopt(ent Entity) {
	ent.AsEntity().WalkDown(func(e Entity) bool {
		eb := e.AsEntity()
		eb.doc = dc
		eb.removed = false
		if eb.id == 0 {
			dc.nextID++
			eb.id = dc.nextID
		}
		return Continue
	})
}

// Events:

// On registers a listener function for the given event type,
// returning the registration ID for [Document.Off]. Listeners run
// synchronously during the mutation that emits the event; see the
// safe package for listeners that mutate the model.
func (dc *Document) On(typ events.Types, fun func(ev events.Event)) uint64 {
	return dc.Listeners.Add(typ, fun)
}

// Off removes the listener with the given registration ID for the
// given event type.
func (dc *Document) Off(typ events.Types, id uint64) {
	dc.Listeners.Remove(typ, id)
}

func (dc *Document) emit(ev events.Event) {
	dc.Listeners.Call(ev)
}

func (dc *Document) emitTree(typ events.Types, ent Entity, id uint64, path, field string) {
	dc.emit(&TreeEvent{Base: events.NewBase(typ), Entity: ent, ID: id, Path: path, Field: field})
}

func (dc *Document) emitOp(typ events.Types, name string, transparent bool) {
	dc.emit(&OpEvent{Base: events.NewBase(typ), Name: name, Transparent: transparent})
}

func (dc *Document) emitDoc(typ events.Types, filename string) {
	dc.emit(&DocEvent{Base: events.NewBase(typ), Filename: filename})
}

// Operations:

// StartOperation opens a named undo operation with the given
// options (nil for defaults), emitting [events.OperationStart]
// for the outermost operation. Operations nest; only the
// outermost commit creates an undo record. Every StartOperation
// must be paired with [Document.CommitOperation] or
// [Document.AbortOperation].
func (dc *Document) StartOperation(name string, opts *undo.Options) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	op := dc.Undos.Begin(name, opts)
	if dc.Undos.Depth() == 1 {
		dc.emitOp(events.OperationStart, name, op.Transparent)
	}
	return nil
}

// CommitOperation commits the innermost open operation, emitting
// [events.OperationCommit] when the outermost one commits.
func (dc *Document) CommitOperation() error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	op := dc.Undos.CurrentOp()
	if op == nil {
		return ErrNoOperation
	}
	outer := dc.Undos.Depth() == 1
	dc.Undos.Commit(op)
	if outer {
		dc.emitOp(events.OperationCommit, op.Name, op.Transparent)
	}
	return nil
}

// AbortOperation aborts the innermost open operation, reverting
// its changes, and emits [events.OperationAbort] when the
// outermost one aborts.
func (dc *Document) AbortOperation() error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	op := dc.Undos.CurrentOp()
	if op == nil {
		return ErrNoOperation
	}
	outer := dc.Undos.Depth() == 1
	dc.Undos.Abort(op)
	if outer {
		dc.emitOp(events.OperationAbort, op.Name, op.Transparent)
	}
	return nil
}

// InOperation returns whether an operation is currently open.
func (dc *Document) InOperation() bool {
	return dc.Undos.InOp()
}

// ensureOp opens an implicit operation with the given name if
// none is open, returning the function that closes it.
func (dc *Document) ensureOp(name string) func() {
	if dc.Undos.InOp() {
		return func() {}
	}
	dc.StartOperation(name, nil)
	return func() { dc.CommitOperation() }
}

// Undo undoes the most recent committed operation, returning its
// name and emitting [events.Undone].
func (dc *Document) Undo() (string, error) {
	if !dc.Valid() {
		return "", ErrInvalidDocument
	}
	name, err := dc.Undos.Undo()
	if err != nil {
		return "", err
	}
	dc.emitOp(events.Undone, name, false)
	return name, nil
}

// Redo redoes the most recently undone operation, returning its
// name and emitting [events.Redone].
func (dc *Document) Redo() (string, error) {
	if !dc.Valid() {
		return "", ErrInvalidDocument
	}
	name, err := dc.Undos.Redo()
	if err != nil {
		return "", err
	}
	dc.emitOp(events.Redone, name, false)
	return name, nil
}

// Adding and removing entities:

// attachEntity inserts the entity under the parent at the given
// index (clamped), adopts its subtree, and emits
// [events.ElementAdded]. It is the raw apply shared by the add
// operations and their redo closures.
func (dc *Document) attachEntity(ent Entity, parent Entity, idx int) {
	pb := parent.AsEntity()
	if idx < 0 || idx > len(pb.Children) {
		idx = len(pb.Children)
	}
	pb.InsertChild(ent, idx)
	dc.adopt(ent)
	eb := ent.AsEntity()
	dc.emitTree(events.ElementAdded, ent, eb.id, eb.Path(), "")
}

// detachEntity removes the entity from its parent, marks its
// subtree removed (invalidating the handles), and emits
// [events.ElementRemoved] carrying the stable ID and the
// pre-removal path.
func (dc *Document) detachEntity(ent Entity) {
	eb := ent.AsEntity()
	path := eb.Path()
	id := eb.id
	if eb.Parent != nil {
		pb := eb.Parent.AsEntity()
		idx := eb.IndexInParent()
		if idx >= 0 {
			pb.Children = slices.Delete(pb.Children, idx, idx+1)
		}
		eb.Parent = nil
	}
	ent.AsEntity().WalkDown(func(e Entity) bool {
		e.AsEntity().removed = true
		return Continue
	})
	dc.emitTree(events.ElementRemoved, nil, id, path, "")
}

// AddEntity adds the given initialized entity (and any subtree
// below it) at the end of the given parent group's children, as
// an undoable operation. The entity must not already have a
// parent; see [Document.Reparent] for moving entities.
func (dc *Document) AddEntity(ent Entity, parent *Group) error {
	if err := dc.validTarget(parent); err != nil {
		return err
	}
	if ent == nil || reflect.ValueOf(ent).IsNil() {
		return ErrInvalidEntity
	}
	InitEntity(ent)
	eb := ent.AsEntity()
	if eb.Parent != nil || (eb.doc != nil && eb.doc != dc) {
		return ErrInvalidEntity
	}
	if Entity(dc.Root) == eb.This {
		return ErrRootEntity
	}
	done := dc.ensureOp("Add " + ent.KindName())
	defer done()
	idx := len(parent.Children)
	attach := func() { dc.attachEntity(ent, parent, idx) }
	detach := func() { dc.detachEntity(ent) }
	attach()
	dc.Undos.Save(undo.Change{Label: "add " + eb.Name, Redo: attach, Undo: detach})
	return nil
}

// AddShape creates a new [Shape] of the given kind under the
// given parent group, as an undoable operation. An empty name
// gets an automatic kind-based one.
func (dc *Document) AddShape(parent *Group, kind ShapeKinds, name string) (*Shape, error) {
	sh := New[*Shape]()
	sh.Kind = kind
	if name != "" {
		sh.SetName(name)
	}
	if err := dc.AddEntity(sh, parent); err != nil {
		return nil, err
	}
	return sh, nil
}

// AddGroup creates a new [Group] under the given parent group, as
// an undoable operation. An empty name gets an automatic
// kind-based one.
func (dc *Document) AddGroup(parent *Group, name string) (*Group, error) {
	gp := New[*Group]()
	if name != "" {
		gp.SetName(name)
	}
	if err := dc.AddEntity(gp, parent); err != nil {
		return nil, err
	}
	return gp, nil
}

// Remove removes the given entity and its subtree from the
// document as an undoable operation. The handles become invalid;
// the [events.ElementRemoved] event carries the stable ID.
func (dc *Document) Remove(ent Entity) error {
	if err := dc.validTarget(ent); err != nil {
		return err
	}
	eb := ent.AsEntity()
	if Entity(dc.Root) == eb.This {
		return ErrRootEntity
	}
	parent := eb.Parent
	idx := eb.IndexInParent()
	done := dc.ensureOp("Remove " + eb.Name)
	defer done()
	detach := func() { dc.detachEntity(ent) }
	attach := func() { dc.attachEntity(ent, parent, idx) }
	detach()
	dc.Undos.Save(undo.Change{Label: "remove " + eb.Name, Redo: detach, Undo: attach})
	return nil
}

// Reparent moves the given entity to the end of the given new
// parent group's children, as an undoable operation. It emits
// [events.ElementChanged] with the "Parent" field. Moving an
// entity into its own subtree is an error.
func (dc *Document) Reparent(ent Entity, parent *Group) error {
	if err := dc.validTarget(ent); err != nil {
		return err
	}
	if err := dc.validTarget(parent); err != nil {
		return err
	}
	eb := ent.AsEntity()
	if Entity(dc.Root) == eb.This {
		return ErrRootEntity
	}
	cycle := !parent.WalkUp(func(e Entity) bool {
		return e != eb.This // Break when we find ent above parent
	})
	if cycle {
		return ErrInvalidEntity
	}
	oldParent := eb.Parent
	oldIdx := eb.IndexInParent()
	if oldParent == Entity(parent) {
		return nil
	}
	done := dc.ensureOp("Move " + eb.Name)
	defer done()
	move := func(p Entity, idx int) {
		pb := eb.Parent.AsEntity()
		ci := eb.IndexInParent()
		if ci >= 0 {
			pb.Children = slices.Delete(pb.Children, ci, ci+1)
		}
		tb := p.AsEntity()
		if idx < 0 || idx > len(tb.Children) {
			idx = len(tb.Children)
		}
		tb.Children = slices.Insert(tb.Children, idx, ent)
		eb.Parent = p
		dc.emitTree(events.ElementChanged, ent, eb.id, eb.Path(), "Parent")
	}
	newIdx := len(parent.Children)
	move(parent, newIdx)
	dc.Undos.Save(undo.Change{
		Label: "move " + eb.Name,
		Redo:  func() { move(parent, newIdx) },
		Undo:  func() { move(oldParent, oldIdx) },
	})
	return nil
}

// Duplicate clones the given entity's subtree and adds the clone
// after it under the same parent, as an undoable operation. The
// clone gets fresh IDs.
func (dc *Document) Duplicate(ent Entity) (Entity, error) {
	if err := dc.validTarget(ent); err != nil {
		return nil, err
	}
	eb := ent.AsEntity()
	if Entity(dc.Root) == eb.This {
		return nil, ErrRootEntity
	}
	parent, ok := eb.Parent.(*Group)
	if !ok {
		return nil, ErrInvalidEntity
	}
	clone := eb.Clone()
	done := dc.ensureOp("Duplicate " + eb.Name)
	defer done()
	idx := eb.IndexInParent() + 1
	attach := func() { dc.attachEntity(clone, parent, idx) }
	detach := func() { dc.detachEntity(clone) }
	attach()
	dc.Undos.Save(undo.Change{Label: "duplicate " + eb.Name, Redo: attach, Undo: detach})
	return clone, nil
}

// Field setters:

// SetName renames the given entity as an undoable operation,
// emitting [events.ElementChanged] with the "Name" field.
func (dc *Document) SetName(ent Entity, name string) error {
	if err := dc.validTarget(ent); err != nil {
		return err
	}
	eb := ent.AsEntity()
	old := eb.Name
	if old == name {
		return nil
	}
	done := dc.ensureOp("Rename " + old)
	defer done()
	set := func(v string) {
		eb.Name = v
		dc.emitTree(events.ElementChanged, ent, eb.id, eb.Path(), "Name")
	}
	set(name)
	dc.Undos.Save(undo.Change{Label: "rename", Redo: func() { set(name) }, Undo: func() { set(old) }})
	return nil
}

// SetPos moves the given entity to the given position as an
// undoable operation, emitting [events.ElementChanged] with the
// "Pos" field.
func (dc *Document) SetPos(ent Entity, pos math32.Vector3) error {
	if err := dc.validTarget(ent); err != nil {
		return err
	}
	eb := ent.AsEntity()
	old := eb.Pos
	if old == pos {
		return nil
	}
	done := dc.ensureOp("Move " + eb.Name)
	defer done()
	set := func(v math32.Vector3) {
		eb.Pos = v
		dc.emitTree(events.ElementChanged, ent, eb.id, eb.Path(), "Pos")
	}
	set(pos)
	dc.Undos.Save(undo.Change{Label: "set pos", Redo: func() { set(pos) }, Undo: func() { set(old) }})
	return nil
}

// SetScale sets the given group's scale as an undoable operation,
// emitting [events.ElementChanged] with the "Scale" field.
func (dc *Document) SetScale(gp *Group, scale math32.Vector3) error {
	if err := dc.validTarget(gp); err != nil {
		return err
	}
	old := gp.Scale
	if old == scale {
		return nil
	}
	done := dc.ensureOp("Scale " + gp.Name)
	defer done()
	set := func(v math32.Vector3) {
		gp.Scale = v
		dc.emitTree(events.ElementChanged, gp, gp.id, gp.Path(), "Scale")
	}
	set(scale)
	dc.Undos.Save(undo.Change{Label: "set scale", Redo: func() { set(scale) }, Undo: func() { set(old) }})
	return nil
}

// SetSize sets the given shape's extents as an undoable
// operation, emitting [events.ElementChanged] with the "Size"
// field.
func (dc *Document) SetSize(sh *Shape, size math32.Vector3) error {
	if err := dc.validTarget(sh); err != nil {
		return err
	}
	old := sh.Size
	if old == size {
		return nil
	}
	done := dc.ensureOp("Resize " + sh.Name)
	defer done()
	set := func(v math32.Vector3) {
		sh.Size = v
		dc.emitTree(events.ElementChanged, sh, sh.id, sh.Path(), "Size")
	}
	set(size)
	dc.Undos.Save(undo.Change{Label: "set size", Redo: func() { set(size) }, Undo: func() { set(old) }})
	return nil
}

// SetShapeMaterial assigns the named material to the given shape
// as an undoable operation, emitting [events.ElementChanged] with
// the "Material" field. The material must exist in the document
// library; the empty name assigns the default material.
func (dc *Document) SetShapeMaterial(sh *Shape, material string) error {
	if err := dc.validTarget(sh); err != nil {
		return err
	}
	if material != "" && !dc.Materials.HasKey(material) {
		return ErrUnknownMaterial
	}
	old := sh.Material
	if old == material {
		return nil
	}
	done := dc.ensureOp("Material " + sh.Name)
	defer done()
	set := func(v string) {
		sh.Material = v
		dc.emitTree(events.ElementChanged, sh, sh.id, sh.Path(), "Material")
	}
	set(material)
	dc.Undos.Save(undo.Change{Label: "set material", Redo: func() { set(material) }, Undo: func() { set(old) }})
	return nil
}

// SetProperty sets the given key-value property on the given
// entity as an undoable operation, emitting
// [events.ElementChanged] with the "Properties" field. Undo
// restores the previous value, or removes the key if there was
// none. Values are not compared, so setting an unchanged value
// still records a change.
func (dc *Document) SetProperty(ent Entity, key string, value any) error {
	if err := dc.validTarget(ent); err != nil {
		return err
	}
	eb := ent.AsEntity()
	old, had := eb.Properties[key]
	done := dc.ensureOp("Set property " + key)
	defer done()
	changed := func() { dc.emitTree(events.ElementChanged, ent, eb.id, eb.Path(), "Properties") }
	set := func() {
		eb.SetProperty(key, value)
		changed()
	}
	unset := func() {
		if had {
			eb.SetProperty(key, old)
		} else {
			eb.DeleteProperty(key)
		}
		changed()
	}
	set()
	dc.Undos.Save(undo.Change{Label: "set property " + key, Redo: set, Undo: unset})
	return nil
}

// Materials:

// Material returns the material with the given name, or nil.
func (dc *Document) Material(name string) *Material {
	return dc.Materials.ValueByKey(name)
}

// AddMaterial adds the given material to the document library as
// an undoable operation. The name must be non-empty and unique.
func (dc *Document) AddMaterial(mt *Material) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	if mt == nil || mt.Name == "" {
		return errors.New("model: material must have a name")
	}
	if dc.Materials.HasKey(mt.Name) {
		return errors.Newf("model: material %q already exists", mt.Name)
	}
	done := dc.ensureOp("Add material " + mt.Name)
	defer done()
	add := func() { dc.Materials.Add(mt.Name, mt) }
	add()
	dc.Undos.Save(undo.Change{
		Label: "add material " + mt.Name,
		Redo:  add,
		Undo:  func() { dc.Materials.DeleteKey(mt.Name) },
	})
	return nil
}

// RemoveMaterial removes the named material from the document
// library as an undoable operation. Shapes referring to it keep
// the dangling name and render with the default material.
func (dc *Document) RemoveMaterial(name string) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	mt, ok := dc.Materials.ValueByKeyTry(name)
	if !ok {
		return ErrUnknownMaterial
	}
	idx := dc.Materials.IndexByKey(name)
	done := dc.ensureOp("Remove material " + name)
	defer done()
	remove := func() { dc.Materials.DeleteKey(name) }
	remove()
	dc.Undos.Save(undo.Change{
		Label: "remove material " + name,
		Redo:  remove,
		Undo: func() {
			if idx > dc.Materials.Len() {
				idx = dc.Materials.Len()
			}
			dc.Materials.InsertAtIndex(idx, name, mt)
		},
	})
	return nil
}

// Queries:

// BBox returns the bounding box of the whole document, empty for
// a document with no geometry.
func (dc *Document) BBox() math32.Box3 {
	if !dc.Valid() {
		return math32.B3Empty()
	}
	return dc.Root.BBox()
}

// EntityByID returns the entity with the given stable ID, or nil
// if it is not in the document tree.
func (dc *Document) EntityByID(id uint64) Entity {
	if !dc.Valid() {
		return nil
	}
	var found Entity
	dc.Root.WalkDown(func(e Entity) bool {
		if e.AsEntity().id == id {
			found = e
			return Break
		}
		return Continue
	})
	return found
}

// Close closes the document: it emits [events.DocumentClosing],
// destroys the entity tree, and clears the listeners and undo
// stack. The document and all of its entities are invalid
// afterward.
func (dc *Document) Close() {
	if !dc.Valid() {
		return
	}
	dc.emitDoc(events.DocumentClosing, "")
	dc.closed = true
	dc.Root.Destroy()
	dc.Listeners = nil
	dc.Undos.Reset()
}
