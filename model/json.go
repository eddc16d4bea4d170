// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/base/iox/jsonx"
	"github.com/cadkit/cadkit/base/metadata"
	"github.com/cadkit/cadkit/base/reflectx"
	"github.com/cadkit/cadkit/events"
)

// MarshalJSON marshals the entity by injecting the [Entity.KindName]
// as a kind field and the [EntityBase.NumChildren] as a numChildren
// field at the start of the standard JSON encoding output.
func (n *EntityBase) MarshalJSON() ([]byte, error) {
	// the non-pointer value does not implement MarshalJSON, so it
	// will not result in infinite recursion
	b, err := json.Marshal(reflectx.Underlying(reflect.ValueOf(n.This)).Interface())
	if err != nil {
		return b, err
	}
	data := `"kind":"` + n.This.KindName() + `","numChildren":` + strconv.Itoa(n.NumChildren()) + ","
	b = slices.Insert(b, 1, []byte(data)...)
	return b, nil
}

// unmarshalTypeCache is a cache of [reflect.Type] values used
// for unmarshalling in [EntityBase.UnmarshalJSON], keyed by kind
// name. Building the method-free struct type is relatively slow,
// and every entity of a kind shares one.
var unmarshalTypeCache = map[string]reflect.Type{}

// UnmarshalJSON unmarshals the entity by extracting the kind and
// numChildren fields added by [EntityBase.MarshalJSON] and then
// updating the entity to the correct kind and creating the correct
// number of children. Note that this method can not update the kind
// of the entity if it has no parent; to load a root entity from JSON
// and have it be of the correct kind, see the [UnmarshalRootJSON]
// function. If the kind of the entity is changed by this function,
// the entity pointer will no longer be valid, and the entity must
// be fetched again through the children of its parent.
func (n *EntityBase) UnmarshalJSON(b []byte) error {
	kindStart := bytes.Index(b, []byte(`":`)) + 3
	kindEnd := bytes.Index(b, []byte(`",`))
	kind := string(b[kindStart:kindEnd])
	// we may end up with an extraneous quote / space at the start
	kind = strings.TrimPrefix(strings.TrimSpace(kind), `"`)

	// if our kind does not match, we must replace our This to make it match
	if n.This.KindName() != kind {
		parent := n.Parent
		index := n.IndexInParent()
		if index >= 0 {
			nw, err := NewOfKind(kind)
			if err != nil {
				return fmt.Errorf("model.EntityBase.UnmarshalJSON: %w", err)
			}
			n.Delete()
			parent.AsEntity().InsertChild(nw, index)
			n = nw.AsEntity() // our EntityBase pointer is now different
		}
	}

	remainder := b[kindEnd+2:]
	numStart := bytes.Index(remainder, []byte(`":`)) + 2
	numEnd := bytes.Index(remainder, []byte(`,`))
	numString := string(remainder[numStart:numEnd])
	// we may end up with extraneous space at the start
	numString = strings.TrimSpace(numString)
	numChildren, err := strconv.Atoi(numString)
	if err != nil {
		return err
	}

	// We delete any existing children and then make placeholder
	// EntityBase children that will be replaced with children of the
	// correct kind during their UnmarshalJSON.
	n.DeleteChildren()
	for range numChildren {
		New[*EntityBase](n.This)
	}

	uv := reflectx.UnderlyingPointer(reflect.ValueOf(n.This))
	rtyp := unmarshalTypeCache[kind]
	if rtyp == nil {
		// We must create a new type that has the exact same fields as
		// the original type so that we can unmarshal into it without
		// having infinite recursion on the UnmarshalJSON method. This
		// works because [reflect.StructOf] does not promote methods on
		// embedded fields, meaning that the UnmarshalJSON method on the
		// EntityBase is not carried over and thus is not called.
		uvt := uv.Type().Elem()
		fields := make([]reflect.StructField, uvt.NumField())
		for i := range fields {
			fields[i] = uvt.Field(i)
		}
		nt := reflect.StructOf(fields)
		rtyp = reflect.PointerTo(nt)
		unmarshalTypeCache[kind] = rtyp
	}
	// We can directly convert because our new struct type has the
	// exact same fields.
	uvi := uv.Convert(rtyp).Interface()
	return json.Unmarshal(b, uvi)
}

// UnmarshalRootJSON loads the given JSON to produce a new root
// entity of the correct kind with all fields and children loaded.
func UnmarshalRootJSON(b []byte) (Entity, error) {
	// we must make a temporary parent so that the kind of the entity
	// can be updated
	parent := New[*EntityBase]()
	// this EntityBase is just temporary and will be fixed by
	// [EntityBase.UnmarshalJSON]
	nb := New[*EntityBase](parent)
	err := nb.UnmarshalJSON(b)
	if err != nil {
		return nil, err
	}
	// the entity must be fetched from the parent's children since the
	// pointer may have changed
	n := parent.Child(0)
	// we must safely remove the entity from its temporary parent
	n.AsEntity().Parent = nil
	parent.Children = nil
	parent.Destroy()
	return n, nil
}

// Saving and opening root entities:

// JSONKindPrefix is the first thing output in an entity JSON file,
// specifying the kind of the root entity so that a file can be
// loaded de-novo and recreate the proper root kind. It appears all
// on one { } bracketed line at the start of the file and also
// identifies the file as an entity JSON file.
var JSONKindPrefix = []byte(`{"cadkit.RootKind": `)

// JSONKindSuffix is just the } and \n at the end of the prefix line.
var JSONKindSuffix = []byte("}\n")

// RootKindJSON returns the kind prefix line for the given root
// entity, written first by [WriteNewJSON] so that [ReadNewJSON]
// can create the proper root kind.
func RootKindJSON(ent Entity) []byte {
	return []byte(string(JSONKindPrefix) + fmt.Sprintf("%q}\n", ent.KindName()))
}

// WriteNewJSON writes JSON-encoded bytes for the given entity tree
// to the given writer, including kind information at the start of
// the file so that [ReadNewJSON] can create an entity of the
// proper kind.
func WriteNewJSON(ent Entity, w io.Writer) error {
	if _, err := w.Write(RootKindJSON(ent)); err != nil {
		return err
	}
	return jsonx.WriteIndent(ent, w)
}

// SaveNewJSON saves JSON-encoded bytes for the given entity tree
// to the given file, including kind information at the start of
// the file so that [OpenNewJSON] can create an entity of the
// proper kind.
func SaveNewJSON(ent Entity, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := WriteNewJSON(ent, bw); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadRootKindJSON reads the kind of the root entity as encoded by
// [RootKindJSON], returning the kind name, the remaining bytes to
// be decoded using a standard unmarshal, and any error.
func ReadRootKindJSON(b []byte) (string, []byte, error) {
	if !bytes.HasPrefix(b, JSONKindPrefix) {
		return "", b, errors.New("model.ReadRootKindJSON: kind prefix not found at start of file")
	}
	stidx := len(JSONKindPrefix) + 1
	eidx := bytes.Index(b, JSONKindSuffix)
	bodyidx := eidx + len(JSONKindSuffix)
	kind := string(bytes.Trim(bytes.TrimSpace(b[stidx:eidx]), `"`))
	return kind, b[bodyidx:], nil
}

// ReadNewJSON reads a new entity tree from JSON-encoded bytes on
// the given reader, using kind information at the start to create
// a root entity of the proper kind.
func ReadNewJSON(r io.Reader) (Entity, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Log(err)
	}
	kind, rb, err := ReadRootKindJSON(b)
	if err != nil {
		return nil, errors.Log(err)
	}
	root, err := NewOfKind(kind)
	if err != nil {
		return nil, errors.Log(err)
	}
	InitEntity(root)
	err = json.Unmarshal(rb, root)
	UnmarshalPost(root)
	return root, errors.Log(err)
}

// OpenNewJSON opens a new entity tree from the given JSON file,
// using kind information at the start of the file to create a root
// entity of the proper kind.
func OpenNewJSON(filename string) (Entity, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	defer fp.Close()
	return ReadNewJSON(bufio.NewReader(fp))
}

// ParentAllChildren walks the tree down from the given entity and
// sets the parent pointers of all children, which is needed after
// an unmarshal.
func ParentAllChildren(ent Entity) {
	for _, child := range ent.AsEntity().Children {
		if child != nil {
			child.AsEntity().Parent = ent
			ParentAllChildren(child)
		}
	}
}

// UnmarshalPost must be called after any unmarshal of an entity
// tree that does not go through [EntityBase.UnmarshalJSON] on a
// parented entity; it calls [ParentAllChildren].
func UnmarshalPost(ent Entity) {
	ParentAllChildren(ent)
}

// Document files:

// documentJSON is the on-disk form of a [Document].
type documentJSON struct {
	Meta      metadata.Data   `json:",omitempty"`
	Materials []*Material     `json:",omitempty"`
	Root      json.RawMessage `json:",omitempty"`
}

// WriteJSON writes the document (metadata, materials, and entity
// tree) as JSON to the given writer.
func (dc *Document) WriteJSON(w io.Writer) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	rb, err := json.Marshal(dc.Root)
	if err != nil {
		return err
	}
	dj := &documentJSON{Meta: dc.Meta, Materials: dc.Materials.Values(), Root: rb}
	return jsonx.WriteIndent(dj, w)
}

// SaveJSON saves the document as JSON to the given file, recording
// the filename in the document metadata and emitting
// [events.DocumentSaved] on success.
func (dc *Document) SaveJSON(filename string) error {
	if !dc.Valid() {
		return ErrInvalidDocument
	}
	fp, err := os.Create(filename)
	if err != nil {
		return errors.Log(err)
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := dc.WriteJSON(bw); err != nil {
		return errors.Log(err)
	}
	if err := bw.Flush(); err != nil {
		return errors.Log(err)
	}
	dc.Meta.SetFilename(filename)
	dc.emitDoc(events.DocumentSaved, filename)
	return nil
}

// ReadDocumentJSON reads a document from JSON-encoded bytes on the
// given reader, as written by [Document.WriteJSON]. The loaded
// entities get fresh IDs and an empty undo stack.
func ReadDocumentJSON(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Log(err)
	}
	dj := &documentJSON{}
	if err := json.Unmarshal(b, dj); err != nil {
		return nil, errors.Log(err)
	}
	dc := &Document{}
	if dj.Meta != nil {
		dc.Meta = dj.Meta
	}
	root := New[*Group]()
	if dj.Root != nil {
		if err := json.Unmarshal(dj.Root, root); err != nil {
			return nil, errors.Log(err)
		}
		UnmarshalPost(root)
	}
	dc.Root = root
	for _, mt := range dj.Materials {
		if mt != nil && mt.Name != "" {
			dc.Materials.Add(mt.Name, mt)
		}
	}
	dc.adopt(dc.Root)
	return dc, nil
}

// OpenDocumentJSON opens a document from the given JSON file, as
// written by [Document.SaveJSON], recording the filename in the
// document metadata.
func OpenDocumentJSON(filename string) (*Document, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	defer fp.Close()
	dc, err := ReadDocumentJSON(bufio.NewReader(fp))
	if err != nil {
		return nil, err
	}
	dc.Meta.SetFilename(filename)
	return dc, nil
}
