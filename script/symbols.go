// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"reflect"

	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/host"
	"github.com/cadkit/cadkit/math32"
	"github.com/cadkit/cadkit/model"
	"github.com/cadkit/cadkit/safe"
	"github.com/cadkit/cadkit/undo"
)

// Symbols are the cadkit symbols exported to interpreted scripts,
// maintained by hand for the script-facing API surface.
var Symbols = map[string]map[string]reflect.Value{}

func init() {
	Symbols["github.com/cadkit/cadkit/model/model"] = map[string]reflect.Value{
		"NewDocument":        reflect.ValueOf(model.NewDocument),
		"OpenDocumentJSON":   reflect.ValueOf(model.OpenDocumentJSON),
		"ReadDocumentJSON":   reflect.ValueOf(model.ReadDocumentJSON),
		"NewOfKind":          reflect.ValueOf(model.NewOfKind),
		"Kinds":              reflect.ValueOf(model.Kinds),
		"Box":                reflect.ValueOf(model.Box),
		"Sphere":             reflect.ValueOf(model.Sphere),
		"Cylinder":           reflect.ValueOf(model.Cylinder),
		"Continue":           reflect.ValueOf(model.Continue),
		"Break":              reflect.ValueOf(model.Break),
		"ErrInvalidDocument": reflect.ValueOf(&model.ErrInvalidDocument).Elem(),
		"ErrInvalidEntity":   reflect.ValueOf(&model.ErrInvalidEntity).Elem(),
		"ErrRootEntity":      reflect.ValueOf(&model.ErrRootEntity).Elem(),
		"ErrNoOperation":     reflect.ValueOf(&model.ErrNoOperation).Elem(),
		"ErrUnknownMaterial": reflect.ValueOf(&model.ErrUnknownMaterial).Elem(),
		"Document":           reflect.ValueOf((*model.Document)(nil)),
		"Entity":             reflect.ValueOf((*model.Entity)(nil)),
		"EntityBase":         reflect.ValueOf((*model.EntityBase)(nil)),
		"Group":              reflect.ValueOf((*model.Group)(nil)),
		"Shape":              reflect.ValueOf((*model.Shape)(nil)),
		"ShapeKinds":         reflect.ValueOf((*model.ShapeKinds)(nil)),
		"Material":           reflect.ValueOf((*model.Material)(nil)),
		"RGBA":               reflect.ValueOf((*model.RGBA)(nil)),
		"Scheduler":          reflect.ValueOf((*model.Scheduler)(nil)),
		"TreeEvent":          reflect.ValueOf((*model.TreeEvent)(nil)),
		"OpEvent":            reflect.ValueOf((*model.OpEvent)(nil)),
		"DocEvent":           reflect.ValueOf((*model.DocEvent)(nil)),
	}
	Symbols["github.com/cadkit/cadkit/safe/safe"] = map[string]reflect.Value{
		"Defer":            reflect.ValueOf(safe.Defer),
		"NewObserver":      reflect.ValueOf(safe.NewObserver),
		"Observer":         reflect.ValueOf((*safe.Observer)(nil)),
		"ErrInvalidTarget": reflect.ValueOf(&safe.ErrInvalidTarget).Elem(),
		"ErrNilWork":       reflect.ValueOf(&safe.ErrNilWork).Elem(),
		"Trace":            reflect.ValueOf(&safe.Trace).Elem(),
	}
	Symbols["github.com/cadkit/cadkit/events/events"] = map[string]reflect.Value{
		"ElementAdded":    reflect.ValueOf(events.ElementAdded),
		"ElementRemoved":  reflect.ValueOf(events.ElementRemoved),
		"ElementChanged":  reflect.ValueOf(events.ElementChanged),
		"OperationStart":  reflect.ValueOf(events.OperationStart),
		"OperationCommit": reflect.ValueOf(events.OperationCommit),
		"OperationAbort":  reflect.ValueOf(events.OperationAbort),
		"Undone":          reflect.ValueOf(events.Undone),
		"Redone":          reflect.ValueOf(events.Redone),
		"DocumentSaved":   reflect.ValueOf(events.DocumentSaved),
		"DocumentClosing": reflect.ValueOf(events.DocumentClosing),
		"Custom":          reflect.ValueOf(events.Custom),
		"NewBase":         reflect.ValueOf(events.NewBase),
		"NewCustom":       reflect.ValueOf(events.NewCustom),
		"Event":           reflect.ValueOf((*events.Event)(nil)),
		"Base":            reflect.ValueOf((*events.Base)(nil)),
		"Types":           reflect.ValueOf((*events.Types)(nil)),
	}
	Symbols["github.com/cadkit/cadkit/math32/math32"] = map[string]reflect.Value{
		"Vec3":          reflect.ValueOf(math32.Vec3),
		"Vector3Scalar": reflect.ValueOf(math32.Vector3Scalar),
		"B3":            reflect.ValueOf(math32.B3),
		"B3Empty":       reflect.ValueOf(math32.B3Empty),
		"Vector3":       reflect.ValueOf((*math32.Vector3)(nil)),
		"Box3":          reflect.ValueOf((*math32.Box3)(nil)),
	}
	Symbols["github.com/cadkit/cadkit/host/host"] = map[string]reflect.Value{
		"NewApp":   reflect.ValueOf(host.NewApp),
		"NewLoop":  reflect.ValueOf(host.NewLoop),
		"App":      reflect.ValueOf((*host.App)(nil)),
		"Loop":     reflect.ValueOf((*host.Loop)(nil)),
		"Timer":    reflect.ValueOf((*host.Timer)(nil)),
		"Settings": reflect.ValueOf((*host.Settings)(nil)),
	}
	Symbols["github.com/cadkit/cadkit/undo/undo"] = map[string]reflect.Value{
		"DefaultMaxRecords": reflect.ValueOf(&undo.DefaultMaxRecords).Elem(),
		"ErrInOperation":    reflect.ValueOf(&undo.ErrInOperation).Elem(),
		"ErrNothingToUndo":  reflect.ValueOf(&undo.ErrNothingToUndo).Elem(),
		"ErrNothingToRedo":  reflect.ValueOf(&undo.ErrNothingToRedo).Elem(),
		"Change":            reflect.ValueOf((*undo.Change)(nil)),
		"Op":                reflect.ValueOf((*undo.Op)(nil)),
		"Options":           reflect.ValueOf((*undo.Options)(nil)),
		"Stack":             reflect.ValueOf((*undo.Stack)(nil)),
	}
}
