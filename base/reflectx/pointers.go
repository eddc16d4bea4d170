// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides consistently named functions for
// navigating pointer and interface indirection in the reflect
// system.
package reflectx

import "reflect"

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// NonPointerValue returns a non-pointer version of the given value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// PointerValue returns a pointer to the given value if it is not
// already a pointer.
func PointerValue(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		return v
	}
	if v.CanAddr() {
		return v.Addr()
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	return pv
}

// OnePointerValue returns a value that is exactly one pointer away
// from a non-pointer value, copying an unaddressable value into a
// new pointer if necessary.
func OnePointerValue(v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Pointer {
		return PointerValue(v)
	}
	for v.Elem().Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// Underlying returns the actual underlying version of the given
// value, going through any pointers and interfaces.
func Underlying(v reflect.Value) reflect.Value {
	return UnderlyingPointer(v).Elem()
}

// UnderlyingPointer returns a pointer to the actual underlying
// version of the given value, going through any pointers and
// interfaces.
func UnderlyingPointer(v reflect.Value) reflect.Value {
	npv := NonPointerValue(v)
	if !npv.IsValid() {
		return v
	}
	if npv.IsZero() {
		return OnePointerValue(npv)
	}
	for npv.Kind() == reflect.Interface || npv.Kind() == reflect.Pointer {
		npv = npv.Elem()
	}
	return OnePointerValue(npv)
}
