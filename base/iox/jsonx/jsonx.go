// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx provides the [iox] helpers for JSON, including
// indented variants for files meant to be read by people or
// checked into version control.
package jsonx

import (
	"encoding/json"
	"io"
	"io/fs"

	"github.com/cadkit/cadkit/base/iox"
)

// Open reads the given object from the given JSON file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// OpenFiles reads the given object from the given JSON files in
// order, with later files overwriting values in earlier ones.
func OpenFiles(v any, filenames []string) error {
	return iox.OpenFiles(v, filenames, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// OpenFS reads the given object from the given JSON file in the
// given filesystem.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// Read reads the given object from the given reader as JSON.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// ReadBytes reads the given object from the given JSON bytes.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// Save writes the given object to the given filename as JSON.
func Save(v any, filename string) error {
	return iox.Save(v, filename, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

// SaveIndent writes the given object to the given filename as
// tab-indented JSON.
func SaveIndent(v any, filename string) error {
	return iox.Save(v, filename, indentEncoder)
}

// Write writes the given object to the given writer as JSON.
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

// WriteIndent writes the given object to the given writer as
// tab-indented JSON.
func WriteIndent(v any, writer io.Writer) error {
	return iox.Write(v, writer, indentEncoder)
}

// WriteBytes writes the given object to bytes as JSON.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

// WriteBytesIndent writes the given object to bytes as
// tab-indented JSON.
func WriteBytesIndent(v any) ([]byte, error) {
	return iox.WriteBytes(v, indentEncoder)
}

func indentEncoder(w io.Writer) iox.Encoder {
	e := json.NewEncoder(w)
	e.SetIndent("", "\t")
	return e
}
