// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides the [iox] helpers for YAML.
package yamlx

import (
	"io"
	"io/fs"

	"github.com/cadkit/cadkit/base/iox"
	"gopkg.in/yaml.v3"
)

// Open reads the given object from the given YAML file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, decoder)
}

// OpenFiles reads the given object from the given YAML files in
// order, with later files overwriting values in earlier ones.
func OpenFiles(v any, filenames []string) error {
	return iox.OpenFiles(v, filenames, decoder)
}

// OpenFS reads the given object from the given YAML file in the
// given filesystem.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, decoder)
}

// Read reads the given object from the given reader as YAML.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, decoder)
}

// ReadBytes reads the given object from the given YAML bytes.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, decoder)
}

// Save writes the given object to the given filename as YAML.
func Save(v any, filename string) error {
	return iox.Save(v, filename, encoder)
}

// Write writes the given object to the given writer as YAML.
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, encoder)
}

// WriteBytes writes the given object to bytes as YAML.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, encoder)
}

func decoder(r io.Reader) iox.Decoder {
	return yaml.NewDecoder(r)
}

func encoder(w io.Writer) iox.Encoder {
	return yaml.NewEncoder(w)
}
