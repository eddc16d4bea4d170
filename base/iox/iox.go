// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iox provides boilerplate wrappers around io decoders
// and encoders, so that format packages (jsonx, tomlx, yamlx)
// only need to supply a [DecoderFunc] and an [EncoderFunc] and
// get the full set of Open / Read / Save / Write helpers.
package iox

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"
)

// Decoder is an interface for standard decoders such as
// [encoding/json.Decoder].
type Decoder interface {
	// Decode reads the next value from its input and stores it
	// in the value pointed to by v.
	Decode(v any) error
}

// DecoderFunc returns a new [Decoder] reading from the given reader.
type DecoderFunc func(r io.Reader) Decoder

// Open reads the given object from the given filename using the
// given [DecoderFunc].
func Open(v any, filename string, f DecoderFunc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// OpenFiles reads the given object from the given filenames in
// order, with later files overwriting values in earlier ones,
// using the given [DecoderFunc].
func OpenFiles(v any, filenames []string, f DecoderFunc) error {
	for _, file := range filenames {
		if err := Open(v, file, f); err != nil {
			return err
		}
	}
	return nil
}

// OpenFS reads the given object from the given filename in the
// given filesystem using the given [DecoderFunc].
func OpenFS(v any, fsys fs.FS, filename string, f DecoderFunc) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// Read reads the given object from the given reader using the
// given [DecoderFunc].
func Read(v any, reader io.Reader, f DecoderFunc) error {
	return f(reader).Decode(v)
}

// ReadBytes reads the given object from the given bytes using
// the given [DecoderFunc].
func ReadBytes(v any, data []byte, f DecoderFunc) error {
	return Read(v, bytes.NewReader(data), f)
}

// Encoder is an interface for standard encoders such as
// [encoding/json.Encoder].
type Encoder interface {
	// Encode writes the encoding of v to its output.
	Encode(v any) error
}

// EncoderFunc returns a new [Encoder] writing to the given writer.
type EncoderFunc func(w io.Writer) Encoder

// Save writes the given object to the given filename using the
// given [EncoderFunc].
func Save(v any, filename string, f EncoderFunc) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := Write(v, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the given object to the given writer using the
// given [EncoderFunc].
func Write(v any, writer io.Writer, f EncoderFunc) error {
	return f(writer).Encode(v)
}

// WriteBytes writes the given object to bytes using the given
// [EncoderFunc].
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(v, &b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
