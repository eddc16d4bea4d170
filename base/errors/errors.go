// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a small set of error handling helpers
// on top of the standard library errors package, which it
// re-exports so that only one errors import is needed.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It is the standard library [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Newf returns a new error with the given format and args,
// equivalent to [fmt.Errorf].
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// It is the standard library [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is reports whether any error in err's tree matches target.
// It is the standard library [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// It is the standard library [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
// It is the standard library [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
