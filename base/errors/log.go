// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log takes the given error and logs it if it is non-nil,
// adding the file and line number of the caller. It returns
// the error unchanged, making it convenient for functions
// that want to both log and return an error:
//
//	return errors.Log(err)
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 is a version of [Log] for functions that return a value
// and an error. It logs the error if it is non-nil and returns
// the value:
//
//	a := errors.Log1(strconv.Atoi(s))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil. It should only be
// used for errors that indicate a bug in the program, not for
// conditions that can legitimately occur at runtime.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 is a version of [Must] for functions that return a value
// and an error. It panics if the error is non-nil and returns
// the value otherwise.
func Must1[T any](v T, err error) T {
	Must(err)
	return v
}

// Ignore1 ignores the error return value of a function that
// returns a value and an error, returning just the value.
// It documents that the error is intentionally discarded.
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns the file and line number of the function
// two levels up from where CallerInfo is called, formatted as
// file:line, suitable for inclusion in log messages.
func CallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?:?"
	}
	return file + ":" + strconv.Itoa(line)
}
