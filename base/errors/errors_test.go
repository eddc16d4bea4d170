// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors_test

import (
	"strconv"
	"testing"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, errors.Log(nil))
	err := errors.New("test error")
	assert.Equal(t, err, errors.Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 42, errors.Log1(strconv.Atoi("42")))
	assert.Equal(t, 0, errors.Log1(strconv.Atoi("not a number")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() {
		errors.Must(nil)
	})
	assert.Panics(t, func() {
		errors.Must(errors.New("test error"))
	})
	assert.Equal(t, 3, errors.Must1(strconv.Atoi("3")))
}

func TestWrapping(t *testing.T) {
	base := errors.New("base")
	wrapped := errors.Newf("wrapped: %w", base)
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, base, errors.Unwrap(wrapped))
}
