// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSettings struct {
	LogLevel  string
	TraceLoop bool
}

func TestRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "settings.toml")
	src := testSettings{LogLevel: "warn", TraceLoop: true}
	require.NoError(t, Save(&src, fp))

	var dst testSettings
	require.NoError(t, Open(&dst, fp))
	assert.Equal(t, src, dst)
}

func TestOpenFilesLayering(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	over := filepath.Join(dir, "over.toml")
	require.NoError(t, os.WriteFile(base, []byte("LogLevel = \"info\"\nTraceLoop = true\n"), 0666))
	require.NoError(t, os.WriteFile(over, []byte("LogLevel = \"debug\"\n"), 0666))

	var s testSettings
	require.NoError(t, OpenFiles(&s, []string{base, over}))
	assert.Equal(t, "debug", s.LogLevel) // later file wins
	assert.True(t, s.TraceLoop)          // untouched keys survive
}
