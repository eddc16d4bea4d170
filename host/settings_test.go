// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadkit/cadkit/base/logx"
	. "github.com/cadkit/cadkit/host"
	"github.com/cadkit/cadkit/safe"
	"github.com/cadkit/cadkit/undo"
)

func TestSettingsDefaults(t *testing.T) {
	st := &Settings{}
	st.Defaults()
	assert.Equal(t, "info", st.LogLevel)
	assert.Equal(t, undo.DefaultMaxRecords, st.MaxUndoRecords)
}

func TestSettingsApply(t *testing.T) {
	oldLevel := logx.UserLevel
	defer func() {
		logx.UserLevel = oldLevel
		TraceLoop = false
		TraceTimers = false
		safe.Trace = false
	}()
	st := &Settings{LogLevel: "debug", TraceLoop: true, TraceTimers: true, TraceDefer: true}
	st.Apply()
	assert.Equal(t, slog.LevelDebug, logx.UserLevel)
	assert.True(t, TraceLoop)
	assert.True(t, TraceTimers)
	assert.True(t, safe.Trace)
}

func TestSettingsFileFormats(t *testing.T) {
	dir := t.TempDir()
	st := &Settings{}
	st.Defaults()
	st.LogLevel = "warn"
	st.MaxUndoRecords = 42
	st.TraceDefer = true
	for _, fname := range []string{"settings.toml", "settings.yaml", "settings.json"} {
		fpath := filepath.Join(dir, fname)
		require.NoError(t, SaveSettings(st, fpath))
		got := &Settings{}
		got.Defaults()
		require.NoError(t, OpenSettingsFile(got, fpath))
		assert.Equal(t, st, got, fname)
	}
	assert.Error(t, OpenSettingsFile(st, filepath.Join(dir, "settings.ini")))
	assert.Error(t, SaveSettings(st, filepath.Join(dir, "settings.ini")))
}

func TestOpenSettingsSearch(t *testing.T) {
	t.Chdir(t.TempDir())
	st := &Settings{}
	st.Defaults()
	st.MaxUndoRecords = 7
	require.NoError(t, SaveSettings(st, "settings.toml"))

	got := &Settings{}
	got.Defaults()
	require.NoError(t, OpenSettings(got, "cadkit-test-none"))
	assert.Equal(t, 7, got.MaxUndoRecords)
}

func TestOpenSettingsMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	got := &Settings{}
	got.Defaults()
	require.NoError(t, OpenSettings(got, "cadkit-test-none"))
	assert.Equal(t, "info", got.LogLevel)
}
