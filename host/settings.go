// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/base/fsx"
	"github.com/cadkit/cadkit/base/iox/jsonx"
	"github.com/cadkit/cadkit/base/iox/tomlx"
	"github.com/cadkit/cadkit/base/iox/yamlx"
	"github.com/cadkit/cadkit/base/logx"
	"github.com/cadkit/cadkit/safe"
	"github.com/cadkit/cadkit/undo"
)

// Settings are the host settings, loaded from settings files at
// app startup and applied with [Settings.Apply].
type Settings struct {

	// LogLevel is the logging verbosity: debug, info, warn, or error.
	LogLevel string

	// MaxUndoRecords limits the undo records kept per document,
	// with the oldest dropped when exceeded. -1 means no limit.
	MaxUndoRecords int

	// TraceLoop logs event loop steps.
	TraceLoop bool

	// TraceTimers logs timer starts and fires.
	TraceTimers bool

	// TraceDefer logs the scheduling and running of deferred
	// observer work.
	TraceDefer bool
}

// Defaults sets the default settings values.
func (st *Settings) Defaults() {
	st.LogLevel = "info"
	st.MaxUndoRecords = undo.DefaultMaxRecords
}

// Apply maps the settings onto the package variables they control.
func (st *Settings) Apply() {
	if lev, ok := logx.LevelFromString(st.LogLevel); ok {
		logx.UserLevel = lev
	}
	TraceLoop = st.TraceLoop
	TraceTimers = st.TraceTimers
	safe.Trace = st.TraceDefer
}

// SettingsSearchFiles are the settings file names searched for on
// the standard paths; the extension selects the format.
var SettingsSearchFiles = []string{"settings.toml", "settings.yaml", "settings.json"}

// StandardPaths returns the directories searched for settings
// files for the given app name: the per-user config directory and
// the current directory. Later files overwrite earlier ones, so
// project-local settings win over per-user ones.
func StandardPaths(appName string) []string {
	var paths []string
	if cdir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(cdir, appName))
	}
	return append(paths, ".")
}

// OpenSettings updates the given settings from every settings file
// found on the standard paths for the given app name, in search
// order. Missing files are not an error; failures to read found
// files are returned joined, with the readable files still applied.
func OpenSettings(st *Settings, appName string) error {
	var errs []error
	for _, fname := range SettingsSearchFiles {
		for _, fpath := range fsx.FindFilesOnPaths(StandardPaths(appName), fname) {
			if err := OpenSettingsFile(st, fpath); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// OpenSettingsFile updates the given settings from the given file,
// decoded according to its extension.
func OpenSettingsFile(st *Settings, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Open(st, filename)
	case ".yaml", ".yml":
		return yamlx.Open(st, filename)
	case ".json":
		return jsonx.Open(st, filename)
	}
	return errors.Newf("host: unrecognized settings file format: %q", filename)
}

// SaveSettings writes the given settings to the given file,
// encoded according to its extension.
func SaveSettings(st *Settings, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Save(st, filename)
	case ".yaml", ".yml":
		return yamlx.Save(st, filename)
	case ".json":
		return jsonx.Save(st, filename)
	}
	return errors.Newf("host: unrecognized settings file format: %q", filename)
}
