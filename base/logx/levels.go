// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides leveled logging and printing on top of
// [log/slog], with colored console output via termenv. The
// [UserLevel] variable controls how much output the user sees,
// both through the slog [Handler] and through the level-gated
// print functions such as [PrintlnWarn].
package logx

import "log/slog"

// UserLevel is the verbosity level that the user has selected,
// typically from a command line flag or settings file. Anything
// at or above this level is printed. It defaults to
// [slog.LevelInfo] in normal builds, [slog.LevelDebug] in debug
// builds, and [slog.LevelWarn] in release builds.
var UserLevel = defaultUserLevel

// LevelFromString returns the [slog.Level] for the given string
// name (case insensitive: debug, info, warn, error), or the
// current [UserLevel] and false if the name is not recognized.
func LevelFromString(s string) (slog.Level, bool) {
	switch s {
	case "debug", "Debug", "DEBUG":
		return slog.LevelDebug, true
	case "info", "Info", "INFO":
		return slog.LevelInfo, true
	case "warn", "Warn", "WARN":
		return slog.LevelWarn, true
	case "error", "Error", "ERROR":
		return slog.LevelError, true
	}
	return UserLevel, false
}
