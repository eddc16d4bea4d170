// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages. It is on by
// default. Set it to false for output destinations that cannot
// render ANSI colors, such as plain log files.
var UseColor = true

// InitColor sets up the terminal for color output on platforms
// that need it (Windows virtual terminal processing). It should
// be called by interactive apps before any colored output.
func InitColor() {
	UseColor = true
	errors.Ignore1(termenv.EnableVirtualTerminalProcessing(termenv.DefaultOutput()))
}

// LevelColor applies the standard color for the given level to
// the given string, returning it unchanged if [UseColor] is off.
func LevelColor(level slog.Level, s string) string {
	if !UseColor {
		return s
	}
	switch {
	case level >= slog.LevelError:
		return ErrorColor(s)
	case level >= slog.LevelWarn:
		return WarnColor(s)
	case level >= slog.LevelInfo:
		return InfoColor(s)
	default:
		return DebugColor(s)
	}
}

// DebugColor returns the string formatted in the color used for
// debug messages (faint gray).
func DebugColor(s string) string {
	if !UseColor {
		return s
	}
	return termenv.String(s).Foreground(termenv.ANSIBrightBlack).String()
}

// InfoColor returns the string formatted in the color used for
// info messages, which is no color at all.
func InfoColor(s string) string {
	return s
}

// WarnColor returns the string formatted in the color used for
// warning messages (yellow).
func WarnColor(s string) string {
	if !UseColor {
		return s
	}
	return termenv.String(s).Foreground(termenv.ANSIYellow).String()
}

// ErrorColor returns the string formatted in the color used for
// error messages (red).
func ErrorColor(s string) string {
	if !UseColor {
		return s
	}
	return termenv.String(s).Foreground(termenv.ANSIRed).String()
}

// SuccessColor returns the string formatted in the color used for
// success messages (green).
func SuccessColor(s string) string {
	if !UseColor {
		return s
	}
	return termenv.String(s).Foreground(termenv.ANSIGreen).String()
}

// CmdColor returns the string formatted in the color used for
// commands and other names the user may want to copy (cyan).
func CmdColor(s string) string {
	if !UseColor {
		return s
	}
	return termenv.String(s).Foreground(termenv.ANSICyan).String()
}
