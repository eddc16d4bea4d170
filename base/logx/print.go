// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"log/slog"
)

// PrintlnDebug is equivalent to [fmt.Println], but only prints if
// [UserLevel] is [slog.LevelDebug] or lower.
func PrintlnDebug(a ...any) {
	if UserLevel <= slog.LevelDebug {
		fmt.Println(a...)
	}
}

// PrintfDebug is equivalent to [fmt.Printf], but only prints if
// [UserLevel] is [slog.LevelDebug] or lower.
func PrintfDebug(format string, a ...any) {
	if UserLevel <= slog.LevelDebug {
		fmt.Printf(format, a...)
	}
}

// PrintlnInfo is equivalent to [fmt.Println], but only prints if
// [UserLevel] is [slog.LevelInfo] or lower.
func PrintlnInfo(a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Println(a...)
	}
}

// PrintfInfo is equivalent to [fmt.Printf], but only prints if
// [UserLevel] is [slog.LevelInfo] or lower.
func PrintfInfo(format string, a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Printf(format, a...)
	}
}

// PrintlnWarn is equivalent to [fmt.Println], but only prints if
// [UserLevel] is [slog.LevelWarn] or lower.
func PrintlnWarn(a ...any) {
	if UserLevel <= slog.LevelWarn {
		fmt.Println(a...)
	}
}

// PrintfWarn is equivalent to [fmt.Printf], but only prints if
// [UserLevel] is [slog.LevelWarn] or lower.
func PrintfWarn(format string, a ...any) {
	if UserLevel <= slog.LevelWarn {
		fmt.Printf(format, a...)
	}
}

// PrintlnError is equivalent to [fmt.Println], but only prints if
// [UserLevel] is [slog.LevelError] or lower, which it always is
// for the standard levels.
func PrintlnError(a ...any) {
	if UserLevel <= slog.LevelError {
		fmt.Println(a...)
	}
}

// PrintfError is equivalent to [fmt.Printf], but only prints if
// [UserLevel] is [slog.LevelError] or lower, which it always is
// for the standard levels.
func PrintfError(format string, a ...any) {
	if UserLevel <= slog.LevelError {
		fmt.Printf(format, a...)
	}
}
