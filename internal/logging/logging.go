// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import clog "github.com/charmbracelet/log"

// SetDebug enables or disables debug logging on the package logger.
func SetDebug(enabled bool) {
	L.SetLevel(levelFor(enabled, false))
}

// Use replaces the package logger, returning the previous one so callers
// (mostly tests) can restore it.
func Use(logger *clog.Logger) *clog.Logger {
	prev := L
	L = logger
	return prev
}

// Configure applies the debug and verbose switches to an existing logger.
func Configure(logger *clog.Logger, debug, verbose bool) {
	logger.SetLevel(levelFor(debug, verbose))
	logger.SetReportCaller(debug)
	logger.SetReportTimestamp(debug)
}
