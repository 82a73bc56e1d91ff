// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below for compatibility with existing calls.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "aumiao"})

// New builds a logger writing to w. debug lowers the level to Debug and
// adds caller information; verbose only lowers the level.
func New(w io.Writer, debug, verbose bool) *clog.Logger {
	logger := clog.NewWithOptions(w, clog.Options{
		Prefix:          "aumiao",
		ReportCaller:    debug,
		ReportTimestamp: debug,
	})
	logger.SetLevel(levelFor(debug, verbose))
	return logger
}

func levelFor(debug, verbose bool) clog.Level {
	if debug || verbose {
		return clog.DebugLevel
	}
	return clog.InfoLevel
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
