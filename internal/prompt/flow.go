// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompt implements the step-by-step terminal flow used by
// interactive commands: a header, blocking prompts, a spinner around one
// long-running operation and a final status line.
package prompt

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/aumiao/aumiao/internal/security"
)

// Flow is what interactive commands need from the terminal.
type Flow interface {
	// Start prints the flow header.
	Start(title string)
	// Input blocks for one line of plain text.
	Input(label string) (string, error)
	// Password blocks for one line of masked text.
	Password(label string) (security.Secret, error)
	// Step records a transition between phases of the flow.
	Step(label string, n int)
	// WaitForLoading runs op while a loading indicator is shown. op settles
	// the indicator itself: a non-empty failure marks it failed with that
	// message, an error marks it failed and is returned unchanged.
	WaitForLoading(ctx context.Context, label string, op func(ctx context.Context) (failure string, err error)) error
	// End prints the closing status line.
	End(message string)
}

var (
	blue  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Color helpers for flow labels.
func Blue(s string) string  { return blue.Render(s) }
func Green(s string) string { return green.Render(s) }
func Red(s string) string   { return red.Render(s) }
func Gray(s string) string  { return gray.Render(s) }
