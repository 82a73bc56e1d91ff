// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package command

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Invocation is what an action sees of the command line it was called with.
type Invocation struct {
	Command *cobra.Command
	Args    []string
	Out     io.Writer
	Err     io.Writer

	ctx  context.Context
	node *Registered
}

// Context returns the context Dispatch was called with.
func (inv *Invocation) Context() context.Context { return inv.ctx }

// Node returns the resolved command.
func (inv *Invocation) Node() *Registered { return inv.node }

// Path returns the resolved command's full name.
func (inv *Invocation) Path() string { return inv.node.FullName() }

// Flags returns the parsed flag set, persistent flags included.
func (inv *Invocation) Flags() *pflag.FlagSet { return inv.Command.Flags() }

// String returns a string option, or "" if it is not declared.
func (inv *Invocation) String(name string) string {
	v, err := inv.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// Bool returns a switch, or false if it is not declared.
func (inv *Invocation) Bool(name string) bool {
	v, err := inv.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// Int returns an integer option, or 0 if it is not declared.
func (inv *Invocation) Int(name string) int {
	v, err := inv.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return v
}

// Changed reports whether name was given on the command line.
func (inv *Invocation) Changed(name string) bool {
	f := inv.Flags().Lookup(name)
	return f != nil && f.Changed
}
