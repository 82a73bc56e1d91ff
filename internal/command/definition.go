// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package command

import "errors"

// OptionDefinition declares one option of a command.
//
// Flags uses the familiar "-s, --long <value>" notation: a required value is
// written <value>, an optional one [value], and no placeholder declares a
// boolean switch. A "--no-xxx" long name declares a switch named xxx that
// defaults to true.
type OptionDefinition struct {
	Flags        string
	Description  string
	DefaultValue any
}

// Definition declares one command and, recursively, its children.
type Definition struct {
	Name        string
	Description string
	Options     []OptionDefinition
	Children    []Definition
	// Action is the key of the handler bound with Tree.Handle.
	Action string
}

// Program describes the root command.
type Program struct {
	Name        string
	Description string
	Version     string
}

// IndexAction is the action key bound to the root command.
const IndexAction = "index"

// Exit statuses produced by Dispatch.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var (
	// ErrDuplicateName is returned when a command name is already taken
	// among its siblings.
	ErrDuplicateName = errors.New("duplicate command name")
	// ErrInvalidName is returned for empty names or names that cannot be
	// typed as a single argument.
	ErrInvalidName = errors.New("invalid command name")
	// ErrInvalidFlags is returned when an option's Flags string cannot be
	// parsed or clashes with another option.
	ErrInvalidFlags = errors.New("invalid option flags")
	// ErrNoAction is returned when a resolved command's action key has no
	// bound handler.
	ErrNoAction = errors.New("no handler bound for action")
)
