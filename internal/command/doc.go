// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package command turns declarative [Definition] values into a nested
// command-line surface.
//
// A [Tree] stores every registered command in a flat arena indexed by [ID];
// parent and child links are IDs, and each node owns the cobra.Command that
// parses its arguments. Actions are bound by key with [Tree.Handle], so the
// static command catalog stays free of code.
//
// [Tree.Dispatch] is the only place a command failure is turned into an exit
// status: errors and panics raised by an action are logged with the full
// command path and mapped to [ExitError]; malformed invocations never reach
// an action and map to [ExitUsage].
package command
