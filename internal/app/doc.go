// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package app wires configuration, logging, the command tree and the
// codemao.cn session into one runnable application.
package app
