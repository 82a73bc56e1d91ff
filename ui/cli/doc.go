// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli declares the aumiao command catalog and binds its actions.
// Actions stay thin: they ask the session for a login when they need one,
// call the codemao client and render the result.
package cli
