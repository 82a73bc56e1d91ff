// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package codemao is the HTTP transport for the codemao.cn web API.
//
// Every call goes through [Do], which returns a [Result] carrying either the
// decoded payload or a [Rejected] value when the server declined the
// request. Transport failures (DNS, timeouts, connection resets, bodies that
// cannot be decoded) are returned as ordinary Go errors instead, so callers
// can show a one-line message for a rejection and full diagnostics for
// everything else.
package codemao
