// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package auth establishes a session with codemao.cn.
package auth

import "context"

// SessionInfo is the identity established by a successful login.
type SessionInfo struct {
	ID       string
	Nickname string
	Token    string
}

// Provider is the capability commands use to obtain a session.
//
// Login returns (nil, nil) when the server declined the credentials or
// handed back no token; an error means the flow itself broke (prompt I/O,
// transport failure) and should reach the command's failure boundary.
type Provider interface {
	Login(ctx context.Context) (*SessionInfo, error)
	IsLogin(ctx context.Context) (bool, error)
}

// Environment variables that bypass the interactive prompts.
const (
	EnvUsername = "USERNAME"
	EnvPassword = "PASSWORD"
)
