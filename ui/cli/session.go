// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/aumiao/aumiao/internal/auth"
	"github.com/aumiao/aumiao/internal/command"
	"github.com/aumiao/aumiao/internal/i18n"
	"github.com/aumiao/aumiao/internal/prompt"
)

// ErrNotLoggedIn is returned by actions that need a session when the login
// flow was declined or rejected.
var ErrNotLoggedIn = errors.New("not logged in")

// requireLogin makes sure a session token is present, running the login
// flow if needed. The returned session is nil when a token was already held.
func (h *handlers) requireLogin(inv *command.Invocation) (*auth.SessionInfo, error) {
	if h.app.Tokens().Present() {
		return nil, nil
	}
	sess, err := h.app.Auth.Login(inv.Context())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if sess == nil {
		fmt.Fprintln(inv.Err, prompt.Red(i18n.T("login.required")))
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}
