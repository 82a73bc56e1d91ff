// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	clog "github.com/charmbracelet/log"

	"github.com/aumiao/aumiao/internal/codemao"
	"github.com/aumiao/aumiao/internal/i18n"
	"github.com/aumiao/aumiao/internal/prompt"
	"github.com/aumiao/aumiao/internal/security"
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Cred logs in with identity and password.
type Cred struct {
	client *codemao.Client
	flow   prompt.Flow
	env    LookupEnv
	logger *clog.Logger
}

// CredOption customizes a Cred.
type CredOption func(*Cred)

// WithEnv replaces the environment lookup.
func WithEnv(env LookupEnv) CredOption {
	return func(c *Cred) { c.env = env }
}

// WithLogger sets the logger used for flow diagnostics.
func WithLogger(l *clog.Logger) CredOption {
	return func(c *Cred) { c.logger = l }
}

// NewCred builds a Cred that drives flow and talks through client.
func NewCred(client *codemao.Client, flow prompt.Flow, opts ...CredOption) *Cred {
	c := &Cred{
		client: client,
		flow:   flow,
		env:    os.LookupEnv,
		logger: clog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the token stored by the last successful login.
func (c *Cred) Token() string { return c.client.Tokens().Get() }

// Login runs the interactive login flow. It is not reentrant.
func (c *Cred) Login(ctx context.Context) (*SessionInfo, error) {
	c.flow.Start(prompt.Blue(i18n.T("login.title")))

	username, password, err := c.credentials()
	if err != nil {
		return nil, err
	}
	defer password.Zero()

	c.flow.Step(prompt.Gray(""), 1)

	var res codemao.Result[codemao.LoginInfo]
	err = c.flow.WaitForLoading(ctx, i18n.T("login.loading"), func(ctx context.Context) (string, error) {
		var reqErr error
		res, reqErr = c.sendLogin(ctx, username, password)
		if reqErr != nil {
			return "", reqErr
		}
		if res.Rejected() {
			return i18n.T("login.failed") + res.Rejection.String(), nil
		}
		return "", nil
	})
	if err != nil {
		return nil, err
	}

	if res.Rejected() || res.Value.Auth.Token == "" {
		if res.Rejected() {
			c.logger.Debug("login rejected", "status", res.Rejection.Status, "code", res.Rejection.Code)
		} else {
			c.logger.Debug("login response carried no token")
		}
		c.flow.End(prompt.Red(i18n.T("login.failed_short")))
		return nil, nil
	}

	c.flow.End(prompt.Green(i18n.T("login.success")))
	c.client.Tokens().Set(res.Value.Auth.Token)
	return &SessionInfo{
		ID:       strconv.FormatInt(res.Value.UserInfo.ID, 10),
		Nickname: res.Value.UserInfo.Nickname,
		Token:    res.Value.Auth.Token,
	}, nil
}

// IsLogin asks the server whether the current token still works. It does not
// look at the token locally and leaves it untouched when the answer is no.
func (c *Cred) IsLogin(ctx context.Context) (bool, error) {
	res, err := codemao.Do[json.RawMessage](ctx, c.client, codemao.EndpointUserDetails, codemao.Fresh())
	if err != nil {
		return false, err
	}
	if res.Rejected() {
		return false, nil
	}
	return truthy(res.Value), nil
}

func (c *Cred) credentials() (string, security.Secret, error) {
	username, uok := c.env(EnvUsername)
	password, pok := c.env(EnvPassword)
	if uok && pok && username != "" && password != "" {
		c.logger.Debug("using credentials from environment", "username", username)
		return username, security.FromString(password), nil
	}

	username, err := c.flow.Input(i18n.T("login.username"))
	if err != nil {
		return "", nil, fmt.Errorf("read username: %w", err)
	}
	secret, err := c.flow.Password(i18n.T("login.password"))
	if err != nil {
		return "", nil, fmt.Errorf("read password: %w", err)
	}
	return username, secret, nil
}

func (c *Cred) sendLogin(ctx context.Context, username string, password security.Secret) (codemao.Result[codemao.LoginInfo], error) {
	return codemao.Do[codemao.LoginInfo](ctx, c.client, codemao.EndpointLogin, codemao.WithJSON(codemao.LoginRequest{
		PID:      codemao.LoginPID,
		Identity: username,
		Password: password,
	}))
}

// truthy reports whether a probe payload names an account. Absent, null,
// false, zero, empty string, empty object and empty array all mean "no".
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", "0", `""`, "{}", "[]":
		return false
	}
	return true
}

var _ Provider = (*Cred)(nil)
