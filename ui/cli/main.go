// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aumiao/aumiao/internal/app"
	"github.com/aumiao/aumiao/internal/command"
	"github.com/aumiao/aumiao/internal/logging"
)

// Execute runs the CLI against the process arguments and returns the exit
// status. The main package should pass it to os.Exit.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := New(app.Options{})
	if err != nil {
		logging.Errorf("%v", err)
		return command.ExitError
	}
	logging.Use(a.Logger)
	return a.Start(ctx, os.Args[1:])
}

// New builds the application with the full command catalog registered and
// every action bound. A catalog that fails to register is reported before
// anything is dispatched.
func New(opts app.Options) (*app.App, error) {
	if opts.Version == "" {
		opts.Version, _, _ = resolveBuildVersion(nil)
	}
	a := app.New(opts)
	if err := a.Router.RegisterAll(Catalog(), nil); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	h := &handlers{app: a}
	a.Router.Handle(command.IndexAction, h.index)
	a.Router.Handle(actionLogin, h.login)
	a.Router.Handle(actionLogout, h.logout)
	a.Router.Handle(actionStatus, h.status)
	a.Router.Handle(actionUserInfo, h.userInfo)
	a.Router.Handle(actionUserMessages, h.userMessages)
	a.Router.Handle(actionConfigShow, h.configShow)
	a.Router.Handle(actionConfigInit, h.configInit)
	a.Router.Handle(actionVersion, h.version)
	return a, nil
}
