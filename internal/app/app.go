// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/aumiao/aumiao/buildvars"
	"github.com/aumiao/aumiao/internal/auth"
	"github.com/aumiao/aumiao/internal/codemao"
	"github.com/aumiao/aumiao/internal/command"
	"github.com/aumiao/aumiao/internal/config"
	"github.com/aumiao/aumiao/internal/i18n"
	"github.com/aumiao/aumiao/internal/logging"
	"github.com/aumiao/aumiao/internal/prompt"
	"github.com/aumiao/aumiao/internal/state"
)

// Name is the program name shown in help and listings.
const Name = "aumiao"

// Options configures New. The zero value runs against the real terminal and
// environment.
type Options struct {
	// Config, when set, replaces the config file and environment layers.
	// Global flags still override it.
	Config *config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Env  auth.LookupEnv
	Exit func(code int)

	// Version is reported by --version. Empty means the linker version.
	Version string

	// Flow and Provider replace the terminal prompt and the credential
	// login respectively.
	Flow       prompt.Flow
	Provider   auth.Provider
	HTTPClient *http.Client
}

// App owns everything a command needs. Config, Client and Auth are filled
// in right before each action runs, once the global flags are parsed.
type App struct {
	Config config.Config
	Logger *clog.Logger
	Events *Events
	Router *command.Tree
	Auth   auth.Provider
	Client *codemao.Client

	opts   Options
	tokens *state.TokenStore
	flow   prompt.Flow
	exit   func(int)
}

// New builds an App with the global flags registered on the root command.
func New(opts Options) *App {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Env == nil {
		opts.Env = os.LookupEnv
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	i18n.Init(cfg.Language)

	a := &App{
		Config: cfg,
		Logger: logging.New(opts.Stderr, cfg.Debug, cfg.Verbose),
		Events: NewEvents(),
		opts:   opts,
		tokens: state.NewTokenStore(),
		exit:   opts.Exit,
	}
	a.flow = opts.Flow
	if a.flow == nil {
		a.flow = prompt.NewTerminal(opts.Stdin, opts.Stderr)
	}

	version := opts.Version
	if version == "" {
		version = buildvars.VersionOrDefault("dev")
	}
	a.Router = command.New(command.Program{
		Name:        Name,
		Description: i18n.T("app.description"),
		Version:     version,
	}, command.WithLogger(a.Logger), command.WithOutput(opts.Stdout, opts.Stderr))

	pf := a.Router.Root().Command.PersistentFlags()
	pf.Bool("debug", cfg.Debug, "enable debug logging")
	pf.BoolP("verbose", "v", cfg.Verbose, "log more detail")
	pf.String("lang", cfg.Language, "message language (en, zh)")
	pf.String("config", "", "path to a config file")
	pf.String("api-url", cfg.API.BaseURL, "codemao.cn API base URL")

	a.Router.Before(a.configure)
	return a
}

// Start dispatches argv (without the program name) and returns the exit
// status.
func (a *App) Start(ctx context.Context, argv []string) int {
	a.Events.Emit(EventStart, argv)
	a.Logger.Debug("Starting app...")
	code := a.Router.Dispatch(ctx, argv)
	a.Events.Emit(EventStop, code)
	return code
}

// Exit terminates the process through the configured exit function.
func (a *App) Exit(code int) {
	a.exit(code)
}

// Tokens returns the session token store shared by every client the app
// builds.
func (a *App) Tokens() *state.TokenStore { return a.tokens }

// configure resolves the effective configuration for the invocation and
// rebuilds the client and provider from it.
func (a *App) configure(inv *command.Invocation) error {
	cfg, err := a.load(inv)
	if err != nil {
		return err
	}
	a.Config = cfg
	logging.Configure(a.Logger, cfg.Debug, cfg.Verbose)
	if cfg.Language != i18n.GetLang() {
		i18n.SetLang(cfg.Language)
	}

	client, err := codemao.New(codemao.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		UserAgent:  cfg.API.UserAgent,
		Tokens:     a.tokens,
		HTTPClient: a.opts.HTTPClient,
		Logger:     a.Logger,
	})
	if err != nil {
		return fmt.Errorf("configure api client: %w", err)
	}
	a.Client = client

	if a.opts.Provider != nil {
		a.Auth = a.opts.Provider
	} else {
		a.Auth = auth.NewCred(client, a.flow, auth.WithEnv(a.opts.Env), auth.WithLogger(a.Logger))
	}

	a.Logger.Debug("configured", "command", inv.Path(), "api", cfg.API.BaseURL, "lang", cfg.Language)
	a.Events.Emit(EventConfigured, cfg)
	return nil
}

func (a *App) load(inv *command.Invocation) (config.Config, error) {
	flags := inv.Flags()
	if a.opts.Config != nil {
		cfg := *a.opts.Config
		overlayFlags(&cfg, flags)
		return cfg, nil
	}

	var path *string
	if f := flags.Lookup("config"); f != nil && f.Changed {
		p := f.Value.String()
		path = &p
	}
	return config.LoadConfig[config.Config](inv.Command, config.Defaults(), path)
}

// overlayFlags applies the global flags the user set on top of cfg.
func overlayFlags(cfg *config.Config, flags *pflag.FlagSet) {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if changed("lang") {
		cfg.Language, _ = flags.GetString("lang")
	}
	if changed("api-url") {
		cfg.API.BaseURL, _ = flags.GetString("api-url")
	}
}
