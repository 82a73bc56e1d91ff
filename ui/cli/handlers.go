// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/goccy/go-yaml"

	"github.com/aumiao/aumiao/internal/app"
	"github.com/aumiao/aumiao/internal/codemao"
	"github.com/aumiao/aumiao/internal/command"
	"github.com/aumiao/aumiao/internal/config"
	"github.com/aumiao/aumiao/internal/i18n"
	"github.com/aumiao/aumiao/internal/prompt"
)

// ErrConfigExists is returned by "config init" when the target file is
// already there and --force was not given.
var ErrConfigExists = errors.New("config file exists")

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type handlers struct {
	app *app.App
}

func (h *handlers) index(inv *command.Invocation) error {
	fmt.Fprintf(inv.Out, "%s  %s\n\n", prompt.Blue(app.Name), i18n.T("app.description"))
	fmt.Fprintln(inv.Out, i18n.T("app.commands_header"))
	if err := h.app.Router.Listing(inv.Out, nil); err != nil {
		return err
	}
	fmt.Fprintf(inv.Out, "\n%s\n", prompt.Gray(i18n.T("app.index_hint")))
	return nil
}

func (h *handlers) login(inv *command.Invocation) error {
	sess, err := h.app.Auth.Login(inv.Context())
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if sess == nil {
		return ErrNotLoggedIn
	}
	fmt.Fprintln(inv.Out, i18n.T("login.welcome", sess.Nickname, sess.ID))

	if inv.Bool("copy-token") {
		if err := writeClipboard(sess.Token); err != nil {
			h.app.Logger.Warn(i18n.T("login.token_copy_failed", err))
			return nil
		}
		fmt.Fprintln(inv.Out, i18n.T("login.token_copied"))
	}
	return nil
}

func (h *handlers) logout(inv *command.Invocation) error {
	if _, err := h.requireLogin(inv); err != nil {
		return err
	}
	defer h.app.Tokens().Clear()

	res, err := codemao.Do[json.RawMessage](inv.Context(), h.app.Client, codemao.EndpointLogout)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if res.Rejected() {
		h.app.Logger.Debug("logout rejected", "reason", res.Rejection.String())
	}
	fmt.Fprintln(inv.Out, i18n.T("logout.done"))
	return nil
}

func (h *handlers) status(inv *command.Invocation) error {
	if _, err := h.requireLogin(inv); err != nil {
		return err
	}
	ok, err := h.app.Auth.IsLogin(inv.Context())
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if ok {
		fmt.Fprintln(inv.Out, prompt.Green(i18n.T("status.valid")))
	} else {
		fmt.Fprintln(inv.Out, prompt.Red(i18n.T("status.invalid")))
	}
	return nil
}

func (h *handlers) userInfo(inv *command.Invocation) error {
	format := inv.String("output")
	if format != "text" && format != "yaml" && format != "json" {
		return fmt.Errorf("unknown output format %q", format)
	}
	if _, err := h.requireLogin(inv); err != nil {
		return err
	}

	res, err := codemao.Do[codemao.UserDetails](inv.Context(), h.app.Client, codemao.EndpointUserDetails, codemao.Fresh())
	if err != nil {
		return fmt.Errorf("fetch user details: %w", err)
	}
	if res.Rejected() {
		return fmt.Errorf("fetch user details: %s", res.Rejection)
	}
	return render(inv.Out, format, res.Value, func(w io.Writer) error {
		u := res.Value
		fmt.Fprintln(w, prompt.Blue(i18n.T("user.info_header")))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  id\t%d\n", u.ID)
		fmt.Fprintf(tw, "  nickname\t%s\n", u.Nickname)
		fmt.Fprintf(tw, "  level\t%d\n", u.Level)
		fmt.Fprintf(tw, "  description\t%s\n", u.Description)
		fmt.Fprintf(tw, "  doing\t%s\n", u.Doing)
		return tw.Flush()
	})
}

func (h *handlers) userMessages(inv *command.Invocation) error {
	if _, err := h.requireLogin(inv); err != nil {
		return err
	}
	res, err := codemao.Do[[]codemao.MessageCount](inv.Context(), h.app.Client, codemao.EndpointMessageCount, codemao.Fresh())
	if err != nil {
		return fmt.Errorf("fetch message counts: %w", err)
	}
	if res.Rejected() {
		return fmt.Errorf("fetch message counts: %s", res.Rejection)
	}

	total := 0
	for _, c := range res.Value {
		total += c.Count
	}
	if total == 0 {
		fmt.Fprintln(inv.Out, i18n.T("user.messages_empty"))
		return nil
	}
	fmt.Fprintln(inv.Out, prompt.Blue(i18n.T("user.messages_header")))
	tw := tabwriter.NewWriter(inv.Out, 0, 4, 2, ' ', 0)
	for _, c := range res.Value {
		fmt.Fprintf(tw, "  %s\t%s\n", c.QueryType, strconv.Itoa(c.Count))
	}
	return tw.Flush()
}

func (h *handlers) configShow(inv *command.Invocation) error {
	out, err := config.Marshal(h.app.Config)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	_, err = inv.Out.Write(out)
	return err
}

func (h *handlers) configInit(inv *command.Invocation) error {
	path := inv.String("config")
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !inv.Bool("force") {
		fmt.Fprintln(inv.Err, i18n.T("config.exists", path))
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	cfg := config.Default()
	written, err := config.WriteConfigFile(&cfg, path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(inv.Out, i18n.T("config.written", written))
	return nil
}

func (h *handlers) version(inv *command.Invocation) error {
	v, commit, date := resolveBuildVersion(nil)
	fmt.Fprintln(inv.Out, i18n.T("version.line", v))
	if commit != "" && commit != v {
		fmt.Fprintf(inv.Out, "commit: %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(inv.Out, "built:  %s\n", date)
	}
	return nil
}

// render writes v as YAML or JSON, or through text for the default format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return text(w)
	}
}
