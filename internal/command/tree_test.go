// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package command

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

type harness struct {
	tree  *Tree
	out   bytes.Buffer
	err   bytes.Buffer
	log   bytes.Buffer
	calls []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	logger := clog.NewWithOptions(&h.log, clog.Options{})
	h.tree = New(Program{Name: "aumiao", Description: "test", Version: "1.0.0"},
		WithLogger(logger), WithOutput(&h.out, &h.err))
	return h
}

func (h *harness) record(key string) ActionFunc {
	return func(inv *Invocation) error {
		h.calls = append(h.calls, key)
		return nil
	}
}

func catalog() []Definition {
	return []Definition{
		{Name: "login", Description: "log in", Action: "login",
			Options: []OptionDefinition{{Flags: "--copy-token", Description: "copy"}}},
		{Name: "user", Description: "account", Children: []Definition{
			{Name: "info", Description: "details", Action: "user.info",
				Options: []OptionDefinition{{Flags: "-o, --output <format>", Description: "format", DefaultValue: "text"}}},
			{Name: "messages", Description: "counts", Action: "user.messages"},
		}},
	}
}

func TestDispatchRunsOnlyResolvedAction(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	for _, key := range []string{IndexAction, "login", "user.info", "user.messages"} {
		h.tree.Handle(key, h.record(key))
	}

	cases := []struct {
		argv []string
		want string
	}{
		{nil, IndexAction},
		{[]string{"login"}, "login"},
		{[]string{"user", "info"}, "user.info"},
		{[]string{"user.messages"}, "user.messages"},
	}
	for _, tc := range cases {
		h.calls = nil
		if code := h.tree.Dispatch(context.Background(), tc.argv); code != ExitOK {
			t.Fatalf("Dispatch(%v) = %d, want %d; stderr=%q log=%q", tc.argv, code, ExitOK, h.err.String(), h.log.String())
		}
		if !reflect.DeepEqual(h.calls, []string{tc.want}) {
			t.Fatalf("Dispatch(%v) calls = %v, want [%s]", tc.argv, h.calls, tc.want)
		}
	}
}

func TestRegisterDuplicateLeavesTreeUnchanged(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	before := h.tree.Len()

	err := h.tree.RegisterAll([]Definition{
		{Name: "status", Action: "status"},
		{Name: "login", Action: "login"},
	}, nil)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if h.tree.Len() != before {
		t.Fatalf("tree grew from %d to %d nodes", before, h.tree.Len())
	}
	if _, ok := h.tree.Lookup("status"); ok {
		t.Fatalf("status was registered despite the failed batch")
	}

	_, err = h.tree.Register(Definition{Name: "dup", Children: []Definition{{Name: "a"}, {Name: "a"}}}, nil)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName for nested siblings, got %v", err)
	}
	if _, ok := h.tree.Lookup("dup"); ok {
		t.Fatalf("dup was registered despite a duplicate child")
	}
}

func TestRegisterRejectsBadDefinitions(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		def  Definition
		want error
	}{
		{Definition{Name: ""}, ErrInvalidName},
		{Definition{Name: "a.b"}, ErrInvalidName},
		{Definition{Name: "x", Options: []OptionDefinition{{Flags: "limit"}}}, ErrInvalidFlags},
		{Definition{Name: "x", Options: []OptionDefinition{{Flags: "--a"}, {Flags: "--a"}}}, ErrInvalidFlags},
		{Definition{Name: "x", Options: []OptionDefinition{{Flags: "-a, --aa"}, {Flags: "-a, --bb"}}}, ErrInvalidFlags},
		{Definition{Name: "x", Options: []OptionDefinition{{Flags: "--n <n>", DefaultValue: true}}}, ErrInvalidFlags},
	}
	for _, tc := range cases {
		if _, err := h.tree.Register(tc.def, nil); !errors.Is(err, tc.want) {
			t.Errorf("Register(%+v) = %v, want %v", tc.def, err, tc.want)
		}
	}
	if h.tree.Len() != 1 {
		t.Fatalf("expected only the root, got %d nodes", h.tree.Len())
	}
}

func TestRegisterKeepsDeclarationOrder(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	user, _ := h.tree.Lookup("user")
	if _, err := h.tree.Register(Definition{Name: "avatar", Action: "user.avatar"}, user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var names []string
	for _, c := range user.Children() {
		names = append(names, c.Name())
	}
	if want := []string{"info", "messages", "avatar"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("children = %v, want %v", names, want)
	}
	avatar, ok := h.tree.Lookup("user", "avatar")
	if !ok || avatar.FullName() != "aumiao user avatar" || avatar.Parent != user.ID {
		t.Fatalf("unexpected avatar node %+v", avatar)
	}
}

func TestDispatchUsageErrors(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	for _, key := range []string{IndexAction, "login", "user.info", "user.messages"} {
		h.tree.Handle(key, h.record(key))
	}

	for _, argv := range [][]string{
		{"nope"},
		{"login", "--bogus"},
		{"user", "info", "--output"},
		{"login", "extra"},
	} {
		h.calls = nil
		h.err.Reset()
		if code := h.tree.Dispatch(context.Background(), argv); code != ExitUsage {
			t.Errorf("Dispatch(%v) = %d, want %d", argv, code, ExitUsage)
		}
		if len(h.calls) != 0 {
			t.Errorf("Dispatch(%v) ran %v", argv, h.calls)
		}
		if !strings.Contains(h.err.String(), "--help") {
			t.Errorf("Dispatch(%v) stderr %q lacks a usage hint", argv, h.err.String())
		}
	}
}

func TestDispatchContainsFailures(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	h.tree.Handle("login", func(*Invocation) error { return errors.New("boom") })
	h.tree.Handle("user.info", func(*Invocation) error { panic("kaboom") })

	if code := h.tree.Dispatch(context.Background(), []string{"login"}); code != ExitError {
		t.Fatalf("error action: got %d, want %d", code, ExitError)
	}
	if !strings.Contains(h.log.String(), "aumiao login") || !strings.Contains(h.log.String(), "boom") {
		t.Fatalf("log lacks path or cause: %q", h.log.String())
	}

	h.log.Reset()
	if code := h.tree.Dispatch(context.Background(), []string{"user", "info"}); code != ExitError {
		t.Fatalf("panicking action: got %d, want %d", code, ExitError)
	}
	if !strings.Contains(h.log.String(), "aumiao user info") || !strings.Contains(h.log.String(), "kaboom") {
		t.Fatalf("log lacks path or panic value: %q", h.log.String())
	}

	h.log.Reset()
	if code := h.tree.Dispatch(context.Background(), []string{"user", "messages"}); code != ExitError {
		t.Fatalf("unbound action: got %d, want %d", code, ExitError)
	}
	if !strings.Contains(h.log.String(), ErrNoAction.Error()) {
		t.Fatalf("log lacks ErrNoAction: %q", h.log.String())
	}
}

func TestBeforeHookFailureSkipsAction(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	h.tree.Handle("login", h.record("login"))
	h.tree.Before(func(*Invocation) error { return errors.New("no config") })

	if code := h.tree.Dispatch(context.Background(), []string{"login"}); code != ExitError {
		t.Fatalf("got %d, want %d", code, ExitError)
	}
	if len(h.calls) != 0 {
		t.Fatalf("action ran after failed hook: %v", h.calls)
	}
}

func TestOptionsAreScopedAndReset(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	var got []string
	h.tree.Handle("user.info", func(inv *Invocation) error {
		got = append(got, inv.String("output"))
		return nil
	})
	h.tree.Handle("user.messages", h.record("user.messages"))

	if code := h.tree.Dispatch(context.Background(), []string{"user", "info", "-o", "yaml"}); code != ExitOK {
		t.Fatalf("got %d", code)
	}
	if code := h.tree.Dispatch(context.Background(), []string{"user", "info"}); code != ExitOK {
		t.Fatalf("got %d", code)
	}
	if want := []string{"yaml", "text"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("output values = %v, want %v", got, want)
	}

	if code := h.tree.Dispatch(context.Background(), []string{"user", "messages", "-o", "yaml"}); code != ExitUsage {
		t.Fatalf("sibling option leaked: got %d", code)
	}
}

func TestNegatedSwitch(t *testing.T) {
	h := newHarness(t)
	if _, err := h.tree.Register(Definition{Name: "sync", Action: "sync",
		Options: []OptionDefinition{{Flags: "--no-color", Description: "plain output"}}}, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	var got []bool
	h.tree.Handle("sync", func(inv *Invocation) error {
		got = append(got, inv.Bool("color"))
		return nil
	})
	h.tree.Dispatch(context.Background(), []string{"sync"})
	h.tree.Dispatch(context.Background(), []string{"sync", "--no-color"})
	if want := []bool{true, false}; !reflect.DeepEqual(got, want) {
		t.Fatalf("color = %v, want %v", got, want)
	}
}

func TestGroupWithoutActionPrintsHelp(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if code := h.tree.Dispatch(context.Background(), []string{"user"}); code != ExitOK {
		t.Fatalf("got %d", code)
	}
	if !strings.Contains(h.out.String(), "messages") {
		t.Fatalf("help output lacks children: %q", h.out.String())
	}
}

func TestListing(t *testing.T) {
	h := newHarness(t)
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	var buf bytes.Buffer
	if err := h.tree.Listing(&buf, nil); err != nil {
		t.Fatalf("Listing: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "login") || !strings.HasPrefix(strings.TrimSpace(lines[3]), "messages") {
		t.Fatalf("unexpected order: %q", buf.String())
	}
}

func TestExpandPath(t *testing.T) {
	h := newHarness(t)
	pf := h.tree.Root().Command.PersistentFlags()
	pf.Bool("debug", false, "")
	pf.StringP("lang", "l", "", "")

	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"user.info"}, []string{"user", "info"}},
		{[]string{"user"}, []string{"user"}},
		{[]string{"--api-url=a.b"}, []string{"--api-url=a.b"}},
		{[]string{"--debug", "user.info", "-o", "json"}, []string{"--debug", "user", "info", "-o", "json"}},
		{[]string{"--lang", "zh.cn", "user.info"}, []string{"--lang", "zh.cn", "user", "info"}},
		{[]string{"-l", "en", "user.messages"}, []string{"-l", "en", "user", "messages"}},
		{[]string{"--lang=en", "user.info"}, []string{"--lang=en", "user", "info"}},
		{[]string{"user", "a.b"}, []string{"user", "a.b"}},
		{[]string{"--", "user.info"}, []string{"--", "user.info"}},
	}
	for _, tc := range cases {
		if got := expandPath(tc.in, pf); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("expandPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDispatchDottedPathAfterGlobalFlag(t *testing.T) {
	h := newHarness(t)
	h.tree.Root().Command.PersistentFlags().Bool("debug", false, "")
	if err := h.tree.RegisterAll(catalog(), nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	h.tree.Handle("user.info", h.record("user.info"))

	if code := h.tree.Dispatch(context.Background(), []string{"--debug", "user.info"}); code != ExitOK {
		t.Fatalf("Dispatch = %d; stderr=%q", code, h.err.String())
	}
	if !reflect.DeepEqual(h.calls, []string{"user.info"}) {
		t.Fatalf("calls = %v", h.calls)
	}
}

func TestParseFlags(t *testing.T) {
	cases := []struct {
		in   string
		want flagSpec
		err  bool
	}{
		{in: "-l, --limit <n>", want: flagSpec{Long: "limit", Short: "l", Kind: kindRequired}},
		{in: "--output [format]", want: flagSpec{Long: "output", Kind: kindOptional}},
		{in: "-f, --force", want: flagSpec{Long: "force", Short: "f", Kind: kindSwitch}},
		{in: "--no-color", want: flagSpec{Long: "color", Kind: kindSwitch, Negated: true}},
		{in: "-f | --force", want: flagSpec{Long: "force", Short: "f", Kind: kindSwitch}},
		{in: "", err: true},
		{in: "-f", err: true},
		{in: "--a --b", err: true},
		{in: "-ab, --ab", err: true},
		{in: "--limit <n> extra", err: true},
	}
	for _, tc := range cases {
		got, err := parseFlags(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidFlags) {
				t.Errorf("parseFlags(%q) err = %v, want ErrInvalidFlags", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseFlags(%q) = %+v, %v; want %+v", tc.in, got, err, tc.want)
		}
	}
}
