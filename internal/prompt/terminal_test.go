// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTerminal_InputAndPassword(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("alice\r\nhunter2\n"), &out)

	user, err := term.Input("Username:")
	if err != nil || user != "alice" {
		t.Fatalf("Input = %q, %v", user, err)
	}
	pass, err := term.Password("Password:")
	if err != nil || pass.Reveal() != "hunter2" {
		t.Fatalf("Password = %v, %v", pass, err)
	}
	if strings.Contains(out.String(), "hunter2") {
		t.Fatalf("password echoed to output: %s", out.String())
	}
	if !strings.Contains(out.String(), "Username:") || !strings.Contains(out.String(), "Password:") {
		t.Fatalf("labels missing from output: %s", out.String())
	}
}

func TestTerminal_PasswordUsesLineBufferedWithUsername(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("alice\nhunter2\n"), &out)
	// Pretend stdin is a console; the fd is never valid here, so reaching
	// the masked read would fail.
	term.inTTY = true

	if user, err := term.Input("Username:"); err != nil || user != "alice" {
		t.Fatalf("Input = %q, %v", user, err)
	}
	pass, err := term.Password("Password:")
	if err != nil || pass.Reveal() != "hunter2" {
		t.Fatalf("Password = %v, %v", pass, err)
	}
	if strings.Contains(out.String(), "hunter2") {
		t.Fatalf("password echoed to output: %s", out.String())
	}
}

func TestTerminal_InputWithoutTrailingNewline(t *testing.T) {
	term := NewTerminal(strings.NewReader("bob"), &bytes.Buffer{})
	got, err := term.Input("Username:")
	if err != nil || got != "bob" {
		t.Fatalf("Input = %q, %v", got, err)
	}
	if _, err := term.Input("again"); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput at EOF, got %v", err)
	}
}

func TestTerminal_WaitForLoadingOutcomes(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name     string
		failure  string
		err      error
		wantLine string
	}{
		{"resolved", "", nil, "Logging in"},
		{"rejected", "Login failed! bad password", nil, "Login failed! bad password"},
		{"errored", "", boom, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(""), &out)
			calls := 0
			err := term.WaitForLoading(context.Background(), "Logging in", func(context.Context) (string, error) {
				calls++
				return tt.failure, tt.err
			})
			if calls != 1 {
				t.Fatalf("operation ran %d times", calls)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			last := lines[len(lines)-1]
			if !strings.Contains(last, tt.wantLine) {
				t.Fatalf("final line %q does not contain %q", last, tt.wantLine)
			}
			wantMark := markDone
			if tt.failure != "" || tt.err != nil {
				wantMark = markFailed
			}
			if !strings.Contains(last, wantMark) {
				t.Fatalf("final line %q missing marker %q", last, wantMark)
			}
		})
	}
}

func TestTerminal_StartStepEnd(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)
	term.Start("Log in")
	term.Step("", 2)
	term.End("done")

	got := out.String()
	if strings.Count(got, markRail) != 2 {
		t.Fatalf("expected two rail lines, got:\n%s", got)
	}
	if strings.Index(got, "Log in") > strings.Index(got, "done") {
		t.Fatalf("header must precede end line:\n%s", got)
	}
}

func TestSpinnerModel_QuitsWhenSettled(t *testing.T) {
	m := newSpinnerModel("Logging in")
	if !strings.Contains(m.View(), "Logging in") {
		t.Fatalf("view should show the label, got %q", m.View())
	}
	next, cmd := m.Update(settledMsg{failure: "nope"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	sm := next.(spinnerModel)
	if !sm.done || sm.result.failure != "nope" || sm.View() != "" {
		t.Fatalf("unexpected model after settle: %+v", sm)
	}
}
