// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package app

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aumiao/aumiao/internal/auth"
	"github.com/aumiao/aumiao/internal/command"
	"github.com/aumiao/aumiao/internal/config"
)

type fakeProvider struct{}

func (fakeProvider) Login(context.Context) (*auth.SessionInfo, error) { return nil, nil }
func (fakeProvider) IsLogin(context.Context) (bool, error)            { return false, nil }

func testConfig() *config.Config {
	return &config.Config{
		Language: "en",
		API:      config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
	}
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := New(Options{
		Config:   testConfig(),
		Stdout:   &out,
		Stderr:   &errOut,
		Env:      func(string) (string, bool) { return "", false },
		Provider: fakeProvider{},
	})
	return a, &out, &errOut
}

func TestStart_EmitsLifecycleInOrder(t *testing.T) {
	a, _, _ := newTestApp(t)
	var events []string
	a.Events.On(EventStart, func(args ...any) { events = append(events, "start") })
	a.Events.On(EventConfigured, func(args ...any) { events = append(events, "configured") })
	a.Events.On(EventStop, func(args ...any) {
		events = append(events, "stop")
		if code, _ := args[0].(int); code != command.ExitOK {
			t.Errorf("stop carried code %v", args[0])
		}
	})
	a.Router.Handle(command.IndexAction, func(*command.Invocation) error {
		events = append(events, "index")
		return nil
	})

	if code := a.Start(context.Background(), nil); code != command.ExitOK {
		t.Fatalf("Start = %d", code)
	}
	if want := []string{"start", "configured", "index", "stop"}; !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestStart_StopCarriesFailureCode(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Router.Handle(command.IndexAction, func(*command.Invocation) error { return errors.New("nope") })
	var got any
	a.Events.On(EventStop, func(args ...any) { got = args[0] })

	if code := a.Start(context.Background(), nil); code != command.ExitError {
		t.Fatalf("Start = %d", code)
	}
	if got != command.ExitError {
		t.Fatalf("stop event carried %v", got)
	}
}

func TestConfigure_FlagsOverrideConfig(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Router.Handle(command.IndexAction, func(*command.Invocation) error { return nil })

	code := a.Start(context.Background(), []string{"--api-url", "http://example.test", "--debug", "--lang", "zh"})
	if code != command.ExitOK {
		t.Fatalf("Start = %d", code)
	}
	if a.Config.API.BaseURL != "http://example.test" || !a.Config.Debug || a.Config.Language != "zh" {
		t.Fatalf("flags not applied: %+v", a.Config)
	}
	if a.Client == nil || a.Client.Tokens() != a.Tokens() {
		t.Fatalf("client not built on the shared token store")
	}
	if _, ok := a.Auth.(fakeProvider); !ok {
		t.Fatalf("provider override ignored: %T", a.Auth)
	}
}

func TestConfigure_BadBaseURLFailsTheAction(t *testing.T) {
	a, _, errOut := newTestApp(t)
	ran := false
	a.Router.Handle(command.IndexAction, func(*command.Invocation) error { ran = true; return nil })

	if code := a.Start(context.Background(), []string{"--api-url", "not-a-url"}); code != command.ExitError {
		t.Fatalf("Start = %d", code)
	}
	if ran {
		t.Fatalf("action ran with a broken configuration")
	}
	if !strings.Contains(errOut.String(), "must be absolute") {
		t.Fatalf("stderr lacks the cause: %q", errOut.String())
	}
}

func TestConfigure_DefaultProviderIsCred(t *testing.T) {
	a := New(Options{Config: testConfig(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	a.Router.Handle(command.IndexAction, func(*command.Invocation) error { return nil })
	if code := a.Start(context.Background(), nil); code != command.ExitOK {
		t.Fatalf("Start = %d", code)
	}
	if _, ok := a.Auth.(*auth.Cred); !ok {
		t.Fatalf("expected *auth.Cred, got %T", a.Auth)
	}
}

func TestExitDelegates(t *testing.T) {
	got := -1
	a := New(Options{Config: testConfig(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Exit: func(c int) { got = c }})
	a.Exit(3)
	if got != 3 {
		t.Fatalf("exit func got %d", got)
	}
}

func TestEvents_OrderAndReport(t *testing.T) {
	e := NewEvents()
	if e.Emit("nothing") {
		t.Fatalf("Emit reported listeners for an unknown event")
	}
	var seen []int
	e.On("x", func(args ...any) { seen = append(seen, 1) })
	e.On("x", func(args ...any) { seen = append(seen, 2+args[0].(int)) })
	if !e.Emit("x", 1) {
		t.Fatalf("Emit reported no listeners")
	}
	if !reflect.DeepEqual(seen, []int{1, 3}) {
		t.Fatalf("seen = %v", seen)
	}
}
