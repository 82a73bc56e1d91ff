// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestInitAndLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	got := Locales()
	if len(got) != 2 || got[0] != "en" || got[1] != "zh" {
		t.Fatalf("unexpected locales: %v", got)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("login.success"); got != "Login succeeded!" {
		t.Fatalf("expected English success line, got %q", got)
	}
	if got := T("login.welcome", "x", "7"); got != "Welcome, x (id 7)." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("zh")
	defer SetLang("en")
	if got := T("login.title"); got != "登录codemao.cn" {
		t.Fatalf("expected Chinese title, got %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("fr")
	defer Init("en")
	if got := T("login.failed_short"); got != "Login failed!" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}
