// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package buildvars

import "testing"

func TestVersionOrDefault(t *testing.T) {
	prev := Version
	defer func() { Version = prev }()

	Version = ""
	if got := VersionOrDefault("dev"); got != "dev" {
		t.Fatalf("expected fallback 'dev', got %q", got)
	}
	Version = "1.4.0"
	if got := VersionOrDefault("dev"); got != "1.4.0" {
		t.Fatalf("expected injected version, got %q", got)
	}
}
