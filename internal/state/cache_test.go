// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package state

import (
	"sync"
	"testing"
)

func TestTokenStore_SetGetClear(t *testing.T) {
	s := NewTokenStore()
	if s.Present() || s.Get() != "" {
		t.Fatalf("expected empty store, got %q", s.Get())
	}

	s.Set("tok123")
	if !s.Present() || s.Get() != "tok123" {
		t.Fatalf("expected tok123, got %q", s.Get())
	}

	s.Set("")
	if s.Present() {
		t.Fatalf("setting empty token should leave the store empty")
	}

	s.Set("again")
	s.Clear()
	if got := s.Get(); got != "" {
		t.Fatalf("expected empty after Clear, got %q", got)
	}
}

func TestTokenStore_ConcurrentReaders(t *testing.T) {
	s := NewTokenStore()
	s.Set("concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.Get(); got != "concurrent" {
				t.Errorf("unexpected token %q", got)
			}
		}()
	}
	wg.Wait()
}
