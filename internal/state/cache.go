// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package state provides in-memory holders for transient session state that
// is shared between the login flow and the HTTP transport. Nothing in here is
// ever written to disk.
package state

import "sync"

// TokenStore is a concurrency-safe "mailbox" for the session token. The
// login flow is the only writer; the transport reads it for every request.
type TokenStore struct {
	mu    sync.RWMutex
	value []byte
}

// NewTokenStore returns an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set stores a copy of the token, overwriting any existing value.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipe()
	if token == "" {
		return
	}
	s.value = []byte(token)
}

// Get returns the current token, or "" when nobody has logged in.
func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.value)
}

// Present reports whether a token is held.
func (s *TokenStore) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.value) > 0
}

// Clear wipes the token from memory.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipe()
}

func (s *TokenStore) wipe() {
	for i := range s.value {
		s.value[i] = 0
	}
	s.value = nil
}
