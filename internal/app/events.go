// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package app

import "sync"

// Lifecycle events emitted by App.
const (
	EventStart      = "start"
	EventConfigured = "configured"
	EventStop       = "stop"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

// Events is a small synchronous event bus. Listeners run in the order they
// were added, on the emitting goroutine.
type Events struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewEvents returns an empty bus.
func NewEvents() *Events {
	return &Events{listeners: make(map[string][]Listener)}
}

// On adds a listener for event.
func (e *Events) On(event string, l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], l)
}

// Emit calls every listener of event with args and reports whether any was
// registered.
func (e *Events) Emit(event string, args ...any) bool {
	e.mu.RLock()
	ls := make([]Listener, len(e.listeners[event]))
	copy(ls, e.listeners[event])
	e.mu.RUnlock()

	for _, l := range ls {
		l(args...)
	}
	return len(ls) > 0
}
