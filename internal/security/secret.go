// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds small helpers for handling credentials in memory.
package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret is a thin wrapper around a byte slice intended to hold sensitive
// material such as account passwords. Formatting and JSON marshaling are
// redacted so a password never ends up in a log line by accident.
type Secret []byte

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter to ensure `%v`, `%#v` and friends are redacted.
func (s Secret) Format(f fmt.State, c rune) {
	_, _ = io.WriteString(f, redacted)
}

// GoString redacts `%#v`.
func (s Secret) GoString() string { return redacted }

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// Reveal returns the plain text. Only request builders should call it.
func (s Secret) Reveal() string { return string(s) }

// Empty reports whether the secret holds no bytes.
func (s Secret) Empty() bool { return len(s) == 0 }

// Zero overwrites the underlying byte slice with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}

// FromString creates a Secret from a string input.
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromBytes creates a Secret from bytes (it makes a copy).
func FromBytes(in []byte) Secret {
	out := make([]byte, len(in))
	copy(out, in)
	return Secret(out)
}
