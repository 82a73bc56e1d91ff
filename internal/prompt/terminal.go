// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aumiao/aumiao/internal/security"
)

const (
	markStart  = "┌"
	markRail   = "│"
	markAsk    = "◆"
	markDone   = "◇"
	markFailed = "■"
	markEnd    = "└"
)

// ErrNoInput is returned when the input stream ends before a line is read.
var ErrNoInput = errors.New("no input available")

// Terminal is the Flow used on a real console. When in or out are not
// terminals it degrades to plain line-oriented I/O.
type Terminal struct {
	in      *bufio.Reader
	inFD    int
	inTTY   bool
	out     io.Writer
	spinner bool
}

// NewTerminal builds a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out, inFD: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.inFD = int(f.Fd())
		t.inTTY = true
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.spinner = true
	}
	return t
}

// Stdio is a Terminal on the process's standard streams.
func Stdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stderr)
}

// Start prints the flow header.
func (t *Terminal) Start(title string) {
	fmt.Fprintf(t.out, "%s  %s\n", Gray(markStart), title)
}

// Input reads one line of plain text.
func (t *Terminal) Input(label string) (string, error) {
	fmt.Fprintf(t.out, "%s\n%s  %s ", Gray(markRail), Blue(markAsk), label)
	return t.readLine()
}

// Password reads one line without echo when input is a terminal. A line
// already buffered by an earlier Input (pasted along with the username) is
// taken from the buffer instead of being dropped.
func (t *Terminal) Password(label string) (security.Secret, error) {
	fmt.Fprintf(t.out, "%s\n%s  %s ", Gray(markRail), Blue(markAsk), label)
	if t.inTTY && t.in.Buffered() == 0 {
		raw, err := term.ReadPassword(t.inFD)
		fmt.Fprintln(t.out)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		secret := security.FromBytes(raw)
		for i := range raw {
			raw[i] = 0
		}
		return secret, nil
	}
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	return security.FromString(line), nil
}

// Step draws n rail lines, then label if it is not empty.
func (t *Terminal) Step(label string, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		fmt.Fprintln(t.out, Gray(markRail))
	}
	if label != "" {
		fmt.Fprintf(t.out, "%s  %s\n", Gray(markRail), label)
	}
}

// WaitForLoading runs op behind a spinner on a terminal, or a plain status
// line otherwise, and marks the outcome once op returns.
func (t *Terminal) WaitForLoading(ctx context.Context, label string, op func(ctx context.Context) (string, error)) error {
	var (
		failure string
		err     error
	)
	if t.spinner {
		failure, err = runSpinner(ctx, t.out, label, op)
	} else {
		fmt.Fprintf(t.out, "%s  %s\n", Gray(markRail), label)
		failure, err = op(ctx)
	}

	switch {
	case err != nil:
		fmt.Fprintf(t.out, "%s  %s\n", Red(markFailed), err)
	case failure != "":
		fmt.Fprintf(t.out, "%s  %s\n", Red(markFailed), failure)
	default:
		fmt.Fprintf(t.out, "%s  %s\n", Green(markDone), label)
	}
	return err
}

// End prints the closing status line.
func (t *Terminal) End(message string) {
	fmt.Fprintf(t.out, "%s  %s\n", Gray(markEnd), message)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var _ Flow = (*Terminal)(nil)
