// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package prompt

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type settledMsg struct {
	failure string
	err     error
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	result  settledMsg
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = blue
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + "  " + m.label
}

// runSpinner renders a bubbletea spinner on out until op returns. The
// program never reads input, so prompts before and after stay untouched.
func runSpinner(ctx context.Context, out io.Writer, label string, op func(ctx context.Context) (string, error)) (string, error) {
	p := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(out), tea.WithInput(nil), tea.WithoutSignalHandler())

	settled := make(chan settledMsg, 1)
	go func() {
		failure, err := op(ctx)
		res := settledMsg{failure: failure, err: err}
		settled <- res
		p.Send(res)
	}()

	// A render failure does not change the operation's outcome.
	_, _ = p.Run()
	res := <-settled
	return res.failure, res.err
}
