// Package testing provides test utilities for TUI components.
package testing

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer captures the output of a Bubble Tea model without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains all commands returned by Update calls
	Commands []tea.Cmd

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	newModel, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = newModel.View()
	return newModel, cmd
}

// Feed runs cmd and sends every message it produces that keep accepts back
// into the model. Only one round is run; commands returned by those updates
// are recorded but not executed.
func (r *TestRenderer) Feed(model tea.Model, cmd tea.Cmd, keep func(tea.Msg) bool) tea.Model {
	for _, msg := range Exec(cmd, DefaultWait) {
		if keep != nil && !keep(msg) {
			continue
		}
		model, _ = r.Update(model, msg)
	}
	return model
}

// Plain returns the last output without ANSI codes.
func (r *TestRenderer) Plain() string {
	return StripANSI(r.Output)
}

// Lines returns the plain output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Plain(), "\n")
}

// DefaultWait bounds how long Exec waits for each command.
const DefaultWait = 500 * time.Millisecond

// Exec runs cmd and returns the messages it produced, flattening batches.
// Commands still running after wait, such as ticks, are dropped.
func Exec(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(wait):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	var out []tea.Msg
	for _, c := range batch {
		out = append(out, Exec(c, wait)...)
	}
	return out
}
