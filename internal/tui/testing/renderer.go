// Package testing provides test utilities for TUI components.
package testing

import (
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains all commands returned by Update calls
	Commands []tea.Cmd

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Commands: make([]tea.Cmd, 0),
		Messages: make([]tea.Msg, 0),
	}
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

// LastCommand returns the most recent command, or nil if none was generated.
func (r *TestRenderer) LastCommand() tea.Cmd {
	if len(r.Commands) == 0 {
		return nil
	}
	return r.Commands[len(r.Commands)-1]
}

// StripANSI returns the last output without ANSI escape codes.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Output, "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Commands = nil
	r.Messages = nil
	r.UpdateCount = 0
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// Collect runs cmd and returns every message it produces, flattening
// tea.Batch and tea.Sequence results in order. Commands that block (ticks)
// block Collect too, so filter them out with skip when needed.
func Collect(cmd tea.Cmd, skip ...func(tea.Msg) bool) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if msg == nil {
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		return collectAll(batch, skip)
	}

	// tea.Sequence yields an unexported []tea.Cmd.
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		cmds := make([]tea.Cmd, v.Len())
		for i := range cmds {
			cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
		}
		return collectAll(cmds, skip)
	}

	for _, s := range skip {
		if s(msg) {
			return nil
		}
	}
	return []tea.Msg{msg}
}

func collectAll(cmds []tea.Cmd, skip []func(tea.Msg) bool) []tea.Msg {
	var msgs []tea.Msg
	for _, c := range cmds {
		msgs = append(msgs, Collect(c, skip...)...)
	}
	return msgs
}

// Feed sends msgs to model one after another and returns the final model
// together with the commands it produced.
func (r *TestRenderer) Feed(model tea.Model, msgs ...tea.Msg) (tea.Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		var cmd tea.Cmd
		model, cmd = r.Update(model, msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return model, cmds
}
