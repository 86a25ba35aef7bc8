package testing

import (
	"fmt"
	"strings"
)

// StateMatcher collects assertions about rendered views and reports them together.
type StateMatcher struct {
	failures []string
}

// NewStateMatcher creates a new state matcher.
func NewStateMatcher() *StateMatcher {
	return &StateMatcher{
		failures: make([]string, 0),
	}
}

// ViewContains asserts that the ANSI-stripped view contains expected.
func (m *StateMatcher) ViewContains(view, expected string) *StateMatcher {
	if !strings.Contains(StripANSI(view), expected) {
		m.failures = append(m.failures, fmt.Sprintf("view does not contain '%s'", expected))
	}
	return m
}

// ViewNotContains asserts that the ANSI-stripped view does not contain unexpected.
func (m *StateMatcher) ViewNotContains(view, unexpected string) *StateMatcher {
	if strings.Contains(StripANSI(view), unexpected) {
		m.failures = append(m.failures, fmt.Sprintf("view contains unexpected '%s'", unexpected))
	}
	return m
}

// ViewContainsInOrder asserts that every expected string appears, in order.
func (m *StateMatcher) ViewContainsInOrder(view string, expected ...string) *StateMatcher {
	if !ContainsInOrder(StripANSI(view), expected...) {
		m.failures = append(m.failures, fmt.Sprintf("view does not contain %q in order", expected))
	}
	return m
}

// LineContains asserts that a specific line contains the expected text.
func (m *StateMatcher) LineContains(view string, lineNum int, expected string) *StateMatcher {
	lines := strings.Split(view, "\n")

	if lineNum < 0 || lineNum >= len(lines) {
		m.failures = append(m.failures, fmt.Sprintf("line %d out of bounds (total lines: %d)", lineNum, len(lines)))
		return m
	}

	line := StripANSI(lines[lineNum])
	if !strings.Contains(line, expected) {
		m.failures = append(m.failures, fmt.Sprintf("line %d does not contain '%s': '%s'", lineNum, expected, line))
	}
	return m
}

// CommandCount verifies the expected number of commands were generated.
func (m *StateMatcher) CommandCount(renderer *TestRenderer, expected int) *StateMatcher {
	actual := len(renderer.Commands)
	if actual != expected {
		m.failures = append(m.failures, fmt.Sprintf("command count mismatch: got %d, want %d", actual, expected))
	}
	return m
}

// NoCommands verifies that no commands were generated.
func (m *StateMatcher) NoCommands(renderer *TestRenderer) *StateMatcher {
	return m.CommandCount(renderer, 0)
}

// Check returns an error if any assertions failed.
func (m *StateMatcher) Check() error {
	if len(m.failures) > 0 {
		return fmt.Errorf("state assertions failed:\n%s", strings.Join(m.failures, "\n"))
	}
	return nil
}
