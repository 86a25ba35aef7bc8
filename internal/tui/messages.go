package tui

import "github.com/Veraticus/appraise/internal/model"

// healthCheckedMsg carries the outcome of a model health check.
type healthCheckedMsg struct {
	err    error
	health model.ModelHealthResponse
}

// dismissErrorMsg clears the error banner if it is still the one numbered seq.
type dismissErrorMsg struct {
	seq int
}
