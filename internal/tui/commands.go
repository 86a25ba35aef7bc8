package tui

import (
	"context"
	"time"

	"github.com/Veraticus/appraise/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

// checkHealth asks the service whether a model is loaded.
func (m Model) checkHealth() tea.Cmd {
	client := m.client
	timeout := m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		health, err := client.CheckHealth(ctx)
		if err != nil {
			common.LogError(err, "model health check failed", nil)
			return healthCheckedMsg{err: err}
		}

		common.LogDebug("model health checked", common.Fields{
			"status":       health.Status,
			"model_loaded": health.ModelLoaded,
			"model_type":   health.ModelTypeOrEmpty(),
		})
		return healthCheckedMsg{health: health}
	}
}

// dismissErrorAfter schedules the removal of error banner seq.
func dismissErrorAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissErrorMsg{seq: seq}
	})
}
