package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/appraise/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive predictor and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Client == nil {
		return fmt.Errorf("%w: prediction client is required", common.ErrMissingConfig)
	}

	// Cancel on signal for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := newModel(cfg)
	if cfg.Record {
		recorder, err := NewRecorder(cfg.RecordDir)
		if err != nil {
			return err
		}
		defer recorder.Close()
		m.recorder = recorder
		common.LogInfo("recording TUI frames", common.Fields{"dir": recorder.Dir()})
	}

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
