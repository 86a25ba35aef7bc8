package cli

import (
	"context"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinInterval = 100 * time.Millisecond

// Wait runs fn while an indeterminate spinner labeled description is shown on w.
// The spinner is cleared before Wait returns fn's error.
func Wait(ctx context.Context, w io.Writer, description string, fn func(context.Context) error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	ticker := time.NewTicker(spinInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			_ = bar.Finish() // Best effort clear
			return err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
