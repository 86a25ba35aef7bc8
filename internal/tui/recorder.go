package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder captures every message and the frame it produced for debugging.
type Recorder struct {
	logFile  *os.File
	logger   *slog.Logger
	frameDir string
	frameNum int
}

// NewRecorder creates a recorder writing into dir, or into a fresh temp
// directory when dir is empty.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), fmt.Sprintf("appraise-record-%d", time.Now().Unix()))
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create recording directory: %w", err)
	}

	logPath := filepath.Join(dir, "tui.log")
	logFile, err := os.Create(filepath.Clean(logPath)) // #nosec G304 -- safe constructed path
	if err != nil {
		return nil, fmt.Errorf("failed to create recording log: %w", err)
	}

	r := &Recorder{
		logFile:  logFile,
		logger:   slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})),
		frameDir: dir,
	}
	r.logger.Info("recording started", "dir", dir)
	return r, nil
}

// Dir returns the directory frames are written to.
func (r *Recorder) Dir() string { return r.frameDir }

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int { return r.frameNum }

// RecordState captures the model after it handled msg.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	r.frameNum++

	r.logger.Debug("frame",
		"frame", r.frameNum,
		"msg_type", fmt.Sprintf("%T", msg),
		"focus", m.focus,
		"loading", m.loading,
		"error", m.errMsg,
		"error_seq", m.errSeq,
		"model_ready", m.modelReady(),
		"form_phase", m.form.Phase(),
	)

	view := m.View()
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.logger.Error("failed to save frame", "frame", r.frameNum, "error", err)
	}
}

// Close flushes and closes the recording log.
func (r *Recorder) Close() {
	if r.logFile == nil {
		return
	}
	r.logger.Info("recording complete", "frames", r.frameNum, "dir", r.frameDir)
	_ = r.logFile.Close() // Best effort close
}
