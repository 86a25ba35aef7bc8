package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewUserError("Could not reach the prediction service", inner)

	assert.Equal(t, "Could not reach the prediction service: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewUserError("Nothing to do", nil)
	assert.Equal(t, "Nothing to do", bare.Error())
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "fallback", MessageOf(nil, "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New(""), "fallback"))
	assert.Equal(t, "boom", MessageOf(errors.New("boom"), "fallback"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	logger.Info("prediction received", "model", "random_forest")
	assert.Contains(t, buf.String(), `"model":"random_forest"`)

	buf.Reset()
	logger, err = NewLogger(&buf, slog.LevelWarn, "console")
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
