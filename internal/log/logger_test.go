package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "error", level: "error", expected: zerolog.ErrorLevel},
		{name: "empty falls back to warn", level: "", expected: zerolog.WarnLevel},
		{name: "unknown falls back to warn", level: "loud", expected: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNew_WritesAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithSpinner_ReturnsFnError(t *testing.T) {
	called := false
	err := WithSpinner("working", func() error {
		called = true

		return assert.AnError
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, assert.AnError)
}
