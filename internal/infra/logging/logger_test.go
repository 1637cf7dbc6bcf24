package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew_WritesAtLevel(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	// Execute
	logger.Info("report cached", "project", "NGINX")

	// Assert
	assert.Contains(t, buf.String(), "report cached")
	assert.Contains(t, buf.String(), "project=NGINX")
}

func TestNew_SuppressesBelowLevel(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	// Execute
	logger.Info("not shown")
	logger.Warn("shown")

	// Assert
	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}
