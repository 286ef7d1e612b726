package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestNewLogger tests level parsing and output routing
func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		opts  LoggerOptions
		level zerolog.Level
	}{
		{"debug level", LoggerOptions{Level: "debug", Format: "json"}, zerolog.DebugLevel},
		{"info level", LoggerOptions{Level: "info", Format: "json"}, zerolog.InfoLevel},
		{"warn level", LoggerOptions{Level: "warn", Format: "json"}, zerolog.WarnLevel},
		{"error level", LoggerOptions{Level: "error", Format: "json"}, zerolog.ErrorLevel},
		{"unknown defaults to info", LoggerOptions{Level: "bogus", Format: "json"}, zerolog.InfoLevel},
		{"verbose forces debug", LoggerOptions{Level: "error", Format: "json", Verbose: true}, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLogger(tt.opts)
			assert.Equal(t, tt.level, log.GetLevel())
		})
	}
}

// TestLogger_JSONOutput tests that JSON format writes structured lines
func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	log.Info().Str("tool", "get_stories").Msg("handled")

	out := buf.String()
	assert.Contains(t, out, `"tool":"get_stories"`)
	assert.Contains(t, out, `"message":"handled"`)
}

// TestLogger_WithComponent tests the component field helper
func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	log.WithComponent("hn").Info().Msg("ready")

	assert.Contains(t, buf.String(), `"component":"hn"`)
}

// TestNewNopLogger tests that the nop logger is silent
func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
