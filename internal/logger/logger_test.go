package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"DEBUG", slog.LevelDebug, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(Config{Level: "LOUD"})
	assert.Error(t, err)
}

func TestInitJSONFormat(t *testing.T) {
	err := Init(Config{Level: "DEBUG", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, Default())

	// restore defaults for other tests
	require.NoError(t, Init(Config{Level: "INFO", Format: "text"}))
}
