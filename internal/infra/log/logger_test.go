package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"locator/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSONCarriesService(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.Env.ServiceName = "locator"
	cfg.Env.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := newLogger(&buf, cfg)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", slog.String("view_id", "v1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "locator", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "v1", record["view_id"])
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "loud"

	_, err := newLogger(&bytes.Buffer{}, cfg)
	assert.Error(t, err)
}
