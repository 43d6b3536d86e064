package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 10000, cfg.Stores.TaskCapacity)
	assert.Equal(t, 50000, cfg.Stores.EventCapacity)
	assert.False(t, cfg.Stores.Persist)
	require.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	data := []byte(`
logging:
  level: DEBUG
stores:
  task_capacity: 100
  event_capacity: 500
  retention: 1h
modes:
  online_learning:
    event_threshold: 0.4
    seed: 7
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Stores.TaskCapacity)
	assert.Equal(t, 500, cfg.Stores.EventCapacity)
	assert.Equal(t, time.Hour, cfg.Stores.Retention.Std())

	mode, ok := cfg.Modes["online_learning"]
	require.True(t, ok)
	require.NotNil(t, mode.EventThreshold)
	assert.Equal(t, 0.4, *mode.EventThreshold)
	require.NotNil(t, mode.Seed)
	assert.Equal(t, int64(7), *mode.Seed)

	// Unset fields keep defaults
	assert.Equal(t, 10000, cfg.Stores.PerformanceCapacity)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad log level",
			yaml: "logging:\n  level: LOUD\n",
		},
		{
			name: "negative capacity",
			yaml: "stores:\n  task_capacity: -1\n",
		},
		{
			name: "threshold out of range",
			yaml: "modes:\n  active_learning:\n    event_threshold: 1.5\n",
		},
		{
			name: "persist without path",
			yaml: "stores:\n  persist: true\n",
		},
		{
			name: "malformed yaml",
			yaml: "stores: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Config.Stores.TaskCapacity", Tag: "min"},
		{Field: "Config.Logging.Level", Tag: "oneof"},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "TaskCapacity")
	assert.Contains(t, msg, "Level")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adapt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: WARN\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Logging.Level)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
