package logging

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryOutput collects entries for assertions.
type memoryOutput struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (m *memoryOutput) Write(e LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryOutput) Sync() error  { return nil }
func (m *memoryOutput) Close() error { return nil }

func (m *memoryOutput) all() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry{}, m.entries...)
}

func TestLoggerSeverityFiltering(t *testing.T) {
	out := &memoryOutput{}
	logger := NewLogger(Config{Severity: WARN, Outputs: []Output{out}})

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	entries := out.all()
	require.Len(t, entries, 2)
	assert.Equal(t, WARN, entries[0].Severity)
	assert.Equal(t, "warn message", entries[0].Message)
	assert.Equal(t, ERROR, entries[1].Severity)
}

func TestLoggerContextFields(t *testing.T) {
	out := &memoryOutput{}
	logger := NewLogger(Config{Severity: DEBUG, Outputs: []Output{out}})

	ctx := WithRunID(WithModeID(context.Background(), "online_learning"), "run-42")
	logger.Info(ctx, "stage complete: %s", "extract")

	entries := out.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "online_learning", entries[0].ModeID)
	assert.Equal(t, "run-42", entries[0].RunID)
	assert.Equal(t, "stage complete: extract", entries[0].Message)
	assert.NotEmpty(t, entries[0].File)
}

func TestLoggerDefaultFields(t *testing.T) {
	out := &memoryOutput{}
	logger := NewLogger(Config{
		Severity: DEBUG,
		Outputs:  []Output{out},
		DefaultFields: map[string]interface{}{
			"component": "engine",
		},
	})

	logger.Info(context.Background(), "hello")

	entries := out.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "engine", entries[0].Fields["component"])
}

func TestGlobalLogger(t *testing.T) {
	out := &memoryOutput{}
	custom := NewLogger(Config{Severity: DEBUG, Outputs: []Output{out}})

	prev := GetLogger()
	SetLogger(custom)
	defer SetLogger(prev)

	assert.Same(t, custom, GetLogger())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
	}{
		{"DEBUG", DEBUG},
		{"INFO", INFO},
		{"WARN", WARN},
		{"ERROR", ERROR},
		{"FATAL", FATAL},
		{"garbage", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.input))
		})
	}
}
