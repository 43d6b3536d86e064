package logging

import "context"

type contextKey string

const (
	modeIDKey contextKey = "adapt-mode-id"
	runIDKey  contextKey = "adapt-run-id"
)

// WithModeID annotates a context with the learning mode identifier.
func WithModeID(ctx context.Context, modeID string) context.Context {
	return context.WithValue(ctx, modeIDKey, modeID)
}

// GetModeID retrieves the learning mode identifier from the context.
func GetModeID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(modeIDKey).(string)
	return v, ok
}

// WithRunID annotates a context with the identifier of one learn invocation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the learn invocation identifier from the context.
func GetRunID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey).(string)
	return v, ok
}
