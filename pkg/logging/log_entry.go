package logging

// LogEntry represents a structured log record with fields relevant to
// learning-run orchestration.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Engine-specific fields
	ModeID  string // The learning mode emitting the record
	RunID   string // The learn invocation being traced
	Latency int64  // Operation duration in milliseconds

	// General structured data
	Fields map[string]interface{}
}
