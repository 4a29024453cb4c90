// Package monitor wraps the external error-monitoring SDK behind a small
// reporting surface. The rest of the process receives a Client handle at
// construction time instead of reaching for ambient global state, and a
// no-op handle stands in whenever monitoring is disabled.
package monitor

import "time"

// Level classifies reports and breadcrumbs.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// Breadcrumb is one ordered trail entry recording a preceding event,
// attached by the SDK to subsequent reports for context.
type Breadcrumb struct {
	Category string
	Message  string
	Level    Level
	Data     Context
}

// Options enrich a single report.
type Options struct {
	Level    Level
	Tags     map[string]string
	Contexts map[string]Context
}

// Client is the reporting surface the rest of the process depends on.
// Implementations must be safe for concurrent use. Capture calls return a
// report id for log correlation; delivery itself is fire-and-forget.
type Client interface {
	CaptureException(err error, opts Options) string
	CaptureMessage(text string, opts Options) string
	AddBreadcrumb(crumb Breadcrumb)
	SetContext(key string, values Context)
	Flush(timeout time.Duration) bool
}
