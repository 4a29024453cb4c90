package monitor

import "time"

// Noop satisfies Client when monitoring is disabled. Every entry point
// succeeds and reports nothing, so callers never branch on the mode.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) CaptureException(error, Options) string { return "" }
func (Noop) CaptureMessage(string, Options) string  { return "" }
func (Noop) AddBreadcrumb(Breadcrumb)               {}
func (Noop) SetContext(string, Context)             {}
func (Noop) Flush(time.Duration) bool               { return true }
