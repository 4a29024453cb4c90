// Package monitortest provides a recording monitor.Client for tests.
// Nothing in the repository can verify delivery to a real backend, so the
// suite asserts against the recorded entry-point calls instead.
package monitortest

import (
	"sync"
	"time"

	"faultline/internal/monitor"
)

// Capture is one recorded CaptureException or CaptureMessage call.
type Capture struct {
	Err     error
	Message string
	Opts    monitor.Options
}

// Recorder implements monitor.Client by recording every call.
type Recorder struct {
	mu          sync.Mutex
	exceptions  []Capture
	messages    []Capture
	breadcrumbs []monitor.Breadcrumb
	contexts    map[string]monitor.Context
	flushes     int
}

func NewRecorder() *Recorder {
	return &Recorder{contexts: make(map[string]monitor.Context)}
}

func (r *Recorder) CaptureException(err error, opts monitor.Options) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exceptions = append(r.exceptions, Capture{Err: err, Opts: opts})
	return "test-exception"
}

func (r *Recorder) CaptureMessage(text string, opts monitor.Options) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Capture{Message: text, Opts: opts})
	return "test-message"
}

func (r *Recorder) AddBreadcrumb(crumb monitor.Breadcrumb) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breadcrumbs = append(r.breadcrumbs, crumb)
}

func (r *Recorder) SetContext(key string, values monitor.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[key] = values
}

func (r *Recorder) Flush(time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes++
	return true
}

// Exceptions returns a copy of the recorded exception captures.
func (r *Recorder) Exceptions() []Capture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Capture(nil), r.exceptions...)
}

// Messages returns a copy of the recorded message captures.
func (r *Recorder) Messages() []Capture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Capture(nil), r.messages...)
}

// Breadcrumbs returns a copy of the recorded breadcrumbs in order.
func (r *Recorder) Breadcrumbs() []monitor.Breadcrumb {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]monitor.Breadcrumb(nil), r.breadcrumbs...)
}

// ContextBlock returns the context recorded under key, if any.
func (r *Recorder) ContextBlock(key string) (monitor.Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contexts[key]
	return c, ok
}
