// Package activity holds the per-view activity log: a short,
// most-recent-first record of what the user triggered. It lives for the
// page session only and is never persisted.
package activity

import (
	"sync"
	"time"
)

// DefaultCap bounds the per-view log. Pushing an entry past the cap
// evicts the oldest.
const DefaultCap = 10

// Entry is one human-readable activity record, timestamped at creation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Log is a bounded most-recent-first activity log. It is only ever
// mutated by request handlers, but stays safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// NewLog returns a log bounded at DefaultCap.
func NewLog() *Log {
	return NewLogWithCap(DefaultCap)
}

// NewLogWithCap returns a log bounded at c entries. Non-positive caps fall
// back to DefaultCap.
func NewLogWithCap(c int) *Log {
	if c <= 0 {
		c = DefaultCap
	}
	return &Log{cap: c, entries: make([]Entry, 0, c)}
}

// Append prepends a timestamped entry, discarding the oldest entry once
// the cap is exceeded.
func (l *Log) Append(message string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{Timestamp: time.Now(), Message: message}
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
	return e
}

// Entries returns a copy of the log, most recent first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the current entry count.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the log. Clearing an empty log is a no-op.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}
