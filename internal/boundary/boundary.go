// Package boundary implements the per-view fault boundary: an observer
// that records the most recent panic raised while serving a view and then
// re-raises it. It is not a firewall; the outer recovery middleware still
// sees every fault.
package boundary

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"faultline/internal/platform/metrics"
)

// Captured is the most recent fault intercepted by a view boundary.
type Captured struct {
	Message string    `json:"message"`
	Info    string    `json:"info"`
	At      time.Time `json:"at"`
}

// State retains at most one captured fault. A new interception overwrites
// the previous one; nothing queues and nothing retries.
type State struct {
	mu   sync.Mutex
	last *Captured
}

func NewState() *State {
	return &State{}
}

// Record overwrites the retained fault with err and its contextual info.
func (s *State) Record(err error, info string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &Captured{Message: err.Error(), Info: info, At: time.Now()}
}

// Last returns the retained fault, if any.
func (s *State) Last() (Captured, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Captured{}, false
	}
	return *s.last, true
}

// Clear dismisses the retained fault. Clearing an empty state is a no-op.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
}

// Middleware wraps a view's routes with the observe-and-repanic boundary.
// A nil m disables the catch counter.
func Middleware(state *State, view string, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					state.Record(asError(rec), fmt.Sprintf("view %s: %s %s", view, r.Method, r.URL.Path))
					if m != nil {
						m.BoundaryCatches.WithLabelValues(view).Inc()
					}
					panic(rec)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func asError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
