package fault

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"faultline/internal/activity"
	"faultline/internal/monitor"
	"faultline/internal/sched"
)

const (
	maxRecursionDepth = 10000
	growthChunkBytes  = 1 << 20

	defaultDeferDelay  = 250 * time.Millisecond
	defaultGrowthTick  = 100 * time.Millisecond
	defaultGrowthBound = 5 * time.Second

	// A reserved TLD guarantees the lookup fails the same way everywhere.
	defaultUnreachableURL = "http://unreachable.invalid/api/users"

	malformedPayload = `{invalid: json, missing: "quotes"}`
)

// Service executes the trigger catalog. Every action performs its side
// effect exactly once per invocation, and none of them recovers from its
// own fault: the surrounding boundary and the scheduler's run loop are
// the only recovery points.
type Service struct {
	log   *slog.Logger
	mon   monitor.Client
	sched *sched.Scheduler

	httpClient     *http.Client
	unreachableURL string
	deferDelay     time.Duration
	growthTick     time.Duration
	growthBound    time.Duration

	growthLive atomic.Int64
}

// Option tweaks Service timings and collaborators; tests shrink the demo
// delays to keep the suite fast.
type Option func(*Service)

func WithDeferDelay(d time.Duration) Option {
	return func(s *Service) { s.deferDelay = d }
}

func WithGrowthTimings(tick, bound time.Duration) Option {
	return func(s *Service) {
		s.growthTick = tick
		s.growthBound = bound
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpClient = c }
}

func WithUnreachableURL(u string) Option {
	return func(s *Service) { s.unreachableURL = u }
}

// NewService builds the trigger executor.
func NewService(log *slog.Logger, mon monitor.Client, scheduler *sched.Scheduler, opts ...Option) *Service {
	s := &Service{
		log:            log,
		mon:            mon,
		sched:          scheduler,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		unreachableURL: defaultUnreachableURL,
		deferDelay:     defaultDeferDelay,
		growthTick:     defaultGrowthTick,
		growthBound:    defaultGrowthBound,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the trigger, appending one activity entry before the
// effect. Synchronous faults propagate as panics; Run only returns an
// error for a kind it does not know.
func (s *Service) Run(t Trigger, log *activity.Log) error {
	if log != nil {
		log.Append("triggered: " + t.Title)
	}
	switch t.Kind {
	case KindPanic:
		s.Panic()
	case KindDeferredPanic:
		s.DeferredPanic()
	case KindRejection:
		s.Rejection()
	case KindOverflow:
		s.Overflow()
	case KindParse:
		s.ParseMalformed()
	case KindNetwork:
		s.FetchUnreachable()
	case KindGrowth:
		s.SimulateGrowth()
	case KindMessage:
		s.ReportMessage()
	case KindBreadcrumbs:
		s.BreadcrumbTrail()
	case KindBusiness:
		s.BusinessFailure()
	default:
		return fmt.Errorf("unknown trigger kind %q", t.Kind)
	}
	return nil
}

// Panic raises a fixed-message error up through the view boundary into the
// outermost recovery handler.
func (s *Service) Panic() {
	panic(ErrDemoPanic)
}

// DeferredPanic schedules a panic outside the request stack. No handler on
// the triggering call path can reach it; only the scheduler's run-loop
// recover observes it.
func (s *Service) DeferredPanic() {
	s.sched.After(s.deferDelay, func() {
		panic(ErrDeferredPanic)
	})
}

// Rejection submits a failing background task that nothing awaits.
func (s *Service) Rejection() {
	s.sched.Go(func() error {
		return ErrRejection
	})
}

// Overflow recurses on an explicit depth counter and raises a controlled
// error at depth 10001, never relying on the host stack limit.
func (s *Service) Overflow() {
	var recurse func(depth int)
	recurse = func(depth int) {
		if depth > maxRecursionDepth {
			panic(&OverflowError{Depth: depth})
		}
		recurse(depth + 1)
	}
	recurse(1)
}

// ParseMalformed strict-decodes a payload that is malformed by
// construction, so the failure is deterministic.
func (s *Service) ParseMalformed() {
	var out map[string]any
	if err := json.Unmarshal([]byte(malformedPayload), &out); err != nil {
		panic(fmt.Errorf("parse demo payload: %w", err))
	}
	panic(errors.New("malformed payload unexpectedly parsed"))
}

// FetchUnreachable requests a fixed unreachable address and re-raises the
// transport failure with a descriptive prefix.
func (s *Service) FetchUnreachable() {
	resp, err := s.httpClient.Get(s.unreachableURL)
	if err != nil {
		panic(fmt.Errorf("failed to fetch user data: %w", err))
	}
	resp.Body.Close()
	panic(fmt.Errorf("failed to fetch user data: unexpected response from %s", s.unreachableURL))
}

// SimulateGrowth retains a large buffer on every tick and unconditionally
// stops after the wall-clock bound, releasing everything it held. The
// cancellation is internal; no user action can stop it earlier.
func (s *Service) SimulateGrowth() {
	var buffers [][]byte
	handle := s.sched.Every(s.growthTick, func() {
		buffers = append(buffers, make([]byte, growthChunkBytes))
		s.growthLive.Store(int64(len(buffers)))
	})
	s.sched.After(s.growthBound, func() {
		handle.Cancel()
		released := len(buffers)
		buffers = nil
		s.growthLive.Store(0)
		s.log.Info("growth simulation stopped", "buffers_released", released)
	})
}

// LiveGrowthBuffers reports how many growth buffers are currently held.
func (s *Service) LiveGrowthBuffers() int64 {
	return s.growthLive.Load()
}

// ReportMessage calls the monitoring client's message entry point directly,
// demonstrating manual reporting without a fault.
func (s *Service) ReportMessage() {
	s.mon.CaptureMessage("manual report from the trigger catalog", monitor.Options{
		Level: monitor.LevelInfo,
		Tags:  map[string]string{"source": "trigger-catalog"},
		Contexts: map[string]monitor.Context{
			"demo": {
				"path": monitor.String("direct-report"),
			},
		},
	})
}

// BreadcrumbTrail appends an ordered trail to the client, then performs a
// deferred panic so the resulting report carries the trail.
func (s *Service) BreadcrumbTrail() {
	trail := []monitor.Breadcrumb{
		{Category: "navigation", Message: "user opened the trigger catalog", Level: monitor.LevelInfo},
		{Category: "ui.click", Message: "user armed the breadcrumb demo", Level: monitor.LevelInfo,
			Data: monitor.Context{"button": monitor.String("breadcrumbs")}},
		{Category: "demo", Message: "deferred panic scheduled", Level: monitor.LevelWarning},
	}
	for _, crumb := range trail {
		s.mon.AddBreadcrumb(crumb)
	}
	s.sched.After(s.deferDelay, func() {
		panic(ErrTrailPanic)
	})
}

// BusinessFailure constructs the custom business error, reports it with
// explicit tags and a context block, then raises it.
func (s *Service) BusinessFailure() {
	err := &BusinessError{
		Message: "business rule violated: order total below minimum",
		Code:    "ORDER_TOTAL_TOO_LOW",
		Context: monitor.Context{
			"order_id":      monitor.String("demo-4711"),
			"total_cents":   monitor.Int(137),
			"minimum_cents": monitor.Int(500),
			"items":         monitor.List{monitor.String("sticker"), monitor.String("badge")},
		},
	}
	s.mon.CaptureException(err, monitor.Options{
		Level: monitor.LevelError,
		Tags: map[string]string{
			"error_code": err.Code,
			"source":     "trigger-catalog",
		},
		Contexts: map[string]monitor.Context{
			"business": err.Context,
		},
	})
	panic(err)
}
