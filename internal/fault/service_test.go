package fault

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/activity"
	"faultline/internal/monitor/monitortest"
	"faultline/internal/sched"
)

type harness struct {
	svc      *Service
	mon      *monitortest.Recorder
	sched    *sched.Scheduler
	panics   chan error
	rejected chan error
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		mon:      monitortest.NewRecorder(),
		panics:   make(chan error, 16),
		rejected: make(chan error, 16),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := sched.New(log,
		func(err error) { h.panics <- err },
		func(err error) { h.rejected <- err },
	)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = scheduler.Run(ctx) }()
	h.sched = scheduler

	opts = append([]Option{WithDeferDelay(5 * time.Millisecond)}, opts...)
	h.svc = NewService(log, h.mon, scheduler, opts...)
	return h
}

func recoverFrom(fn func()) (recovered any) {
	defer func() { recovered = recover() }()
	fn()
	return nil
}

func TestPanicRaisesFixedError(t *testing.T) {
	h := newHarness(t)
	rec := recoverFrom(h.svc.Panic)
	require.Equal(t, ErrDemoPanic, rec)
}

func TestDeferredPanicEscapesCaller(t *testing.T) {
	h := newHarness(t)

	// The triggering call itself never panics.
	rec := recoverFrom(h.svc.DeferredPanic)
	require.Nil(t, rec)

	select {
	case err := <-h.panics:
		require.ErrorIs(t, err, ErrDeferredPanic)
	case <-time.After(time.Second):
		t.Fatal("deferred panic never reached the global handler")
	}

	// Exactly one.
	select {
	case <-h.panics:
		t.Fatal("deferred panic fired more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRejectionReachesRejectionHandler(t *testing.T) {
	h := newHarness(t)
	h.svc.Rejection()

	select {
	case err := <-h.rejected:
		require.ErrorIs(t, err, ErrRejection)
	case <-time.After(time.Second):
		t.Fatal("rejection never reached the handler")
	}
	select {
	case <-h.rejected:
		t.Fatal("rejection delivered more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOverflowRaisesAtControlledDepth(t *testing.T) {
	h := newHarness(t)
	rec := recoverFrom(h.svc.Overflow)
	require.NotNil(t, rec)

	var overflow *OverflowError
	require.True(t, errors.As(rec.(error), &overflow))
	assert.Equal(t, maxRecursionDepth+1, overflow.Depth)
	assert.Contains(t, overflow.Error(), "10001")
}

func TestParseMalformedAlwaysFails(t *testing.T) {
	h := newHarness(t)
	rec := recoverFrom(h.svc.ParseMalformed)
	require.NotNil(t, rec)

	err, ok := rec.(error)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "parse demo payload")
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestFetchUnreachableWrapsTransportError(t *testing.T) {
	h := newHarness(t, WithHTTPClient(&http.Client{Transport: failingTransport{}}))
	rec := recoverFrom(h.svc.FetchUnreachable)
	require.NotNil(t, rec)

	err, ok := rec.(error)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "failed to fetch user data")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSimulateGrowthHaltsAndReleases(t *testing.T) {
	h := newHarness(t, WithGrowthTimings(2*time.Millisecond, 30*time.Millisecond))
	h.svc.SimulateGrowth()

	require.Eventually(t, func() bool {
		return h.svc.LiveGrowthBuffers() > 0
	}, time.Second, time.Millisecond, "growth never allocated")

	require.Eventually(t, func() bool {
		return h.svc.LiveGrowthBuffers() == 0
	}, 2*time.Second, 5*time.Millisecond, "growth never released its buffers")

	// The interval is cancelled, not merely drained.
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, h.svc.LiveGrowthBuffers())
}

func TestSimulateGrowthReleaseIsFinal(t *testing.T) {
	h := newHarness(t, WithGrowthTimings(5*time.Millisecond, 20*time.Millisecond))
	h.svc.SimulateGrowth()

	// Stall the scheduler so growth ticks queue up behind the release
	// task; a queued tick must not re-allocate after release runs.
	h.sched.Submit(func() { time.Sleep(40 * time.Millisecond) })

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, h.svc.LiveGrowthBuffers(), "growth buffers held after release")
}

func TestReportMessageEmitsExactlyOneReport(t *testing.T) {
	h := newHarness(t)
	h.svc.ReportMessage()

	msgs := h.mon.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "manual report from the trigger catalog", msgs[0].Message)
	assert.Equal(t, "trigger-catalog", msgs[0].Opts.Tags["source"])
	assert.Empty(t, h.mon.Exceptions())
}

func TestBreadcrumbTrailPrecedesDeferredPanic(t *testing.T) {
	h := newHarness(t)
	h.svc.BreadcrumbTrail()

	crumbs := h.mon.Breadcrumbs()
	require.Len(t, crumbs, 3)
	assert.Equal(t, "navigation", crumbs[0].Category)
	assert.Equal(t, "ui.click", crumbs[1].Category)
	assert.Equal(t, "demo", crumbs[2].Category)

	select {
	case err := <-h.panics:
		require.ErrorIs(t, err, ErrTrailPanic)
	case <-time.After(time.Second):
		t.Fatal("trail panic never fired")
	}
}

func TestBusinessFailureReportsThenPanics(t *testing.T) {
	h := newHarness(t)
	rec := recoverFrom(h.svc.BusinessFailure)
	require.NotNil(t, rec)

	var business *BusinessError
	require.True(t, errors.As(rec.(error), &business))
	assert.Equal(t, "ORDER_TOTAL_TOO_LOW", business.Code)

	captures := h.mon.Exceptions()
	require.Len(t, captures, 1)
	assert.Equal(t, business, captures[0].Err)
	assert.Equal(t, "ORDER_TOTAL_TOO_LOW", captures[0].Opts.Tags["error_code"])
	require.Contains(t, captures[0].Opts.Contexts, "business")
}

func TestRunAppendsOneActivityEntry(t *testing.T) {
	h := newHarness(t)
	log := activity.NewLog()

	trigger, ok := Find(HomeCatalog(), "message")
	require.True(t, ok)
	require.NoError(t, h.svc.Run(trigger, log))

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "Direct report")
}

func TestRunUnknownKind(t *testing.T) {
	h := newHarness(t)
	err := h.svc.Run(Trigger{Slug: "bogus", Kind: Kind("bogus")}, nil)
	require.Error(t, err)
}

func TestCatalogs(t *testing.T) {
	home := HomeCatalog()
	about := AboutCatalog()
	assert.Len(t, home, 10)
	assert.Len(t, about, 4)

	// Every about trigger is also a home trigger.
	for _, t2 := range about {
		_, ok := Find(home, t2.Slug)
		assert.True(t, ok, "about trigger %q missing from home", t2.Slug)
	}

	_, ok := Find(home, "nope")
	assert.False(t, ok)
}
