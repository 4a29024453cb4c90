// Package sched runs deferred and repeating demo tasks on a single
// goroutine, mirroring the single-threaded cooperative model the trigger
// catalog assumes: tasks execute one at a time in arrival order, and every
// timer hands back an explicit cancellation handle.
package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of work executed on the scheduler goroutine.
type Task func()

// Handle cancels a pending or repeating task. Cancel is idempotent and
// safe to call after the task has fired.
type Handle struct {
	cancel func()
}

func (h *Handle) Cancel() {
	if h != nil && h.cancel != nil {
		h.cancel()
	}
}

// Scheduler executes submitted tasks sequentially. A panic inside a task is
// routed to the panic handler instead of crashing the process: the run loop
// is the process-wide analog of a global unhandled-error handler. An error
// returned by a background task that nothing awaits is routed to the
// rejection handler.
type Scheduler struct {
	log         *slog.Logger
	tasks       chan Task
	quit        chan struct{}
	onPanic     func(error)
	onRejection func(error)
}

// New builds a scheduler. Either handler may be nil, in which case the
// corresponding failures are only logged.
func New(log *slog.Logger, onPanic, onRejection func(error)) *Scheduler {
	return &Scheduler{
		log:         log,
		tasks:       make(chan Task, 64),
		quit:        make(chan struct{}),
		onPanic:     onPanic,
		onRejection: onRejection,
	}
}

// Run drains the queue until ctx is cancelled. Run may be called once;
// after it returns, submissions are dropped instead of blocking.
func (s *Scheduler) Run(ctx context.Context) error {
	defer close(s.quit)
	for {
		select {
		case <-ctx.Done():
			return nil
		case task := <-s.tasks:
			s.execute(task)
		}
	}
}

// Submit queues fn for execution in arrival order. A timer firing during
// shutdown must not strand its goroutine, so submission never blocks on a
// stopped scheduler.
func (s *Scheduler) Submit(fn Task) {
	if fn == nil {
		return
	}
	select {
	case s.tasks <- fn:
	case <-s.quit:
	}
}

// After runs fn on the scheduler once d has elapsed. Cancelling the handle
// before the delay expires suppresses the task.
func (s *Scheduler) After(d time.Duration, fn Task) *Handle {
	t := time.AfterFunc(d, func() { s.Submit(fn) })
	return &Handle{cancel: func() { t.Stop() }}
}

// Every runs fn on the scheduler at each tick of d until the handle is
// cancelled. A tick already sitting in the queue re-checks the handle when
// its turn comes, so no tick starts once Cancel has returned; in
// particular a cancellation issued from an earlier queued task is final.
func (s *Scheduler) Every(d time.Duration, fn Task) *Handle {
	done := make(chan struct{})
	var once sync.Once
	guarded := func() {
		select {
		case <-done:
			return
		default:
		}
		fn()
	}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.Submit(guarded)
			}
		}
	}()
	return &Handle{cancel: func() { once.Do(func() { close(done) }) }}
}

// Go queues a background task whose error result has no awaiter. A non-nil
// error is handed to the rejection handler, the analog of an
// unhandled-rejection hook.
func (s *Scheduler) Go(fn func() error) {
	s.Submit(func() {
		if err := fn(); err != nil {
			s.log.Warn("unhandled rejection", "error", err)
			if s.onRejection != nil {
				s.onRejection(err)
			}
		}
	})
}

func (s *Scheduler) execute(task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			err := recoveredError(rec)
			s.log.Error("scheduled task panicked", "error", err)
			if s.onPanic != nil {
				s.onPanic(err)
			}
		}
	}()
	task()
}

func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
