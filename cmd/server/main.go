package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"faultline/internal/fault"
	"faultline/internal/monitor"
	"faultline/internal/platform/config"
	"faultline/internal/platform/httpserver"
	"faultline/internal/platform/logger"
	"faultline/internal/platform/metrics"
	"faultline/internal/sched"
	httptransport "faultline/internal/transport/http"
	"faultline/internal/view"
	viewhandler "faultline/internal/view/handler"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// The trigger catalog, the scheduler, and the monitoring bootstrap live in
// internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("config error", "error", err)
		os.Exit(1)
	}

	mon, err := monitor.Init(cfg.Production(),
		monitor.DefaultConfig(cfg.Version, cfg.Mode, cfg.MonitorDSN), log)
	if err != nil {
		log.Error("monitoring init failed", "error", err)
		os.Exit(1)
	}

	mon.SetContext("app", monitor.Context{
		"version": monitor.String(cfg.Version),
		"mode":    monitor.String(cfg.Mode),
	})

	m := metrics.New()
	mon = monitor.Instrumented(mon, m.ReportsEmitted)

	// The scheduler's handlers are the process-wide observers for faults
	// that escape every request stack.
	scheduler := sched.New(log,
		func(err error) {
			m.SchedulerPanics.Inc()
			mon.CaptureException(err, monitor.Options{
				Level: monitor.LevelError,
				Tags:  map[string]string{"origin": "scheduler"},
			})
		},
		func(err error) {
			m.UnhandledRejections.Inc()
			mon.CaptureException(err, monitor.Options{
				Level: monitor.LevelWarning,
				Tags:  map[string]string{"origin": "rejection"},
			})
		},
	)

	views := view.NewRegistry()
	svc := fault.NewService(log, mon, scheduler)
	handler := viewhandler.New(views, svc, log, m)
	router := httptransport.NewRouter(handler, log, mon, m)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting faultline", "addr", cfg.Addr, "mode", cfg.Mode, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	// Fire-and-forget delivery gets one last chance on the way out.
	mon.Flush(2 * time.Second)
	log.Info("faultline stopped")
}
