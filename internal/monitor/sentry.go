package monitor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// sentryClient adapts the Sentry SDK to the Client interface. It owns a
// dedicated hub so the demo's scope mutations never leak into the SDK's
// global hub.
type sentryClient struct {
	hub *sentry.Hub
	log *slog.Logger
}

func newSentryClient(cfg Config, log *slog.Logger) (*sentryClient, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Release:          cfg.Release,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("monitor: init client: %w", err)
	}

	scope := sentry.NewScope()
	// A server-side SDK has no session replay; the configured rates stay
	// visible on every report instead of driving behavior.
	scope.SetContext("sdk_options", sentry.Context{
		"replays_session_sample_rate":  cfg.ReplaySessionRate,
		"replays_on_error_sample_rate": cfg.ReplayErrorRate,
	})

	return &sentryClient{hub: sentry.NewHub(client, scope), log: log}, nil
}

func (c *sentryClient) CaptureException(err error, opts Options) string {
	id := uuid.NewString()
	c.hub.WithScope(func(scope *sentry.Scope) {
		applyOptions(scope, opts)
		scope.SetTag("report_id", id)
		c.hub.CaptureException(err)
	})
	c.log.Debug("exception reported", "report_id", id, "error", err)
	return id
}

func (c *sentryClient) CaptureMessage(text string, opts Options) string {
	id := uuid.NewString()
	c.hub.WithScope(func(scope *sentry.Scope) {
		applyOptions(scope, opts)
		scope.SetTag("report_id", id)
		c.hub.CaptureMessage(text)
	})
	c.log.Debug("message reported", "report_id", id, "message", text)
	return id
}

func (c *sentryClient) AddBreadcrumb(crumb Breadcrumb) {
	c.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category:  crumb.Category,
		Message:   crumb.Message,
		Level:     sentryLevel(crumb.Level),
		Data:      crumb.Data.Native(),
		Timestamp: time.Now(),
	}, nil)
}

func (c *sentryClient) SetContext(key string, values Context) {
	c.hub.Scope().SetContext(key, sentry.Context(values.Native()))
}

func (c *sentryClient) Flush(timeout time.Duration) bool {
	return c.hub.Client().Flush(timeout)
}

func applyOptions(scope *sentry.Scope, opts Options) {
	if opts.Level != "" {
		scope.SetLevel(sentryLevel(opts.Level))
	}
	for k, v := range opts.Tags {
		scope.SetTag(k, v)
	}
	for name, block := range opts.Contexts {
		scope.SetContext(name, sentry.Context(block.Native()))
	}
}

func sentryLevel(l Level) sentry.Level {
	switch l {
	case LevelDebug:
		return sentry.LevelDebug
	case LevelWarning:
		return sentry.LevelWarning
	case LevelError:
		return sentry.LevelError
	case LevelFatal:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}
