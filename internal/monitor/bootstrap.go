package monitor

import (
	"log/slog"
)

// Config carries the bootstrap knobs for the monitoring client.
type Config struct {
	DSN         string
	Release     string
	Environment string
	// TracesSampleRate is the fraction of performance traces to keep.
	TracesSampleRate float64
	// ReplaySessionRate and ReplayErrorRate mirror the browser SDK's
	// session-replay sampling. They are recorded on the client scope for
	// parity with the deployed configuration.
	ReplaySessionRate float64
	ReplayErrorRate   float64
}

// DefaultConfig returns the observed production configuration: full trace
// sampling, 10% baseline replay sampling, 100% on error, and a release
// identifier templated from the version string.
func DefaultConfig(version, environment, dsn string) Config {
	return Config{
		DSN:               dsn,
		Release:           "faultline@" + version,
		Environment:       environment,
		TracesSampleRate:  1.0,
		ReplaySessionRate: 0.1,
		ReplayErrorRate:   1.0,
	}
}

// Init constructs the monitoring client exactly once, at process start.
// Only a production deployment gets a real client; every other mode gets
// the no-op handle so report calls stay safe. There is no teardown beyond
// a final Flush on shutdown.
func Init(production bool, cfg Config, log *slog.Logger) (Client, error) {
	if !production {
		log.Info("monitoring disabled", "reason", "non-production mode")
		return NewNoop(), nil
	}
	client, err := newSentryClient(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("monitoring enabled",
		"release", cfg.Release,
		"environment", cfg.Environment,
		"traces_sample_rate", cfg.TracesSampleRate,
	)
	return client, nil
}
