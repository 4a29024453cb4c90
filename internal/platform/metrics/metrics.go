package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	TriggersFired       *prometheus.CounterVec
	ReportsEmitted      *prometheus.CounterVec
	BoundaryCatches     *prometheus.CounterVec
	PanicsRecovered     prometheus.Counter
	SchedulerPanics     prometheus.Counter
	UnhandledRejections prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on r. Tests pass a fresh registry so
// repeated construction does not collide.
func NewWith(r prometheus.Registerer) *Metrics {
	return &Metrics{
		TriggersFired: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "faultline_triggers_fired_total",
			Help: "Total trigger invocations, by view and trigger slug",
		}, []string{"view", "trigger"}),
		ReportsEmitted: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "faultline_reports_emitted_total",
			Help: "Reports sent to the monitoring client, by kind",
		}, []string{"kind"}),
		BoundaryCatches: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "faultline_boundary_catches_total",
			Help: "Faults intercepted by a view boundary, by view",
		}, []string{"view"}),
		PanicsRecovered: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "faultline_panics_recovered_total",
			Help: "Panics caught by the outermost recovery middleware",
		}),
		SchedulerPanics: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "faultline_scheduler_panics_total",
			Help: "Panics raised inside scheduled tasks",
		}),
		UnhandledRejections: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "faultline_unhandled_rejections_total",
			Help: "Background task errors that nothing awaited",
		}),
	}
}

// IncrementTriggerFired records one invocation of a catalog trigger.
func (m *Metrics) IncrementTriggerFired(view, trigger string) {
	m.TriggersFired.WithLabelValues(view, trigger).Inc()
}
