package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"faultline/internal/monitor"
	"faultline/internal/platform/metrics"
	"faultline/internal/platform/middleware"
	viewhandler "faultline/internal/view/handler"
)

// NewRouter wires the middleware stack and all public endpoints. Recovery
// sits innermost of the platform middleware so the request log still sees
// the 500 it writes for a demo panic.
func NewRouter(h *viewhandler.Handler, log *slog.Logger, mon monitor.Client, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log, mon, m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Register(r)
	return r
}
