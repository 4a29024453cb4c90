package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"faultline/internal/activity"
	"faultline/internal/boundary"
	"faultline/internal/fault"
	"faultline/internal/platform/metrics"
	"faultline/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Runner executes catalog triggers.
type Runner interface {
	Run(t fault.Trigger, log *activity.Log) error
}

// Handler serves the demo pages and the view-scoped JSON API.
type Handler struct {
	log       *slog.Logger
	views     *view.Registry
	runner    Runner
	metrics   *metrics.Metrics
	templates *template.Template
}

// New creates the view Handler.
func New(views *view.Registry, runner Runner, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		log:       log,
		views:     views,
		runner:    runner,
		metrics:   m,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
	}
}

// Register wires the pages and the API. Every route of a view runs inside
// that view's fault boundary, so a panic is recorded there before the
// outer recovery middleware answers it.
func (h *Handler) Register(r chi.Router) {
	for _, v := range h.views.All() {
		r.Group(func(g chi.Router) {
			g.Use(boundary.Middleware(v.Boundary, v.Name, h.metrics))
			g.Get(v.Path, h.handlePage(v))
			g.Route("/api/views/"+v.Name, func(api chi.Router) {
				api.Get("/triggers", h.handleCatalog(v))
				api.Post("/triggers/{slug}", h.handleTrigger(v))
				api.Get("/log", h.handleLog(v))
				api.Delete("/log", h.handleClearLog(v))
				api.Get("/boundary", h.handleBoundary(v))
				api.Delete("/boundary", h.handleClearBoundary(v))
				// HTML forms cannot issue DELETE; the page's dismiss
				// button posts here instead.
				api.Post("/boundary/dismiss", h.handleDismissBoundary(v))
			})
		})
	}
}

type pageData struct {
	View     *view.View
	Views    []*view.View
	Entries  []activity.Entry
	Boundary *boundary.Captured
}

func (h *Handler) handlePage(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			View:    v,
			Views:   h.views.All(),
			Entries: v.Log.Entries(),
		}
		if captured, ok := v.Boundary.Last(); ok {
			data.Boundary = &captured
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.templates.ExecuteTemplate(w, "page.tmpl", data); err != nil {
			h.log.ErrorContext(r.Context(), "render page", "view", v.Name, "error", err)
		}
	}
}

func (h *Handler) handleCatalog(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"view":     v.Name,
			"triggers": v.Catalog,
		})
	}
}

func (h *Handler) handleTrigger(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		t, ok := fault.Find(v.Catalog, slug)
		if !ok {
			h.log.WarnContext(r.Context(), "unknown trigger", "view", v.Name, "slug", slug)
			writeError(w, http.StatusNotFound, "unknown_trigger")
			return
		}

		h.metrics.IncrementTriggerFired(v.Name, t.Slug)
		h.log.InfoContext(r.Context(), "trigger fired", "view", v.Name, "trigger", t.Slug)

		// A synchronous fault panics through the view boundary from here;
		// only the non-panicking kinds reach the response below.
		if err := h.runner.Run(t, v.Log); err != nil {
			h.log.ErrorContext(r.Context(), "trigger failed", "view", v.Name, "trigger", t.Slug, "error", err)
			writeError(w, http.StatusInternalServerError, "trigger_failed")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":  "triggered",
			"trigger": t.Slug,
		})
	}
}

func (h *Handler) handleLog(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"view":    v.Name,
			"entries": v.Log.Entries(),
		})
	}
}

func (h *Handler) handleClearLog(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.Log.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleBoundary(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		captured, ok := v.Boundary.Last()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"captured": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"captured": captured})
	}
}

func (h *Handler) handleClearBoundary(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.Boundary.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleDismissBoundary(v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.Boundary.Clear()
		http.Redirect(w, r, v.Path, http.StatusSeeOther)
	}
}
