package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ecomcli/internal/dataset"
	apierrors "ecomcli/internal/errors"
	"ecomcli/internal/metrics"
	"ecomcli/pkg/contracts/domain"
)

// windowDateLayout is the format of the start/end query parameters.
const windowDateLayout = "2006-01-02"

// MetricsHandler serves the KPI catalog over HTTP.
type MetricsHandler struct {
	service DataService
	engine  *metrics.Engine
	logger  *slog.Logger
}

// NewMetricsHandler creates a metrics handler.
func NewMetricsHandler(service DataService, engine *metrics.Engine, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{
		service: service,
		engine:  engine,
		logger:  logger,
	}
}

// RegisterRoutes registers the metrics API routes
func (h *MetricsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Get("/revenue", h.GetRevenue)
		r.Get("/trends", h.GetTrends)
		r.Get("/categories", h.GetCategories)
		r.Get("/geography", h.GetGeography)
		r.Get("/experience", h.GetExperience)
		r.Get("/operations", h.GetOperations)
		r.Get("/cohorts", h.GetCohorts)
		r.Get("/quality", h.GetQuality)
	})
}

// parseWindow reads the optional start/end query parameters. Both must be
// given together; absent, the configured default window applies.
func (h *MetricsHandler) parseWindow(r *http.Request) (domain.DateWindow, error) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	if startParam == "" && endParam == "" {
		return h.service.DefaultWindow(), nil
	}
	if startParam == "" || endParam == "" {
		return domain.DateWindow{}, fmt.Errorf("start and end must be provided together")
	}

	start, err := time.Parse(windowDateLayout, startParam)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse start: %w", err)
	}
	end, err := time.Parse(windowDateLayout, endParam)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse end: %w", err)
	}

	window := domain.DateWindow{Start: start, End: end}
	if err := window.Validate(); err != nil {
		return domain.DateWindow{}, err
	}
	return window, nil
}

// periods selects the current period subset and, when a window is active,
// the adjacent comparison period. Copy-on-filter: the cached set is never
// mutated.
func (h *MetricsHandler) periods(window domain.DateWindow) (current, comparison []domain.SalesRecord) {
	records := h.service.Records()
	current = dataset.FilterByDate(records, window)
	if !window.IsZero() {
		comparison = dataset.FilterByDate(records, window.Previous())
	}
	return current, comparison
}

// withWindow wraps a handler body with window parsing and error rendering.
func (h *MetricsHandler) withWindow(w http.ResponseWriter, r *http.Request, fn func(window domain.DateWindow)) {
	window, err := h.parseWindow(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid date window",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.InvalidWindowWithError(err))
		return
	}
	fn(window)
}

// GetSummary returns the combined metric catalog for the selected window.
func (h *MetricsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, comparison := h.periods(window)
		opts := metrics.SummaryOptions{Period: periodLabel(window)}
		if !window.IsZero() {
			opts.Window = &window
		}
		render.JSON(w, r, h.engine.Summary(current, comparison, opts))
	})
}

// GetRevenue returns revenue metrics for the selected window.
func (h *MetricsHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Revenue(current))
	})
}

// GetTrends returns the monthly trend series for the selected window.
func (h *MetricsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.MonthlyTrends(current))
	})
}

// GetCategories returns the category breakdown for the selected window.
func (h *MetricsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Categories(current))
	})
}

// GetGeography returns the state breakdown for the selected window.
func (h *MetricsHandler) GetGeography(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Geography(current))
	})
}

// GetExperience returns customer-experience metrics for the selected window.
func (h *MetricsHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Experience(current))
	})
}

// GetOperations returns operational metrics for the selected window.
func (h *MetricsHandler) GetOperations(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Operations(current))
	})
}

// GetCohorts returns the customer retention table for the selected window.
func (h *MetricsHandler) GetCohorts(w http.ResponseWriter, r *http.Request) {
	h.withWindow(w, r, func(window domain.DateWindow) {
		current, _ := h.periods(window)
		render.JSON(w, r, h.engine.Cohorts(current))
	})
}

// GetQuality returns the loader's data-quality report.
func (h *MetricsHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	events := h.service.Quality()
	if events == nil {
		events = []dataset.QualityEvent{}
	}
	render.JSON(w, r, events)
}

// periodLabel names the period for display.
func periodLabel(window domain.DateWindow) string {
	if window.IsZero() {
		return "All data"
	}
	return fmt.Sprintf("%s to %s",
		window.Start.Format(windowDateLayout),
		window.End.Format(windowDateLayout))
}
