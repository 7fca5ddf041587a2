package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ecomcli/pkg/contracts"
)

// HealthHandler serves liveness information.
type HealthHandler struct {
	service DataService
	started time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service DataService) *HealthHandler {
	return &HealthHandler{service: service, started: time.Now()}
}

// RegisterRoutes registers the health routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.GetHealth)
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	RecordCount int    `json:"record_count"`
	UptimeSecs  int64  `json:"uptime_seconds"`
}

// GetHealth reports service liveness and dataset size.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:      "ok",
		Version:     contracts.Version,
		RecordCount: len(h.service.Records()),
		UptimeSecs:  int64(time.Since(h.started).Seconds()),
	})
}
