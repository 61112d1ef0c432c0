package http

import (
	"net/http"

	"github.com/go-chi/render"

	"pasarcli/internal/services"
)

// HealthHandler serves the readiness probe.
type HealthHandler struct {
	service *services.HealthService
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service *services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Health(r.Context()))
}
