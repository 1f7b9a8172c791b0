package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports whether the store answers
type HealthHandler struct {
	BaseHandler
	store kvstore.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store kvstore.Store, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: newBaseHandler(logger),
		store:       store,
	}
}

// RegisterRoutes registers all health handler routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if _, _, err := h.store.Get(ctx, kvstore.KeyStudents); err != nil {
		h.Logger.Error("health check failed", zap.Error(err))
		h.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
