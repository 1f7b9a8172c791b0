package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsService is the interface that wraps methods for settings business logic.
type SettingsService interface {
	// Method GetSettings retrieve the settings of the calling device, or the defaults.
	GetSettings(ctx context.Context) (*models.Settings, error)
	// Method SaveSettings validates and saves the settings.
	//
	// If a value is not supported, services.ErrInvalidSettings is returned.
	SaveSettings(ctx context.Context, settings *models.Settings) error
}

// SettingsHandler handles HTTP requests for settings
type SettingsHandler struct {
	BaseHandler
	service SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(svc SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all settings handler routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
}

// GetSettings handles GET /settings
// @Summary Get settings
// @Description Get the theme, language and notification preferences. Defaults to dark theme, Arabic and notifications on.
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.Logger.Error("failed to get settings", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.Settings true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := h.DecodeJSON(r, &settings); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SaveSettings(r.Context(), &settings); err != nil {
		if errors.Is(err, services.ErrInvalidSettings) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to save settings", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}
