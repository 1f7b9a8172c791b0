package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// submissionsPerMinute limits contributions per client IP
const submissionsPerMinute = 5

// SubmissionService is the interface that wraps methods for contributions business logic.
type SubmissionService interface {
	// Method ListApproved retrieve the approved contributions, newest first.
	ListApproved(ctx context.Context) ([]models.Submission, error)
	// Method Submit stores a contribution awaiting moderation.
	//
	// If a field is missing or too long, services.ErrInvalidSubmission is returned together with "nil" value.
	Submit(ctx context.Context, req models.SubmissionRequest) (*models.Submission, error)
}

// ContributionsHandler handles HTTP requests for student contributions
type ContributionsHandler struct {
	BaseHandler
	service SubmissionService
}

// NewContributionsHandler creates a new contributions handler
func NewContributionsHandler(svc SubmissionService, logger *zap.Logger) *ContributionsHandler {
	return &ContributionsHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all contributions handler routes
func (h *ContributionsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/contributions", func(r chi.Router) {
		r.Get("/", h.ListApproved)
		r.With(httprate.LimitByIP(submissionsPerMinute, time.Minute)).Post("/", h.Submit)
	})
}

// ListApproved handles GET /contributions
// @Summary Get approved contributions
// @Tags contributions
// @Produce json
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /contributions [get]
func (h *ContributionsHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.ListApproved(r.Context())
	if err != nil {
		h.Logger.Error("failed to list contributions", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list contributions")
		return
	}

	h.RespondJSON(w, http.StatusOK, submissions)
}

// Submit handles POST /contributions
// @Summary Submit a contribution
// @Description Submit a text for moderation. It is listed once approved.
// @Tags contributions
// @Accept json
// @Produce json
// @Param request body models.SubmissionRequest true "Contribution"
// @Success 201 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {string} string "Too Many Requests"
// @Failure 500 {object} map[string]string
// @Router /contributions [post]
func (h *ContributionsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	submission, err := h.service.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSubmission) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to submit contribution", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to submit contribution")
		return
	}

	h.RespondJSON(w, http.StatusCreated, submission)
}
