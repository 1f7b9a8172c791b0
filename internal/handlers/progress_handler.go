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

// ProgressService is the interface that wraps methods for study progress business logic.
type ProgressService interface {
	// Method GetProgress retrieve the progress record of the calling device.
	//
	// If nothing was recorded yet, an empty record is returned.
	GetProgress(ctx context.Context) (*models.StudyProgress, error)
	// Method Summary retrieve the aggregated statistics of the progress page.
	Summary(ctx context.Context) (*models.ProgressSummary, error)
	// Method MarkSectionVisited records a visit of "sectionID" and returns the updated record.
	MarkSectionVisited(ctx context.Context, sectionID string) (*models.StudyProgress, error)
	// Method MarkPathVisited records a visit of the section a client page path belongs to.
	//
	// If the path belongs to no section, services.ErrUnknownSection is returned together with "nil" value.
	MarkPathVisited(ctx context.Context, path string) (*models.StudyProgress, error)
	// Method AddTimeSpent adds "minutes" of study to "sectionID" and returns the updated record.
	AddTimeSpent(ctx context.Context, sectionID string, minutes float64) (*models.StudyProgress, error)
	// Method RecordQuiz records a quiz result computed from the score and returns it.
	RecordQuiz(ctx context.Context, score, totalQuestions int) (*models.QuizResult, error)
}

// ProgressHandler handles HTTP requests for study progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/progress", func(r chi.Router) {
		r.Get("/", h.GetProgress)
		r.Get("/summary", h.GetSummary)
		r.Post("/visits", h.RecordVisit)
		r.Post("/time", h.AddTimeSpent)
		r.Post("/quiz-results", h.RecordQuizResult)
	})
}

// GetProgress handles GET /progress
// @Summary Get study progress
// @Description Get the visited sections, last visits, time spent and quiz history of the device
// @Tags progress
// @Produce json
// @Success 200 {object} models.StudyProgress
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.GetProgress(r.Context())
	if err != nil {
		h.Logger.Error("failed to get progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetSummary handles GET /progress/summary
// @Summary Get progress statistics
// @Description Get the number of visited sections, total study time, quiz count, average and best score and the 5 most recent results
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressSummary
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress/summary [get]
func (h *ProgressHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.Logger.Error("failed to get progress summary", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get progress summary")
		return
	}

	h.RespondJSON(w, http.StatusOK, summary)
}

// RecordVisit handles POST /progress/visits
// @Summary Record a section visit
// @Description Record a visit by section identifier or by client page path
// @Tags progress
// @Accept json
// @Produce json
// @Param request body models.VisitRequest true "Section or path"
// @Success 200 {object} models.StudyProgress
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress/visits [post]
func (h *ProgressHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var req models.VisitRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		progress *models.StudyProgress
		err      error
	)
	switch {
	case req.Section != "":
		progress, err = h.service.MarkSectionVisited(r.Context(), req.Section)
	case req.Path != "":
		progress, err = h.service.MarkPathVisited(r.Context(), req.Path)
	default:
		h.RespondError(w, http.StatusBadRequest, "section or path is required")
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrUnknownSection) {
			h.RespondError(w, http.StatusBadRequest, "unknown section")
			return
		}
		h.Logger.Error("failed to record visit", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to record visit")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// AddTimeSpent handles POST /progress/time
// @Summary Add study time
// @Description Add minutes of study to a section
// @Tags progress
// @Accept json
// @Produce json
// @Param request body models.TimeSpentRequest true "Section and minutes"
// @Success 200 {object} models.StudyProgress
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress/time [post]
func (h *ProgressHandler) AddTimeSpent(w http.ResponseWriter, r *http.Request) {
	var req models.TimeSpentRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.service.AddTimeSpent(r.Context(), req.Section, req.Minutes)
	if err != nil {
		h.Logger.Error("failed to add time spent", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to add time spent")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// RecordQuizResult handles POST /progress/quiz-results
// @Summary Record a quiz result
// @Description Record the score of a quiz taken on the client. Only the 50 most recent results are kept.
// @Tags progress
// @Accept json
// @Produce json
// @Param request body models.QuizResultRequest true "Score"
// @Success 201 {object} models.QuizResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress/quiz-results [post]
func (h *ProgressHandler) RecordQuizResult(w http.ResponseWriter, r *http.Request) {
	var req models.QuizResultRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.RecordQuiz(r.Context(), req.Score, req.TotalQuestions)
	if err != nil {
		h.Logger.Error("failed to record quiz result", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to record quiz result")
		return
	}

	h.RespondJSON(w, http.StatusCreated, result)
}
