package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/antigone-study/backend/internal/content"
	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// defaultQuizLocale matches the default interface language
const defaultQuizLocale = string(models.LanguageArabic)

// QuizService is the interface that wraps methods for quiz business logic.
type QuizService interface {
	// Method Questions retrieve the questions of "locale" without their answers.
	//
	// If the locale is unknown, content.ErrUnknownLocale is returned together with "nil" value.
	Questions(locale string) ([]models.QuizQuestion, error)
	// Method Submit grades the answers and records the result in the progress of the calling device.
	//
	// If the answers do not fit the quiz, services.ErrInvalidQuizAnswers is returned together with "nil" value.
	Submit(ctx context.Context, req models.QuizSubmitRequest) (*models.QuizOutcome, error)
}

// QuizHandler handles HTTP requests for the quiz
type QuizHandler struct {
	BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Get("/", h.GetQuestions)
		r.Post("/submit", h.Submit)
	})
}

// GetQuestions handles GET /quiz
// @Summary Get quiz questions
// @Tags quiz
// @Produce json
// @Param locale query string false "Locale: ar or fr, default: ar"
// @Success 200 {array} models.QuizQuestion
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /quiz [get]
func (h *QuizHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = defaultQuizLocale
	}

	questions, err := h.service.Questions(locale)
	if err != nil {
		if errors.Is(err, content.ErrUnknownLocale) {
			h.RespondError(w, http.StatusBadRequest, "unknown locale")
			return
		}
		h.Logger.Error("failed to get quiz", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get quiz")
		return
	}

	h.RespondJSON(w, http.StatusOK, questions)
}

// Submit handles POST /quiz/submit
// @Summary Submit quiz answers
// @Description Grade the answers, one per question in order, an empty answer meaning skipped. The result is added to the quiz history.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body models.QuizSubmitRequest true "Answers"
// @Success 200 {object} models.QuizOutcome
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /quiz/submit [post]
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.QuizSubmitRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrUnknownLocale):
			h.RespondError(w, http.StatusBadRequest, "unknown locale")
		case errors.Is(err, services.ErrInvalidQuizAnswers):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to submit quiz", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to submit quiz")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, outcome)
}
