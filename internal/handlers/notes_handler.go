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

// NotesService is the interface that wraps methods for notes business logic.
type NotesService interface {
	// Method GetNotes retrieve all notes of the calling device in creation order.
	GetNotes(ctx context.Context) ([]models.Note, error)
	// Method GetNotesBySection retrieve the notes filed under "sectionID".
	GetNotesBySection(ctx context.Context, sectionID string) ([]models.Note, error)
	// Method SaveNote inserts the note, or updates the note with the same id.
	SaveNote(ctx context.Context, note models.Note) (*models.Note, error)
	// Method UpdateNote replaces the section and content of the note "id".
	//
	// If the note does not exist, services.ErrNoteNotFound is returned together with "nil" value.
	UpdateNote(ctx context.Context, id string, req models.NoteRequest) (*models.Note, error)
	// Method DeleteNote removes the note "id". Unknown ids are ignored.
	DeleteNote(ctx context.Context, id string) error
}

// NotesHandler handles HTTP requests for notes
type NotesHandler struct {
	BaseHandler
	service NotesService
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(svc NotesService, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all notes handler routes
func (h *NotesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.GetNotes)
		r.Post("/", h.CreateNote)
		r.Put("/{id}", h.UpdateNote)
		r.Delete("/{id}", h.DeleteNote)
	})
}

// GetNotes handles GET /notes
// @Summary Get notes
// @Description Get all notes, or the notes of one section
// @Tags notes
// @Produce json
// @Param section query string false "Section identifier"
// @Success 200 {array} models.Note
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notes [get]
func (h *NotesHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	var (
		notes []models.Note
		err   error
	)
	if section := r.URL.Query().Get("section"); section != "" {
		notes, err = h.service.GetNotesBySection(r.Context(), section)
	} else {
		notes, err = h.service.GetNotes(r.Context())
	}
	if err != nil {
		h.Logger.Error("failed to get notes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get notes")
		return
	}

	h.RespondJSON(w, http.StatusOK, notes)
}

// CreateNote handles POST /notes
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body models.NoteRequest true "Note"
// @Success 201 {object} models.Note
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notes [post]
func (h *NotesHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.service.SaveNote(r.Context(), models.Note{Section: req.Section, Content: req.Content})
	if err != nil {
		h.Logger.Error("failed to create note", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	h.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/{id}
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body models.NoteRequest true "Note"
// @Success 200 {object} models.Note
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notes/{id} [put]
func (h *NotesHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.NoteRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.service.UpdateNote(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			h.RespondError(w, http.StatusNotFound, "note not found")
			return
		}
		h.Logger.Error("failed to update note", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to update note")
		return
	}

	h.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{id}
// @Summary Delete a note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notes/{id} [delete]
func (h *NotesHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("failed to delete note", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
