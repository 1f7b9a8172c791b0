package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/roster"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DirectoryService is the interface that wraps methods for roster administration.
type DirectoryService interface {
	// Method GetStudents retrieve the class roster.
	GetStudents(ctx context.Context) ([]models.Student, error)
	// Method SaveStudents replaces the class roster.
	//
	// If the roster is invalid, roster.ErrInvalidRoster is returned.
	SaveStudents(ctx context.Context, students []models.Student) error
}

// BackupService is the interface that wraps methods for store backups.
type BackupService interface {
	// Method Export snapshots every entry of the store.
	Export(ctx context.Context) (*models.Backup, error)
	// Method Import restores the entries of "backup", removing the others first when "clear" is set.
	Import(ctx context.Context, backup *models.Backup, clear bool) (*models.ImportResult, error)
}

// AdminHandler handles roster and backup administration requests
type AdminHandler struct {
	BaseHandler
	directory DirectoryService
	backups   BackupService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(directory DirectoryService, backups BackupService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: newBaseHandler(logger),
		directory:   directory,
		backups:     backups,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is protected by the API key middleware
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/students", h.GetStudents)
		r.Put("/students", h.SaveStudents)
		r.Get("/backup", h.ExportBackup)
		r.Post("/backup", h.ImportBackup)
	})
}

// GetStudents handles GET /admin/students
// @Summary Get the class roster
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {array} models.Student
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/students [get]
func (h *AdminHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.directory.GetStudents(r.Context())
	if err != nil {
		h.Logger.Error("failed to get students", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get students")
		return
	}

	h.RespondJSON(w, http.StatusOK, students)
}

// SaveStudents handles PUT /admin/students
// @Summary Replace the class roster
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body []models.Student true "Roster"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/students [put]
func (h *AdminHandler) SaveStudents(w http.ResponseWriter, r *http.Request) {
	var students []models.Student
	if err := h.DecodeJSON(r, &students); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.directory.SaveStudents(r.Context(), students); err != nil {
		if errors.Is(err, roster.ErrInvalidRoster) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to save students", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to save students")
		return
	}

	h.Logger.Info("roster replaced", zap.Int("students", len(students)))
	h.RespondJSON(w, http.StatusOK, map[string]int{"students": len(students)})
}

// ExportBackup handles GET /admin/backup
// @Summary Export the store
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} models.Backup
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/backup [get]
func (h *AdminHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backups.Export(r.Context())
	if err != nil {
		h.Logger.Error("failed to export backup", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to export backup")
		return
	}

	h.RespondJSON(w, http.StatusOK, backup)
}

// ImportBackup handles POST /admin/backup
// @Summary Import a backup
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param clear query bool false "Remove entries missing from the backup"
// @Param request body models.Backup true "Backup"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/backup [post]
func (h *AdminHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	clear := false
	if raw := r.URL.Query().Get("clear"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid clear parameter")
			return
		}
		clear = parsed
	}

	var backup models.Backup
	if err := h.DecodeJSON(r, &backup); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if backup.Version != models.BackupVersion {
		h.RespondError(w, http.StatusBadRequest, "unsupported backup version")
		return
	}

	result, err := h.backups.Import(r.Context(), &backup, clear)
	if err != nil {
		h.Logger.Error("failed to import backup", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to import backup")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
