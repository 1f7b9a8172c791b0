package handlers

import (
	"context"
	"net/http"

	"github.com/antigone-study/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookmarksService is the interface that wraps methods for bookmarks business logic.
type BookmarksService interface {
	// Method GetBookmarks retrieve all bookmarks of the calling device.
	GetBookmarks(ctx context.Context) ([]models.Bookmark, error)
	// Method AddBookmark bookmarks a page.
	//
	// When the URL is already bookmarked, the existing bookmark is returned together with "false".
	AddBookmark(ctx context.Context, req models.BookmarkRequest) (*models.Bookmark, bool, error)
	// Method RemoveBookmark removes the bookmark "id". Unknown ids are ignored.
	RemoveBookmark(ctx context.Context, id string) error
	// Method IsBookmarked reports whether "url" is bookmarked.
	IsBookmarked(ctx context.Context, url string) (bool, error)
	// Method ToggleBookmark removes the bookmark of the URL if present, adds it otherwise.
	ToggleBookmark(ctx context.Context, req models.BookmarkRequest) (*models.BookmarkToggleResponse, error)
}

// BookmarksHandler handles HTTP requests for bookmarks
type BookmarksHandler struct {
	BaseHandler
	service BookmarksService
}

// NewBookmarksHandler creates a new bookmarks handler
func NewBookmarksHandler(svc BookmarksService, logger *zap.Logger) *BookmarksHandler {
	return &BookmarksHandler{
		BaseHandler: newBaseHandler(logger),
		service:     svc,
	}
}

// RegisterRoutes registers all bookmarks handler routes
func (h *BookmarksHandler) RegisterRoutes(r chi.Router) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", h.GetBookmarks)
		r.Post("/", h.AddBookmark)
		r.Get("/check", h.CheckBookmark)
		r.Post("/toggle", h.ToggleBookmark)
		r.Delete("/{id}", h.RemoveBookmark)
	})
}

// GetBookmarks handles GET /bookmarks
// @Summary Get bookmarks
// @Tags bookmarks
// @Produce json
// @Success 200 {array} models.Bookmark
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookmarks [get]
func (h *BookmarksHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.service.GetBookmarks(r.Context())
	if err != nil {
		h.Logger.Error("failed to get bookmarks", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get bookmarks")
		return
	}

	h.RespondJSON(w, http.StatusOK, bookmarks)
}

// AddBookmark handles POST /bookmarks
// @Summary Bookmark a page
// @Description Bookmark a page. A URL already bookmarked is not added twice, the existing bookmark is returned with status 200.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body models.BookmarkRequest true "Bookmark"
// @Success 200 {object} models.Bookmark "Already bookmarked"
// @Success 201 {object} models.Bookmark "Created"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookmarks [post]
func (h *BookmarksHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var req models.BookmarkRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookmark, created, err := h.service.AddBookmark(r.Context(), req)
	if err != nil {
		h.Logger.Error("failed to add bookmark", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to add bookmark")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.RespondJSON(w, status, bookmark)
}

// CheckBookmark handles GET /bookmarks/check
// @Summary Check a bookmark
// @Tags bookmarks
// @Produce json
// @Param url query string true "Page URL"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookmarks/check [get]
func (h *BookmarksHandler) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		h.RespondError(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	bookmarked, err := h.service.IsBookmarked(r.Context(), url)
	if err != nil {
		h.Logger.Error("failed to check bookmark", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to check bookmark")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

// ToggleBookmark handles POST /bookmarks/toggle
// @Summary Toggle a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body models.BookmarkRequest true "Bookmark"
// @Success 200 {object} models.BookmarkToggleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookmarks/toggle [post]
func (h *BookmarksHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	var req models.BookmarkRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.ToggleBookmark(r.Context(), req)
	if err != nil {
		h.Logger.Error("failed to toggle bookmark", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to toggle bookmark")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// RemoveBookmark handles DELETE /bookmarks/{id}
// @Summary Remove a bookmark
// @Tags bookmarks
// @Param id path string true "Bookmark ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookmarks/{id} [delete]
func (h *BookmarksHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveBookmark(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("failed to remove bookmark", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to remove bookmark")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
