package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookmarksRepository is the interface that wraps methods for bookmarks record access
type BookmarksRepository interface {
	// Method GetAll retrieve all bookmarks in insertion order.
	//
	// If no bookmarks were saved yet, an empty slice is returned.
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Bookmark, error)
	// Method SaveAll replaces the whole bookmarks collection.
	SaveAll(ctx context.Context, bookmarks []models.Bookmark) error
}

type bookmarksService struct {
	repo   BookmarksRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewBookmarksService creates a new bookmarks service
func NewBookmarksService(repo BookmarksRepository, logger *zap.Logger) *bookmarksService {
	return &bookmarksService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// GetBookmarks retrieves all bookmarks
func (s *bookmarksService) GetBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	bookmarks, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get bookmarks", zap.Error(err))
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	return bookmarks, nil
}

// AddBookmark bookmarks a page.
//
// If a bookmark with the same URL exists nothing is written and the existing bookmark is returned with "false".
// Otherwise the new bookmark gets a fresh id and creation time and is returned with "true".
func (s *bookmarksService) AddBookmark(ctx context.Context, req models.BookmarkRequest) (*models.Bookmark, bool, error) {
	bookmarks, err := s.GetBookmarks(ctx)
	if err != nil {
		return nil, false, err
	}

	if i := indexOfBookmarkURL(bookmarks, req.URL); i >= 0 {
		existing := bookmarks[i]
		return &existing, false, nil
	}

	bookmark := models.Bookmark{
		ID:        s.newID(),
		Section:   req.Section,
		Title:     req.Title,
		URL:       req.URL,
		CreatedAt: s.now().UTC(),
	}
	bookmarks = append(bookmarks, bookmark)

	if err := s.save(ctx, bookmarks); err != nil {
		return nil, false, err
	}
	return &bookmark, true, nil
}

// RemoveBookmark removes the bookmark with "id". Removing an unknown id is a no-op.
func (s *bookmarksService) RemoveBookmark(ctx context.Context, id string) error {
	bookmarks, err := s.GetBookmarks(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Bookmark, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		if bookmark.ID != id {
			kept = append(kept, bookmark)
		}
	}
	return s.save(ctx, kept)
}

// IsBookmarked reports whether a bookmark exists for "url"
func (s *bookmarksService) IsBookmarked(ctx context.Context, url string) (bool, error) {
	bookmarks, err := s.GetBookmarks(ctx)
	if err != nil {
		return false, err
	}
	return indexOfBookmarkURL(bookmarks, url) >= 0, nil
}

// ToggleBookmark removes the bookmark of the requested URL if it exists, otherwise adds it
func (s *bookmarksService) ToggleBookmark(ctx context.Context, req models.BookmarkRequest) (*models.BookmarkToggleResponse, error) {
	bookmarks, err := s.GetBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOfBookmarkURL(bookmarks, req.URL); i >= 0 {
		if err := s.RemoveBookmark(ctx, bookmarks[i].ID); err != nil {
			return nil, err
		}
		return &models.BookmarkToggleResponse{Bookmarked: false}, nil
	}

	bookmark, _, err := s.AddBookmark(ctx, req)
	if err != nil {
		return nil, err
	}
	return &models.BookmarkToggleResponse{Bookmarked: true, Bookmark: bookmark}, nil
}

func (s *bookmarksService) save(ctx context.Context, bookmarks []models.Bookmark) error {
	if err := s.repo.SaveAll(ctx, bookmarks); err != nil {
		s.logger.Error("failed to save bookmarks", zap.Error(err))
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

func indexOfBookmarkURL(bookmarks []models.Bookmark, url string) int {
	for i, bookmark := range bookmarks {
		if bookmark.URL == url {
			return i
		}
	}
	return -1
}
