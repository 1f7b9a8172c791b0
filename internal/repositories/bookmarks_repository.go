package repositories

import (
	"context"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type bookmarksRepository struct {
	record jsonRecord[[]models.Bookmark]
}

// NewBookmarksRepository creates a new instance of the BookmarksRepository interface
func NewBookmarksRepository(store kvstore.Store, logger *zap.Logger) *bookmarksRepository {
	return &bookmarksRepository{
		record: jsonRecord[[]models.Bookmark]{store: store, key: kvstore.KeyBookmarks, logger: logger},
	}
}

// Method GetAll is a BookmarksRepository implementation for retrieving all bookmarks in insertion order.
func (r *bookmarksRepository) GetAll(ctx context.Context) ([]models.Bookmark, error) {
	bookmarks, ok, err := r.record.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || *bookmarks == nil {
		return []models.Bookmark{}, nil
	}
	return *bookmarks, nil
}

// Method SaveAll is a BookmarksRepository implementation for replacing the whole bookmarks collection.
func (r *bookmarksRepository) SaveAll(ctx context.Context, bookmarks []models.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	return r.record.save(ctx, bookmarks)
}
