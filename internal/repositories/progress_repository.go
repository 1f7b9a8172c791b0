package repositories

import (
	"context"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type progressRepository struct {
	record jsonRecord[models.StudyProgress]
}

// NewProgressRepository creates a new instance of the ProgressRepository interface
func NewProgressRepository(store kvstore.Store, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		record: jsonRecord[models.StudyProgress]{store: store, key: kvstore.KeyProgress, logger: logger},
	}
}

// Method Get is a ProgressRepository implementation for retrieving the progress record, or an empty one if none was saved.
func (r *progressRepository) Get(ctx context.Context) (*models.StudyProgress, error) {
	progress, ok, err := r.record.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.NewStudyProgress(), nil
	}
	progress.Normalize()
	return progress, nil
}

// Method Save is a ProgressRepository implementation for replacing the progress record.
func (r *progressRepository) Save(ctx context.Context, progress *models.StudyProgress) error {
	return r.record.save(ctx, *progress)
}
