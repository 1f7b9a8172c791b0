package repositories

import (
	"context"
	"errors"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type studentsRepository struct {
	record jsonRecord[[]models.Student]
	logger *zap.Logger
}

// NewStudentsRepository creates a new instance of the StudentsRepository interface.
// It reads and writes the cached roster.
func NewStudentsRepository(store kvstore.Store, logger *zap.Logger) *studentsRepository {
	return &studentsRepository{
		record: jsonRecord[[]models.Student]{store: store, key: kvstore.KeyStudents, logger: logger},
		logger: logger,
	}
}

// Method GetCached is a StudentsRepository implementation for retrieving the cached roster.
//
// The second value is false when nothing is cached. An undecodable cache is removed and reported as absent.
func (r *studentsRepository) GetCached(ctx context.Context) ([]models.Student, bool, error) {
	students, ok, err := r.record.load(ctx)
	var corrupt *corruptRecordError
	if errors.As(err, &corrupt) {
		r.logger.Warn("discarding corrupt roster cache", zap.Error(corrupt.err))
		if err := r.record.remove(ctx); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	if err != nil || !ok {
		return nil, false, err
	}
	if *students == nil {
		return []models.Student{}, true, nil
	}
	return *students, true, nil
}

// Method SaveCached is a StudentsRepository implementation for replacing the cached roster.
func (r *studentsRepository) SaveCached(ctx context.Context, students []models.Student) error {
	if students == nil {
		students = []models.Student{}
	}
	return r.record.save(ctx, students)
}
