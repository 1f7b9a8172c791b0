package repositories

import (
	"context"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type notesRepository struct {
	record jsonRecord[[]models.Note]
}

// NewNotesRepository creates a new instance of the NotesRepository interface
func NewNotesRepository(store kvstore.Store, logger *zap.Logger) *notesRepository {
	return &notesRepository{
		record: jsonRecord[[]models.Note]{store: store, key: kvstore.KeyNotes, logger: logger},
	}
}

// Method GetAll is a NotesRepository implementation for retrieving all notes in insertion order.
func (r *notesRepository) GetAll(ctx context.Context) ([]models.Note, error) {
	notes, ok, err := r.record.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || *notes == nil {
		return []models.Note{}, nil
	}
	return *notes, nil
}

// Method SaveAll is a NotesRepository implementation for replacing the whole notes collection.
func (r *notesRepository) SaveAll(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return r.record.save(ctx, notes)
}
