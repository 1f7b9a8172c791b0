package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotesRepository is the interface that wraps methods for notes record access
type NotesRepository interface {
	// Method GetAll retrieve all notes in insertion order.
	//
	// If no notes were saved yet, an empty slice is returned.
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Note, error)
	// Method SaveAll replaces the whole notes collection.
	SaveAll(ctx context.Context, notes []models.Note) error
}

type notesService struct {
	repo   NotesRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewNotesService creates a new notes service
func NewNotesService(repo NotesRepository, logger *zap.Logger) *notesService {
	return &notesService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// GetNotes retrieves all notes
func (s *notesService) GetNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get notes", zap.Error(err))
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	return notes, nil
}

// GetNotesBySection retrieves the notes filed under "sectionID"
func (s *notesService) GetNotesBySection(ctx context.Context, sectionID string) ([]models.Note, error) {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []models.Note{}
	for _, note := range notes {
		if note.Section == sectionID {
			filtered = append(filtered, note)
		}
	}
	return filtered, nil
}

// SaveNote inserts or updates a note by id.
//
// When a note with the same id exists, its section and content are replaced, its creation time is kept
// and its update time is set to now. Otherwise the note is appended: a blank id is replaced with a new one
// and zero timestamps are set to now.
func (s *notesService) SaveNote(ctx context.Context, note models.Note) (*models.Note, error) {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	saved := note

	index := -1
	if note.ID != "" {
		index = indexOfNote(notes, note.ID)
	}

	if index >= 0 {
		saved.CreatedAt = notes[index].CreatedAt
		saved.UpdatedAt = now
		notes[index] = saved
	} else {
		if saved.ID == "" {
			saved.ID = s.newID()
		}
		if saved.CreatedAt.IsZero() {
			saved.CreatedAt = now
		}
		if saved.UpdatedAt.IsZero() || saved.UpdatedAt.Before(saved.CreatedAt) {
			saved.UpdatedAt = saved.CreatedAt
		}
		notes = append(notes, saved)
	}

	if err := s.repo.SaveAll(ctx, notes); err != nil {
		s.logger.Error("failed to save notes", zap.Error(err))
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	return &saved, nil
}

// UpdateNote replaces the section and content of an existing note
func (s *notesService) UpdateNote(ctx context.Context, id string, req models.NoteRequest) (*models.Note, error) {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return nil, err
	}
	if indexOfNote(notes, id) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return s.SaveNote(ctx, models.Note{ID: id, Section: req.Section, Content: req.Content})
}

// DeleteNote removes the note with "id". Deleting an unknown id is a no-op.
func (s *notesService) DeleteNote(ctx context.Context, id string) error {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}

	if err := s.repo.SaveAll(ctx, kept); err != nil {
		s.logger.Error("failed to save notes", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func indexOfNote(notes []models.Note, id string) int {
	for i, note := range notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}
