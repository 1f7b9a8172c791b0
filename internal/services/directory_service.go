package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/roster"
	"go.uber.org/zap"
)

// StudentsRepository is the interface that wraps methods for the cached roster access
type StudentsRepository interface {
	// Method GetCached retrieve the cached roster.
	//
	// "false" is returned when no roster is cached. A corrupt cache is discarded and reported as absent.
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetCached(ctx context.Context) ([]models.Student, bool, error)
	// Method SaveCached replaces the cached roster.
	SaveCached(ctx context.Context, students []models.Student) error
}

// RosterSource is the interface that wraps the bundled roster loading
type RosterSource interface {
	// Method Load reads the bundled roster.
	Load(ctx context.Context) ([]models.Student, error)
}

type directoryService struct {
	repo   StudentsRepository
	source RosterSource
	logger *zap.Logger

	mu       sync.Mutex
	loaded   bool
	students []models.Student
}

// NewDirectoryService creates a new student directory.
// "repo" must not be scoped per device: the roster cache is shared by every client.
func NewDirectoryService(repo StudentsRepository, source RosterSource, logger *zap.Logger) *directoryService {
	return &directoryService{
		repo:   repo,
		source: source,
		logger: logger,
	}
}

// LoadStudents returns the roster, loading it on first use.
//
// The first successful load is kept in memory and returned by every later call without touching the store.
// A load reads the cached roster first, then falls back to the bundled roster and caches it.
// When the bundled roster cannot be loaded an empty roster is returned and nothing is kept,
// so every login fails until a later call loads it.
func (s *directoryService) LoadStudents(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return slices.Clone(s.students), nil
	}

	cached, found, err := s.repo.GetCached(ctx)
	if err != nil {
		s.logger.Error("failed to read roster cache", zap.Error(err))
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	if found {
		s.remember(cached)
		return slices.Clone(cached), nil
	}

	bundled, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load bundled roster", zap.Error(err))
		return []models.Student{}, nil
	}

	if err := s.repo.SaveCached(ctx, bundled); err != nil {
		s.logger.Error("failed to cache roster", zap.Error(err))
		return nil, fmt.Errorf("failed to cache students: %w", err)
	}

	s.logger.Info("roster loaded", zap.Int("students", len(bundled)))
	s.remember(bundled)
	return slices.Clone(bundled), nil
}

// GetStudents is an alias of LoadStudents
func (s *directoryService) GetStudents(ctx context.Context) ([]models.Student, error) {
	return s.LoadStudents(ctx)
}

// SaveStudents replaces the roster in the cache and in memory
func (s *directoryService) SaveStudents(ctx context.Context, students []models.Student) error {
	if err := roster.Validate(students); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveCached(ctx, students); err != nil {
		s.logger.Error("failed to save roster", zap.Error(err))
		return fmt.Errorf("failed to save students: %w", err)
	}
	s.remember(students)
	return nil
}

// VerifyStudent returns the student matching the credentials, or "nil" when none matches.
//
// The username is trimmed and compared case-insensitively, the password must match exactly.
// Blank credentials are rejected without loading the roster.
func (s *directoryService) VerifyStudent(ctx context.Context, username, password string) (*models.Student, error) {
	if !CredentialsProvided(username, password) {
		return nil, nil
	}

	students, err := s.LoadStudents(ctx)
	if err != nil {
		return nil, err
	}

	wanted := strings.ToLower(strings.TrimSpace(username))
	for _, student := range students {
		if strings.ToLower(student.Username) == wanted && student.Password == password {
			match := student
			return &match, nil
		}
	}
	return nil, nil
}

// Invalidate drops the roster kept in memory, the next call to LoadStudents reads it again
func (s *directoryService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.students = nil
}

func (s *directoryService) remember(students []models.Student) {
	if students == nil {
		students = []models.Student{}
	}
	s.students = slices.Clone(students)
	s.loaded = true
}

// CredentialsProvided reports whether both credentials are non-blank
func CredentialsProvided(username, password string) bool {
	return strings.TrimSpace(username) != "" && strings.TrimSpace(password) != ""
}
