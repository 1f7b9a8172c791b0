package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

// SessionRepository is the interface that wraps methods for session record access
type SessionRepository interface {
	// Method Get retrieve the session record.
	//
	// If there is no session, "nil" is returned without error.
	Get(ctx context.Context) (*models.User, error)
	// Method Exists checks the presence of the session record.
	Exists(ctx context.Context) (bool, error)
	// Method Save persists the session record.
	Save(ctx context.Context, user *models.User) error
	// Method Delete removes the session record.
	Delete(ctx context.Context) error
}

// StudentDirectory is the interface that wraps credential matching against the roster
type StudentDirectory interface {
	// Method VerifyStudent retrieve the student matching the credentials.
	//
	// If no student matches, "nil" is returned without error.
	VerifyStudent(ctx context.Context, username, password string) (*models.Student, error)
}

type authService struct {
	directory StudentDirectory
	sessions  SessionRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(directory StudentDirectory, sessions SessionRepository, logger *zap.Logger) *authService {
	return &authService{
		directory: directory,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// Login checks the credentials against the roster and opens a session on success.
//
// Blank credentials return "false" without touching the roster or the store.
// Wrong credentials return "false" without telling which field was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (bool, error) {
	if !CredentialsProvided(username, password) {
		return false, nil
	}

	student, err := s.directory.VerifyStudent(ctx, username, password)
	if err != nil {
		return false, fmt.Errorf("failed to verify credentials: %w", err)
	}
	if student == nil {
		s.logger.Info("login rejected")
		return false, nil
	}

	user := models.NewUser(*student, s.now().UTC())
	if err := s.sessions.Save(ctx, user); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		return false, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("login succeeded", zap.Int("user_id", user.ID))
	return true, nil
}

// Logout removes the session record
func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessions.Delete(ctx); err != nil {
		s.logger.Error("failed to remove session", zap.Error(err))
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session record exists
func (s *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	exists, err := s.sessions.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return exists, nil
}

// GetCurrentUser returns the session record, or "nil" when logged out
func (s *authService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}
