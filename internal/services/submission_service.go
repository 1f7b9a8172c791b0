package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antigone-study/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SubmissionRepository is the interface that wraps methods for the remote submissions table
type SubmissionRepository interface {
	// Method ListApproved retrieve at most "limit" approved submissions, newest first.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListApproved(ctx context.Context, limit int) ([]models.Submission, error)
	// Method Create inserts a new, unapproved submission and fills its generated fields.
	Create(ctx context.Context, submission *models.Submission) error
}

// approvedSubmissionsLimit caps the number of contributions returned to clients
const approvedSubmissionsLimit = 100

type submissionService struct {
	repo     SubmissionRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSubmissionService creates a new contributions service
func NewSubmissionService(repo SubmissionRepository, validate *validator.Validate, logger *zap.Logger) *submissionService {
	return &submissionService{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// ListApproved retrieves approved contributions, newest first
func (s *submissionService) ListApproved(ctx context.Context) ([]models.Submission, error) {
	submissions, err := s.repo.ListApproved(ctx, approvedSubmissionsLimit)
	if err != nil {
		s.logger.Error("failed to list submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// Submit stores a new contribution awaiting moderation.
// Name, title and content are all required, surrounding whitespace is removed.
func (s *submissionService) Submit(ctx context.Context, req models.SubmissionRequest) (*models.Submission, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if err := s.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return nil, fmt.Errorf("%w: %s is %s", ErrInvalidSubmission, strings.ToLower(validationErrors[0].Field()), validationErrors[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	submission := &models.Submission{
		Name:    req.Name,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.Error("failed to create submission", zap.Error(err))
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}
