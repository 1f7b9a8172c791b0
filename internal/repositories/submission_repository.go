package repositories

import (
	"context"
	"fmt"

	"github.com/antigone-study/backend/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type submissionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new instance of the SubmissionRepository interface.
// "db" is a connection to the remote contributions database.
func NewSubmissionRepository(db *sqlx.DB, logger *zap.Logger) *submissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

// Method ListApproved is a SubmissionRepository implementation for retrieving approved submissions, newest first.
func (r *submissionRepository) ListApproved(ctx context.Context, limit int) ([]models.Submission, error) {
	query := `
		SELECT id, created_at, name, title, content, is_approved
		FROM submissions
		WHERE is_approved = true
		ORDER BY created_at DESC
		LIMIT $1
	`

	submissions := []models.Submission{}
	if err := r.db.SelectContext(ctx, &submissions, query, limit); err != nil {
		r.logger.Error("failed to query submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}

	return submissions, nil
}

// Method Create is a SubmissionRepository implementation for inserting a new submission.
// Generated columns are written back into "submission".
func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (name, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, is_approved
	`

	err := r.db.QueryRowxContext(ctx, query, submission.Name, submission.Title, submission.Content).
		Scan(&submission.ID, &submission.CreatedAt, &submission.IsApproved)
	if err != nil {
		r.logger.Error("failed to insert submission", zap.Error(err))
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}
