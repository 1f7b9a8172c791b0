package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressRepository is the interface that wraps methods for progress record access
type ProgressRepository interface {
	// Method Get retrieve the progress record.
	//
	// If no record was saved yet, an empty progress record is returned.
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	Get(ctx context.Context) (*models.StudyProgress, error)
	// Method Save replaces the progress record.
	Save(ctx context.Context, progress *models.StudyProgress) error
}

// recentResultsCount is the number of quiz results shown in the progress summary
const recentResultsCount = 5

type progressService struct {
	repo   ProgressRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(repo ProgressRepository, logger *zap.Logger) *progressService {
	return &progressService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetProgress retrieves the progress record, empty when nothing was recorded
func (s *progressService) GetProgress(ctx context.Context) (*models.StudyProgress, error) {
	progress, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("failed to get progress", zap.Error(err))
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// MarkSectionVisited records a visit of "sectionID".
//
// The section is added to the visited set only once, but its last visit time is updated on every call.
func (s *progressService) MarkSectionVisited(ctx context.Context, sectionID string) (*models.StudyProgress, error) {
	progress, err := s.GetProgress(ctx)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(progress.SectionsVisited, sectionID) {
		progress.SectionsVisited = append(progress.SectionsVisited, sectionID)
	}
	progress.LastVisit[sectionID] = s.now().UTC()

	if err := s.save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// MarkPathVisited resolves a client page path to its section and records the visit
func (s *progressService) MarkPathVisited(ctx context.Context, path string) (*models.StudyProgress, error) {
	sectionID, ok := models.SectionForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, path)
	}
	return s.MarkSectionVisited(ctx, sectionID)
}

// AddTimeSpent adds "minutes" to the time spent in "sectionID"
func (s *progressService) AddTimeSpent(ctx context.Context, sectionID string, minutes float64) (*models.StudyProgress, error) {
	progress, err := s.GetProgress(ctx)
	if err != nil {
		return nil, err
	}

	progress.TimeSpent[sectionID] += minutes

	if err := s.save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// AddQuizResult appends a quiz result to the history.
// Only the most recent MaxQuizResults results are kept.
func (s *progressService) AddQuizResult(ctx context.Context, result models.QuizResult) (*models.StudyProgress, error) {
	progress, err := s.GetProgress(ctx)
	if err != nil {
		return nil, err
	}

	progress.QuizResults = append(progress.QuizResults, result)
	if overflow := len(progress.QuizResults) - models.MaxQuizResults; overflow > 0 {
		progress.QuizResults = slices.Clone(progress.QuizResults[overflow:])
	}

	if err := s.save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// RecordQuiz builds a result from a score and records it
func (s *progressService) RecordQuiz(ctx context.Context, score, totalQuestions int) (*models.QuizResult, error) {
	result := models.NewQuizResult(score, totalQuestions, s.now().UTC())
	if _, err := s.AddQuizResult(ctx, result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary computes the statistics of the progress page
func (s *progressService) Summary(ctx context.Context) (*models.ProgressSummary, error) {
	progress, err := s.GetProgress(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.ProgressSummary{
		SectionsVisited: len(progress.SectionsVisited),
		QuizzesTaken:    len(progress.QuizResults),
		RecentResults:   []models.QuizResult{},
	}

	for _, minutes := range progress.TimeSpent {
		summary.TotalTimeSpent += minutes
	}

	var total float64
	for i, result := range progress.QuizResults {
		total += result.Percentage
		if i == 0 || result.Percentage > summary.BestScore {
			summary.BestScore = result.Percentage
		}
	}
	if summary.QuizzesTaken > 0 {
		summary.AverageScore = total / float64(summary.QuizzesTaken)
	}

	for i := len(progress.QuizResults) - 1; i >= 0 && len(summary.RecentResults) < recentResultsCount; i-- {
		summary.RecentResults = append(summary.RecentResults, progress.QuizResults[i])
	}

	return summary, nil
}

func (s *progressService) save(ctx context.Context, progress *models.StudyProgress) error {
	if err := s.repo.Save(ctx, progress); err != nil {
		s.logger.Error("failed to save progress", zap.Error(err))
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
