package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/antigone-study/backend/internal/content"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

// QuizCatalog is the interface that wraps access to the quiz content
type QuizCatalog interface {
	// Method Quiz retrieve the questions of "locale".
	//
	// If the locale is unknown, content.ErrUnknownLocale is returned together with "nil" value.
	Quiz(locale string) ([]content.Question, error)
}

// QuizProgressRecorder is the interface that wraps the progress updates done when a quiz is completed
type QuizProgressRecorder interface {
	AddQuizResult(ctx context.Context, result models.QuizResult) (*models.StudyProgress, error)
	MarkSectionVisited(ctx context.Context, sectionID string) (*models.StudyProgress, error)
}

type quizService struct {
	catalog  QuizCatalog
	progress QuizProgressRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(catalog QuizCatalog, progress QuizProgressRecorder, logger *zap.Logger) *quizService {
	return &quizService{
		catalog:  catalog,
		progress: progress,
		logger:   logger,
		now:      time.Now,
	}
}

// Questions returns the questions of a locale without their answers
func (s *quizService) Questions(locale string) ([]models.QuizQuestion, error) {
	questions, err := s.catalog.Quiz(locale)
	if err != nil {
		return nil, err
	}

	public := make([]models.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		public = append(public, models.QuizQuestion{
			Index:    i,
			Question: q.Question,
			Options:  slices.Clone(q.Options),
		})
	}
	return public, nil
}

// Submit grades the answers, records the result in the progress history and marks the quiz section visited.
//
// "req.Answers" must hold one entry per question, each being one of the options or empty for a skipped question.
func (s *quizService) Submit(ctx context.Context, req models.QuizSubmitRequest) (*models.QuizOutcome, error) {
	questions, err := s.catalog.Quiz(req.Locale)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidQuizAnswers, len(questions), len(req.Answers))
	}

	score := 0
	reviews := make([]models.QuizAnswerReview, 0, len(questions))
	for i, q := range questions {
		answer := req.Answers[i]
		if answer != "" && !slices.Contains(q.Options, answer) {
			return nil, fmt.Errorf("%w: answer %d is not an option", ErrInvalidQuizAnswers, i+1)
		}
		correct := answer == q.CorrectAnswer
		if correct {
			score++
		}
		reviews = append(reviews, models.QuizAnswerReview{
			Index:         i,
			Answer:        answer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
			Explanation:   q.Explanation,
		})
	}

	result := models.NewQuizResult(score, len(questions), s.now().UTC())
	if _, err := s.progress.AddQuizResult(ctx, result); err != nil {
		return nil, err
	}
	if _, err := s.progress.MarkSectionVisited(ctx, models.SectionQuiz); err != nil {
		return nil, err
	}

	s.logger.Debug("quiz graded", zap.String("locale", req.Locale), zap.Int("score", score), zap.Int("total", len(questions)))

	return &models.QuizOutcome{
		Result:  result,
		Rating:  models.RatingFor(result.Percentage),
		Reviews: reviews,
	}, nil
}
