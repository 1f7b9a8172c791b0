package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProgressRepository is a stateful mock implementation of ProgressRepository
type mockProgressRepository struct {
	progress  *models.StudyProgress
	err       error
	saveErr   error
	saveCalls int
}

func (m *mockProgressRepository) Get(ctx context.Context) (*models.StudyProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.progress == nil {
		return models.NewStudyProgress(), nil
	}
	// hand out a copy, as a store round trip would
	p := *m.progress
	p.SectionsVisited = append([]string{}, m.progress.SectionsVisited...)
	p.QuizResults = append([]models.QuizResult{}, m.progress.QuizResults...)
	p.LastVisit = map[string]time.Time{}
	for k, v := range m.progress.LastVisit {
		p.LastVisit[k] = v
	}
	p.TimeSpent = map[string]float64{}
	for k, v := range m.progress.TimeSpent {
		p.TimeSpent[k] = v
	}
	return &p, nil
}

func (m *mockProgressRepository) Save(ctx context.Context, progress *models.StudyProgress) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.progress = progress
	return nil
}

func newTestProgressService(repo ProgressRepository, now time.Time) *progressService {
	svc := NewProgressService(repo, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestNewProgressService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	mockRepo := &mockProgressRepository{}

	svc := NewProgressService(mockRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.repo)
	assert.Equal(t, logger, svc.logger)
}

func TestProgressService_GetProgress(t *testing.T) {
	tests := []struct {
		name          string
		mockRepo      *mockProgressRepository
		expectedError bool
	}{
		{
			name:     "empty default",
			mockRepo: &mockProgressRepository{},
		},
		{
			name:          "repository error",
			mockRepo:      &mockProgressRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestProgressService(tt.mockRepo, time.Now())

			progress, err := svc.GetProgress(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, progress)
			} else {
				assert.NoError(t, err)
				assert.Empty(t, progress.SectionsVisited)
				assert.Empty(t, progress.LastVisit)
				assert.Empty(t, progress.TimeSpent)
				assert.Empty(t, progress.QuizResults)
			}
		})
	}
}

func TestProgressService_MarkSectionVisited(t *testing.T) {
	ctx := context.Background()
	repo := &mockProgressRepository{}
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestProgressService(repo, first)

	_, err := svc.MarkSectionVisited(ctx, models.SectionThemes)
	require.NoError(t, err)

	second := first.Add(time.Hour)
	svc.now = func() time.Time { return second }
	progress, err := svc.MarkSectionVisited(ctx, models.SectionThemes)
	require.NoError(t, err)

	// set semantics, but lastVisit follows the latest visit
	assert.Equal(t, []string{models.SectionThemes}, progress.SectionsVisited)
	assert.Equal(t, second, progress.LastVisit[models.SectionThemes])

	progress, err = svc.MarkSectionVisited(ctx, models.SectionQuotes)
	require.NoError(t, err)
	assert.Equal(t, []string{models.SectionThemes, models.SectionQuotes}, progress.SectionsVisited)
	assert.Equal(t, 3, repo.saveCalls)
}

func TestProgressService_MarkPathVisited(t *testing.T) {
	ctx := context.Background()
	svc := newTestProgressService(&mockProgressRepository{}, time.Now())

	progress, err := svc.MarkPathVisited(ctx, "/personnages")
	require.NoError(t, err)
	assert.Equal(t, []string{models.SectionCharacters}, progress.SectionsVisited)

	_, err = svc.MarkPathVisited(ctx, "/unknown")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestProgressService_AddTimeSpent(t *testing.T) {
	ctx := context.Background()
	svc := newTestProgressService(&mockProgressRepository{}, time.Now())

	_, err := svc.AddTimeSpent(ctx, models.SectionOeuvre, 5)
	require.NoError(t, err)
	progress, err := svc.AddTimeSpent(ctx, models.SectionOeuvre, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 7.5, progress.TimeSpent[models.SectionOeuvre])
	assert.NotContains(t, progress.TimeSpent, models.SectionThemes)
}

func TestProgressService_AddQuizResult_KeepsLastFifty(t *testing.T) {
	ctx := context.Background()
	repo := &mockProgressRepository{}
	svc := newTestProgressService(repo, time.Now())

	for i := 1; i <= 60; i++ {
		_, err := svc.AddQuizResult(ctx, models.QuizResult{Score: i, TotalQuestions: 60, Percentage: float64(i)})
		require.NoError(t, err)
	}

	progress, err := svc.GetProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress.QuizResults, models.MaxQuizResults)
	assert.Equal(t, 11, progress.QuizResults[0].Score)
	assert.Equal(t, 60, progress.QuizResults[len(progress.QuizResults)-1].Score)
}

func TestProgressService_AddQuizResult_StoresPercentageVerbatim(t *testing.T) {
	ctx := context.Background()
	svc := newTestProgressService(&mockProgressRepository{}, time.Now())

	progress, err := svc.AddQuizResult(ctx, models.QuizResult{Score: 1, TotalQuestions: 2, Percentage: 123})
	require.NoError(t, err)
	assert.Equal(t, float64(123), progress.QuizResults[0].Percentage)
}

func TestProgressService_RecordQuiz(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestProgressService(&mockProgressRepository{}, now)

	result, err := svc.RecordQuiz(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, float64(75), result.Percentage)
	assert.Equal(t, now, result.Date)
}

func TestProgressService_WriteErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestProgressService(&mockProgressRepository{saveErr: errors.New("disk full")}, time.Now())

	_, err := svc.MarkSectionVisited(ctx, models.SectionHome)
	assert.Error(t, err)
	_, err = svc.AddTimeSpent(ctx, models.SectionHome, 1)
	assert.Error(t, err)
	_, err = svc.AddQuizResult(ctx, models.QuizResult{})
	assert.Error(t, err)
}

func TestProgressService_Summary(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	results := make([]models.QuizResult, 0, 7)
	for i, pct := range []float64{40, 60, 80, 100, 20, 50, 70} {
		results = append(results, models.QuizResult{Date: base.Add(time.Duration(i) * time.Hour), Percentage: pct})
	}

	tests := []struct {
		name     string
		progress *models.StudyProgress
		expected func(t *testing.T, s *models.ProgressSummary)
	}{
		{
			name:     "no activity",
			progress: nil,
			expected: func(t *testing.T, s *models.ProgressSummary) {
				assert.Zero(t, s.QuizzesTaken)
				assert.Zero(t, s.AverageScore)
				assert.Zero(t, s.BestScore)
				assert.Empty(t, s.RecentResults)
			},
		},
		{
			name: "with results",
			progress: &models.StudyProgress{
				SectionsVisited: []string{models.SectionHome, models.SectionThemes},
				TimeSpent:       map[string]float64{models.SectionHome: 3, models.SectionThemes: 4.5},
				QuizResults:     results,
			},
			expected: func(t *testing.T, s *models.ProgressSummary) {
				assert.Equal(t, 2, s.SectionsVisited)
				assert.Equal(t, 7.5, s.TotalTimeSpent)
				assert.Equal(t, 7, s.QuizzesTaken)
				assert.InDelta(t, 60, s.AverageScore, 0.001)
				assert.Equal(t, float64(100), s.BestScore)
				require.Len(t, s.RecentResults, 5)
				// newest first
				assert.Equal(t, float64(70), s.RecentResults[0].Percentage)
				assert.Equal(t, float64(80), s.RecentResults[4].Percentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestProgressService(&mockProgressRepository{progress: tt.progress}, time.Now())

			summary, err := svc.Summary(context.Background())

			require.NoError(t, err)
			tt.expected(t, summary)
		})
	}
}
