package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProgressService is a mock implementation of ProgressService
type mockProgressService struct {
	progress *models.StudyProgress
	err      error

	visitedSection string
	visitedPath    string
}

func newMockProgressService() *mockProgressService {
	return &mockProgressService{progress: models.NewStudyProgress()}
}

func (m *mockProgressService) GetProgress(ctx context.Context) (*models.StudyProgress, error) {
	return m.progress, m.err
}

func (m *mockProgressService) Summary(ctx context.Context) (*models.ProgressSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.ProgressSummary{
		SectionsVisited: len(m.progress.SectionsVisited),
		QuizzesTaken:    len(m.progress.QuizResults),
		RecentResults:   []models.QuizResult{},
	}, nil
}

func (m *mockProgressService) MarkSectionVisited(ctx context.Context, sectionID string) (*models.StudyProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.visitedSection = sectionID
	m.progress.SectionsVisited = append(m.progress.SectionsVisited, sectionID)
	return m.progress, nil
}

func (m *mockProgressService) MarkPathVisited(ctx context.Context, path string) (*models.StudyProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	section, ok := models.SectionForPath(path)
	if !ok {
		return nil, services.ErrUnknownSection
	}
	m.visitedPath = path
	m.progress.SectionsVisited = append(m.progress.SectionsVisited, section)
	return m.progress, nil
}

func (m *mockProgressService) AddTimeSpent(ctx context.Context, sectionID string, minutes float64) (*models.StudyProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.progress.TimeSpent[sectionID] += minutes
	return m.progress, nil
}

func (m *mockProgressService) RecordQuiz(ctx context.Context, score, totalQuestions int) (*models.QuizResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := models.NewQuizResult(score, totalQuestions, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	m.progress.QuizResults = append(m.progress.QuizResults, result)
	return &result, nil
}

func TestProgressHandler_GetProgress(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "service error", err: errors.New("store unavailable"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockProgressService()
			svc.err = tt.err
			router := setupTestRouter(NewProgressHandler(svc, zap.NewNop()))

			w := performRequest(t, router, http.MethodGet, "/api/v1/progress", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			w = performRequest(t, router, http.MethodGet, "/api/v1/progress/summary", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestProgressHandler_RecordVisit(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		err            error
		expectedStatus int
		validateFunc   func(*testing.T, *mockProgressService, *httptest.ResponseRecorder)
	}{
		{
			name:           "by section",
			requestBody:    models.VisitRequest{Section: models.SectionThemes},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, svc *mockProgressService, w *httptest.ResponseRecorder) {
				assert.Equal(t, models.SectionThemes, svc.visitedSection)
				progress := decodeResponse[models.StudyProgress](t, w)
				assert.Equal(t, []string{models.SectionThemes}, progress.SectionsVisited)
			},
		},
		{
			name:           "by path",
			requestBody:    models.VisitRequest{Path: "/personnages/"},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, svc *mockProgressService, w *httptest.ResponseRecorder) {
				assert.Equal(t, "/personnages/", svc.visitedPath)
				assert.Empty(t, svc.visitedSection)
			},
		},
		{
			name:           "unknown path",
			requestBody:    models.VisitRequest{Path: "/nowhere"},
			expectedStatus: http.StatusBadRequest,
			validateFunc: func(t *testing.T, svc *mockProgressService, w *httptest.ResponseRecorder) {
				assert.Equal(t, "unknown section", errorMessage(t, w))
			},
		},
		{
			name:           "neither section nor path",
			requestBody:    models.VisitRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			requestBody:    models.VisitRequest{Section: models.SectionQuiz},
			err:            errors.New("store unavailable"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockProgressService()
			svc.err = tt.err
			router := setupTestRouter(NewProgressHandler(svc, zap.NewNop()))

			w := performRequest(t, router, http.MethodPost, "/api/v1/progress/visits", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(t, svc, w)
			}
		})
	}
}

func TestProgressHandler_AddTimeSpent(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
	}{
		{name: "success", requestBody: models.TimeSpentRequest{Section: models.SectionQuotes, Minutes: 2.5}, expectedStatus: http.StatusOK},
		{name: "missing section", requestBody: models.TimeSpentRequest{Minutes: 1}, expectedStatus: http.StatusBadRequest},
		{name: "negative minutes", requestBody: models.TimeSpentRequest{Section: models.SectionQuotes, Minutes: -1}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockProgressService()
			router := setupTestRouter(NewProgressHandler(svc, zap.NewNop()))

			w := performRequest(t, router, http.MethodPost, "/api/v1/progress/time", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestProgressHandler_RecordQuizResult(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		err            error
		expectedStatus int
		validateFunc   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "success",
			requestBody:    models.QuizResultRequest{Score: 3, TotalQuestions: 4},
			expectedStatus: http.StatusCreated,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				result := decodeResponse[models.QuizResult](t, w)
				assert.Equal(t, 3, result.Score)
				assert.InDelta(t, 75.0, result.Percentage, 0.001)
			},
		},
		{
			name:           "zero questions",
			requestBody:    models.QuizResultRequest{Score: 0, TotalQuestions: 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "score above total",
			requestBody:    models.QuizResultRequest{Score: 5, TotalQuestions: 4},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			requestBody:    models.QuizResultRequest{Score: 1, TotalQuestions: 4},
			err:            errors.New("store unavailable"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockProgressService()
			svc.err = tt.err
			router := setupTestRouter(NewProgressHandler(svc, zap.NewNop()))

			w := performRequest(t, router, http.MethodPost, "/api/v1/progress/quiz-results", tt.requestBody)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(t, w)
			}
		})
	}
}
