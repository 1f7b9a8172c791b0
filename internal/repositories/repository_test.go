package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStore is a kvstore.Store failing every operation
type brokenStore struct {
	err error
}

func (b *brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, b.err
}

func (b *brokenStore) Set(ctx context.Context, key, value string) error {
	return b.err
}

func (b *brokenStore) Remove(ctx context.Context, key string) error {
	return b.err
}

func (b *brokenStore) List(ctx context.Context, prefix string) ([]kvstore.Entry, error) {
	return nil, b.err
}

func newTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewProgressRepository(store, newTestLogger(t))

	progress, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewStudyProgress(), progress)

	visit := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	progress.SectionsVisited = append(progress.SectionsVisited, models.SectionThemes)
	progress.LastVisit[models.SectionThemes] = visit
	progress.TimeSpent[models.SectionThemes] = 12.5
	require.NoError(t, repo.Save(ctx, progress))

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{models.SectionThemes}, stored.SectionsVisited)
	assert.True(t, visit.Equal(stored.LastVisit[models.SectionThemes]))
	assert.Equal(t, 12.5, stored.TimeSpent[models.SectionThemes])
	assert.NotNil(t, stored.QuizResults)
}

func TestProgressRepository_PartialRecordIsNormalized(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kvstore.KeyProgress, `{"sectionsVisited":["home"]}`))
	repo := NewProgressRepository(store, newTestLogger(t))

	progress, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, progress.SectionsVisited)
	assert.NotNil(t, progress.LastVisit)
	assert.NotNil(t, progress.TimeSpent)
	assert.NotNil(t, progress.QuizResults)
}

func TestRepositories_CorruptRecordsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	for _, key := range []string{kvstore.KeyProgress, kvstore.KeyNotes, kvstore.KeyBookmarks, kvstore.KeySettings, kvstore.KeySession} {
		require.NoError(t, store.Set(ctx, key, "{not json"))
	}
	logger := newTestLogger(t)

	progress, err := NewProgressRepository(store, logger).Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, progress.SectionsVisited)

	notes, err := NewNotesRepository(store, logger).GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	bookmarks, err := NewBookmarksRepository(store, logger).GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	settings, err := NewSettingsRepository(store, logger).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	user, err := NewSessionRepository(store, logger).Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepositories_StoreErrors(t *testing.T) {
	ctx := context.Background()
	store := &brokenStore{err: errors.New("connection refused")}
	logger := newTestLogger(t)

	_, err := NewProgressRepository(store, logger).Get(ctx)
	assert.Error(t, err)
	assert.Error(t, NewProgressRepository(store, logger).Save(ctx, models.NewStudyProgress()))

	_, err = NewNotesRepository(store, logger).GetAll(ctx)
	assert.Error(t, err)
	assert.Error(t, NewNotesRepository(store, logger).SaveAll(ctx, nil))

	_, err = NewBookmarksRepository(store, logger).GetAll(ctx)
	assert.Error(t, err)

	_, err = NewSettingsRepository(store, logger).Get(ctx)
	assert.Error(t, err)

	_, err = NewSessionRepository(store, logger).Exists(ctx)
	assert.Error(t, err)
	assert.Error(t, NewSessionRepository(store, logger).Delete(ctx))

	_, _, err = NewStudentsRepository(store, logger).GetCached(ctx)
	assert.ErrorIs(t, err, store.err)
}

func TestNotesRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewNotesRepository(store, newTestLogger(t))

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	notes := []models.Note{
		{ID: "1", Section: models.SectionThemes, Content: "le destin", CreatedAt: now, UpdatedAt: now},
		{ID: "2", Section: models.SectionQuotes, Content: "« Moi, je veux tout »", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repo.SaveAll(ctx, notes))

	stored, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "1", stored[0].ID)
	assert.Equal(t, "« Moi, je veux tout »", stored[1].Content)

	// nil collections are persisted as empty arrays
	require.NoError(t, repo.SaveAll(ctx, nil))
	raw, _, err := store.Get(ctx, kvstore.KeyNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestBookmarksRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBookmarksRepository(kvstore.NewMemoryStore(), newTestLogger(t))

	bookmarks, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	require.NoError(t, repo.SaveAll(ctx, []models.Bookmark{{ID: "b1", URL: "/themes", Title: "Thèmes"}}))
	bookmarks, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "/themes", bookmarks[0].URL)
}

func TestSettingsRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(kvstore.NewMemoryStore(), newTestLogger(t))

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, settings.Theme)
	assert.Equal(t, models.LanguageArabic, settings.Language)
	assert.True(t, settings.Notifications)

	require.NoError(t, repo.Save(ctx, &models.Settings{Theme: models.ThemeLight, Language: models.LanguageFrench}))
	settings, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Settings{Theme: models.ThemeLight, Language: models.LanguageFrench}, settings)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(kvstore.NewMemoryStore(), newTestLogger(t))

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	user, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	loginTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &models.User{ID: 1, Username: "amina", Name: "أمينة", NameFr: "Amina", LoginTime: loginTime}))

	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	user, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "amina", user.Username)
	assert.True(t, loginTime.Equal(user.LoginTime))

	require.NoError(t, repo.Delete(ctx))
	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStudentsRepository_GetCached(t *testing.T) {
	tests := []struct {
		name            string
		stored          *string
		expectedFound   bool
		expectedCount   int
		expectedRemoved bool
	}{
		{
			name:          "nothing cached",
			expectedFound: false,
		},
		{
			name:          "valid cache",
			stored:        strPtr(`[{"id":1,"name":"أمينة","nameFr":"Amina","username":"amina","password":"x"}]`),
			expectedFound: true,
			expectedCount: 1,
		},
		{
			name:            "corrupt cache is removed",
			stored:          strPtr(`[{"id":`),
			expectedFound:   false,
			expectedRemoved: true,
		},
		{
			name:          "null cache",
			stored:        strPtr(`null`),
			expectedFound: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kvstore.NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, store.Set(ctx, kvstore.KeyStudents, *tt.stored))
			}
			repo := NewStudentsRepository(store, newTestLogger(t))

			students, found, err := repo.GetCached(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedFound, found)
			assert.Len(t, students, tt.expectedCount)

			_, stillStored, err := store.Get(ctx, kvstore.KeyStudents)
			require.NoError(t, err)
			if tt.expectedRemoved {
				assert.False(t, stillStored)
			} else if tt.stored != nil {
				assert.True(t, stillStored)
			}
		})
	}
}

func TestStudentsRepository_SaveCached(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewStudentsRepository(store, newTestLogger(t))

	require.NoError(t, repo.SaveCached(ctx, []models.Student{{ID: 1, Username: "amina", Password: "pw"}}))
	students, found, err := repo.GetCached(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pw", students[0].Password)
}

func strPtr(s string) *string {
	return &s
}
