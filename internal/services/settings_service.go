package services

import (
	"context"
	"fmt"

	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

// SettingsRepository is the interface that wraps methods for settings record access
type SettingsRepository interface {
	// Method Get retrieve saved settings, or the defaults when nothing was saved.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	Get(ctx context.Context) (*models.Settings, error)
	// Method Save replaces saved settings.
	Save(ctx context.Context, settings *models.Settings) error
}

type settingsService struct {
	repo   SettingsRepository
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsRepository, logger *zap.Logger) *settingsService {
	return &settingsService{
		repo:   repo,
		logger: logger,
	}
}

// GetSettings retrieves the settings, defaulting to dark theme, Arabic and notifications on
func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("failed to get settings", zap.Error(err))
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings validates and saves the settings
//
// For successful results:
//
// - theme must be "dark" or "light"
//
// - language must be "ar" or "fr"
func (s *settingsService) SaveSettings(ctx context.Context, settings *models.Settings) error {
	switch settings.Theme {
	case models.ThemeDark, models.ThemeLight:
	default:
		return fmt.Errorf("%w: theme must be dark or light", ErrInvalidSettings)
	}
	switch settings.Language {
	case models.LanguageArabic, models.LanguageFrench:
	default:
		return fmt.Errorf("%w: language must be ar or fr", ErrInvalidSettings)
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		s.logger.Error("failed to save settings", zap.Error(err))
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
