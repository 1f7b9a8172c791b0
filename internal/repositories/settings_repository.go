package repositories

import (
	"context"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type settingsRepository struct {
	record jsonRecord[models.Settings]
}

// NewSettingsRepository creates a new instance of the SettingsRepository interface
func NewSettingsRepository(store kvstore.Store, logger *zap.Logger) *settingsRepository {
	return &settingsRepository{
		record: jsonRecord[models.Settings]{store: store, key: kvstore.KeySettings, logger: logger},
	}
}

// Method Get is a SettingsRepository implementation for retrieving saved settings.
// Defaults are returned when nothing was saved yet.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	settings, ok, err := r.record.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// Method Save is a SettingsRepository implementation for replacing saved settings.
func (r *settingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	return r.record.save(ctx, *settings)
}
