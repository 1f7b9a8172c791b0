package repositories

import (
	"context"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

type sessionRepository struct {
	record jsonRecord[models.User]
}

// NewSessionRepository creates a new instance of the SessionRepository interface
func NewSessionRepository(store kvstore.Store, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		record: jsonRecord[models.User]{store: store, key: kvstore.KeySession, logger: logger},
	}
}

// Method Get is a SessionRepository implementation for retrieving the session record.
// "nil" is returned when there is no session or the record cannot be decoded.
func (r *sessionRepository) Get(ctx context.Context) (*models.User, error) {
	user, ok, err := r.record.loadOrDefault(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return user, nil
}

// Method Exists is a SessionRepository implementation for checking the presence of the session record.
func (r *sessionRepository) Exists(ctx context.Context) (bool, error) {
	return r.record.exists(ctx)
}

// Method Save is a SessionRepository implementation for persisting the session record.
func (r *sessionRepository) Save(ctx context.Context, user *models.User) error {
	return r.record.save(ctx, *user)
}

// Method Delete is a SessionRepository implementation for removing the session record.
func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.record.remove(ctx)
}
