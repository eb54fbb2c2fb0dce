package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	ListByUser(ctx context.Context, userID uint) ([]models.Session, error)
	DeleteByRefreshToken(ctx context.Context, userID uint, refreshToken string) error
	DeleteExpired(ctx context.Context, userID uint, before time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs a GORM-backed session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *sessionRepository) DeleteByRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND refresh_token = ?", userID, refreshToken).
		Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, userID uint, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at < ?", userID, before).
		Delete(&models.Session{})

	return result.RowsAffected, result.Error
}
