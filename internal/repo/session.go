package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
)

// ReplaceSession enforces the single-session policy: any session already on
// file for the user is dropped in the same transaction that inserts the new
// one, so a second login can never orphan a live refresh credential.
func (r *GormRepo) ReplaceSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", s.UserID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(s).Error
	})
}

func (r *GormRepo) GetSessionByUserID(ctx context.Context, userID string) (*models.Session, error) {
	var session models.Session
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// RevokeSession marks the row invalid rather than deleting it; revoked
// sessions stay on file until an administrative purge.
func (r *GormRepo) RevokeSession(ctx context.Context, sessionID string, at time.Time) error {
	result := r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSession is the administrative purge; normal flows revoke instead.
func (r *GormRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.Session{}).Error
}
