package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// CreateUser inserts u unless the email is already taken. The existence check
// and insert share one statement so the unique index stays the authority.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		// A registration racing in after the read lands here as a
		// unique-index violation, not as a found row.
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return apperr.ErrEmailTaken
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperr.ErrEmailTaken
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UserExists avoids loading the row when only presence matters.
func (r *GormRepo) UserExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
