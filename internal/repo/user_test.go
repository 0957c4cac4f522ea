package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

func newTestRepo(t *testing.T) (*GormRepo, *gorm.DB) {
	t.Helper()

	// A plain ":memory:" DSN gives every pooled connection its own database;
	// a named shared-cache DSN keeps the schema visible to all connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return New(db), db
}

func testUser(email string) *models.User {
	return &models.User{
		Email:        email,
		PasswordHash: "stored-hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
		IsActive:     true,
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, testUser("dup@example.com")))

	err := r.CreateUser(ctx, testUser("dup@example.com"))
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

// A registration that lands between the availability read and the insert
// surfaces as a unique-index violation instead of a found row; both paths
// must report the email as taken.
func TestCreateUser_RacingDuplicateReportsEmailTaken(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()

	seeded := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("test:seed_rival", func(tx *gorm.DB) {
			if seeded {
				return
			}
			seeded = true
			require.NoError(t, db.Create(testUser("raced@example.com")).Error)
		}))

	err := r.CreateUser(ctx, testUser("raced@example.com"))
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}
