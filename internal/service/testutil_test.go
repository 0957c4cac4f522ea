package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/repo"
)

type testEnv struct {
	DB            *gorm.DB
	Repo          *repo.GormRepo
	Sessions      *SessionService
	Accounts      *AccountService
	Conversations *ConversationService
	Messages      *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Conversation{},
		&models.ConversationUser{},
		&models.Message{},
	))

	store := repo.New(db)
	secret := []byte("test-jwt-secret")

	sessions := &SessionService{Repo: store, Secret: secret}
	conversations := &ConversationService{Repo: store}

	return &testEnv{
		DB:            db,
		Repo:          store,
		Sessions:      sessions,
		Accounts:      &AccountService{Repo: store, Sessions: sessions, Secret: secret},
		Conversations: conversations,
		Messages:      &MessageService{Repo: store, Conversations: conversations},
	}
}

func uniqueEmail() string {
	return "u_" + uuid.NewString() + "@example.com"
}

func (env *testEnv) registerUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()

	user, err := env.Accounts.Register(context.Background(), RegisterInput{
		Email:     uniqueEmail(),
		Password:  "Secret123",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}
