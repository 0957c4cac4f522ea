package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/events"
	"github.com/slchatapp/backend/internal/hash"
	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/repo"
	"github.com/slchatapp/backend/internal/tokens"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// AccountService orchestrates registration, login, token refresh and logout
// on top of the session service.
type AccountService struct {
	Repo     *repo.GormRepo
	Sessions *SessionService
	Secret   []byte
	Producer *events.Producer
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.UserRole
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, apperr.Invalid("email and password are required")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, apperr.Invalid("unknown role")
	}

	pwHash, err := hash.Hash(in.Password)
	if err != nil {
		l.Error("hash_failed", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if apperr.IsAlreadyExists(err) {
			l.Warn("email_taken", "email", in.Email)
			return nil, err
		}
		l.Error("store_failed", "error", err)
		return nil, apperr.Internal("failed to create user", err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID)
	return user, nil
}

// Login verifies credentials and mints the token pair. Unknown email and
// wrong password produce the same error so responses cannot be used to probe
// which addresses are registered.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.login")

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		l.Error("lookup_failed", "error", err)
		return nil, apperr.Internal("failed to load user", err)
	}
	if !user.IsActive || !hash.Compare(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	accessToken, err := tokens.NewAccessToken(s.Secret, user.ID, user.Email, string(user.Role), now)
	if err != nil {
		l.Error("sign_failed", "error", err)
		return nil, apperr.Internal("failed to issue access token", err)
	}

	sess, err := s.Sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		l.Error("last_login_update_failed", "error", err)
		return nil, apperr.Internal("failed to update last login", err)
	}
	user.LastLoginAt = &now

	s.publish(ctx, events.EventUserLogin, user.ID)
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: sess.RefreshToken,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated; the client keeps presenting the same one until
// it expires or the session is revoked.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.refresh")

	session, err := s.Sessions.VerifySession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		l.Error("lookup_failed", "error", err)
		return nil, apperr.Internal("failed to load user", err)
	}
	if !user.IsActive {
		return nil, apperr.ErrUserNotFound
	}

	accessToken, err := tokens.NewAccessToken(s.Secret, user.ID, user.Email, string(user.Role), time.Now().UTC())
	if err != nil {
		l.Error("sign_failed", "error", err)
		return nil, apperr.Internal("failed to issue access token", err)
	}

	s.publish(ctx, events.EventTokenRefreshed, user.ID)
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the user's session. A missing session surfaces as NotFound;
// the handler decides how fatal that is.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	if err := s.Sessions.RevokeSession(ctx, userID); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserLogout, userID)
	return nil
}

// publish is best effort: a broker outage must not fail the auth flow.
func (s *AccountService) publish(ctx context.Context, eventType, userID string) {
	if err := s.Producer.Publish(ctx, eventType, userID); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
