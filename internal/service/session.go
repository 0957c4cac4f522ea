package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/hash"
	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/repo"
	"github.com/slchatapp/backend/internal/tokens"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// SessionService owns the refresh-credential lifecycle: NONE -> ACTIVE ->
// REVOKED|EXPIRED, with at most one active session per user.
type SessionService struct {
	Repo   *repo.GormRepo
	Secret []byte
}

// SessionResult carries the freshly persisted session and the one place the
// refresh token ever exists in plaintext on the server side. Callers hand it
// to the client and must not log or store it.
type SessionResult struct {
	Session      *models.Session
	RefreshToken string
}

// CreateSession mints a refresh token for the user and stores its hash,
// replacing any session already on file.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*SessionResult, error) {
	l := logging.FromContext(ctx).With("svc", "session.create")
	now := time.Now().UTC()

	refreshToken, err := tokens.NewRefreshToken(s.Secret, userID, now)
	if err != nil {
		l.Error("sign_failed", "error", err)
		return nil, apperr.Internal("failed to issue refresh token", err)
	}

	tokenHash, err := hash.HashToken(refreshToken)
	if err != nil {
		l.Error("hash_failed", "error", err)
		return nil, err
	}

	session := &models.Session{
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        now.Add(tokens.RefreshTokenTTL),
	}
	if err := s.Repo.ReplaceSession(ctx, session); err != nil {
		l.Error("store_failed", "error", err)
		return nil, apperr.Internal("failed to persist session", err)
	}

	return &SessionResult{Session: session, RefreshToken: refreshToken}, nil
}

// VerifySession checks the presented refresh token end to end: signature and
// expiry, then the stored session's state, then the plaintext against the
// stored hash so a superseded token cannot ride on a newer session row.
func (s *SessionService) VerifySession(ctx context.Context, refreshToken string) (*models.Session, error) {
	l := logging.FromContext(ctx).With("svc", "session.verify")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.Secret)
	if err != nil {
		l.Warn("token_rejected", "error", err)
		return nil, apperr.ErrInvalidToken
	}

	session, err := s.Repo.GetSessionByUserID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("session_missing", "user_id", claims.Subject)
			return nil, apperr.ErrSessionInvalid
		}
		l.Error("lookup_failed", "error", err)
		return nil, apperr.Internal("failed to load session", err)
	}

	if !session.Live(time.Now().UTC()) {
		l.Warn("session_dead", "user_id", claims.Subject)
		return nil, apperr.ErrSessionInvalid
	}

	if !hash.CompareToken(refreshToken, session.RefreshTokenHash) {
		l.Warn("token_superseded", "user_id", claims.Subject)
		return nil, apperr.ErrSessionInvalid
	}

	return session, nil
}

// RevokeSession invalidates the user's current session.
func (s *SessionService) RevokeSession(ctx context.Context, userID string) error {
	l := logging.FromContext(ctx).With("svc", "session.revoke")

	session, err := s.Repo.GetSessionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrSessionNotFound
		}
		l.Error("lookup_failed", "error", err)
		return apperr.Internal("failed to load session", err)
	}

	if err := s.Repo.RevokeSession(ctx, session.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrSessionNotFound
		}
		l.Error("revoke_failed", "error", err)
		return apperr.Internal("failed to revoke session", err)
	}
	return nil
}
