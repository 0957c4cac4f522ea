package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slchatapp/backend/internal/models"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

func TestSessionService_CreateThenVerify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.registerUser(t, models.RoleUser)

	res, err := env.Sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, res.RefreshToken)
	require.NotNil(t, res.Session)
	assert.Equal(t, user.ID, res.Session.UserID)
	assert.NotEqual(t, res.RefreshToken, res.Session.RefreshTokenHash)
	assert.True(t, res.Session.ExpiresAt.After(time.Now().UTC()))

	session, err := env.Sessions.VerifySession(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, session.ID)
}

func TestSessionService_Verify_GarbageToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Sessions.VerifySession(context.Background(), "not-a-valid-jwt")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestSessionService_Verify_AfterRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.registerUser(t, models.RoleUser)

	res, err := env.Sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.Sessions.RevokeSession(ctx, user.ID))

	_, err = env.Sessions.VerifySession(ctx, res.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestSessionService_Revoke_NoSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, models.RoleUser)

	err := env.Sessions.RevokeSession(context.Background(), user.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSessionService_SecondLoginSupersedesFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.registerUser(t, models.RoleUser)

	first, err := env.Sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	// Refresh tokens for the same user signed within the same second are
	// byte-identical JWTs, so move the clock before the second login.
	time.Sleep(1100 * time.Millisecond)

	second, err := env.Sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	var count int64
	require.NoError(t, env.DB.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = env.Sessions.VerifySession(ctx, first.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = env.Sessions.VerifySession(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestSessionService_Verify_ExpiredRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.registerUser(t, models.RoleUser)

	res, err := env.Sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	// The signed token is still valid; only the stored row has expired.
	require.NoError(t, env.DB.Model(&models.Session{}).
		Where("id = ?", res.Session.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	_, err = env.Sessions.VerifySession(ctx, res.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}
