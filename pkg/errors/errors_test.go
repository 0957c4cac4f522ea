package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeNotFound, CodeOf(ErrUserNotFound))
	assert.Equal(t, CodeUnauthorized, CodeOf(ErrInvalidCredentials))
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
	assert.Equal(t, CodeInternal, CodeOf(Internal("boom", stderrors.New("db down"))))
}

func TestInternal_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection refused")
	err := Internal("failed to load user", cause)

	require.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	// The cause must not leak into the client-safe message.
	assert.Equal(t, "an unexpected error occurred", MessageOf(err))
}

func TestMessageOf_DomainErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid credentials", MessageOf(ErrInvalidCredentials))
	assert.Equal(t, "an unexpected error occurred", MessageOf(stderrors.New("raw gorm error")))
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalid, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInternal, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus())
	}
}

func TestSentinelsAreIsable(t *testing.T) {
	t.Parallel()

	wrapped := Wrap(CodeUnauthorized, "login failed", ErrInvalidCredentials)
	assert.True(t, stderrors.Is(wrapped, ErrInvalidCredentials))
}
