package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/slchatapp/backend/internal/tokens"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// Auth guards protected routes with the stateless access token; no store
// lookup happens here.
type Auth struct {
	Secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{Secret: secret}
}

func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "missing or invalid Authorization header")
		}

		claims, err := tokens.AccessClaimsFromToken(strings.TrimPrefix(header, "Bearer "), m.Secret)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// unauthorized renders the same {code, message} body the handlers use, so a
// rejection here is indistinguishable in shape from one past the guard.
func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"code":    apperr.CodeUnauthorized,
		"message": msg,
	})
}
