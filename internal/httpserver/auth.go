package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/service"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

type AuthHTTP struct {
	Svc *service.AccountService
}

type registerRequest struct {
	Email     string `json:"emailAddress"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"emailAddress"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_create")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bind_failed", "error", err)
		return fail(c, apperr.Invalid("invalid body"))
	}

	user, err := h.Svc.Register(ctx, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.UserRole(req.Role),
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bind_failed", "error", err)
		return fail(c, apperr.Invalid("invalid body"))
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return fail(c, err)
	}

	l.Info("login_successful", "user_id", res.User.ID)
	return ok(c, loginResponse{
		User:         res.User,
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	refreshToken := c.Request().Header.Get("x-refresh-token")
	if refreshToken == "" {
		return fail(c, apperr.Unauthorized("refresh token is required"))
	}

	res, err := h.Svc.Refresh(ctx, refreshToken)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, loginResponse{
		User:         res.User,
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Logout treats a missing session as already-logged-out, but says so in the
// log rather than pretending the revoke happened.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_logout")

	if err := h.Svc.Logout(ctx, userID(c)); err != nil {
		if !apperr.IsNotFound(err) {
			return fail(c, err)
		}
		l.Warn("logout_without_session", "user_id", userID(c))
	}

	return ok(c, echo.Map{"message": "logged out"})
}
