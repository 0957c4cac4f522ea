package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "github.com/slchatapp/backend/pkg/errors"
)

// fail renders a service error with the taxonomy's status mapping. Internal
// causes never reach the body; they were already logged at the source.
func fail(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	return c.JSON(code.HTTPStatus(), echo.Map{
		"code":    code,
		"message": apperr.MessageOf(err),
	})
}

func ok(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func userID(c echo.Context) string {
	if id, okAssert := c.Get("user_id").(string); okAssert {
		return id
	}
	return ""
}

func userRole(c echo.Context) string {
	if role, okAssert := c.Get("role").(string); okAssert {
		return role
	}
	return ""
}
