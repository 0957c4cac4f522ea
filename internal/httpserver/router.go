package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slchatapp/backend/internal/middleware"
)

type Deps struct {
	AuthHandler         *AuthHTTP
	ConversationHandler *ConversationHTTP
	MessageHandler      *MessageHTTP
	JWTSecret           []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/user/create", d.AuthHandler.Register)
	e.POST("/user/login", d.AuthHandler.Login)
	e.GET("/user/refresh-token", d.AuthHandler.Refresh)

	authMw := middleware.NewAuth(d.JWTSecret)

	private := e.Group("")
	private.Use(authMw.RequireAuth)

	private.GET("/user/logout", d.AuthHandler.Logout)

	private.POST("/conversation/create", d.ConversationHandler.Create)
	private.GET("/conversation", d.ConversationHandler.List)
	private.POST("/conversation/addUsers", d.ConversationHandler.AddUsers)

	private.GET("/message/conversation/:conversationId", d.MessageHandler.ListByConversation)
	private.POST("/message/add", d.MessageHandler.Add)
}
