package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/service"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

type ConversationHTTP struct {
	Svc *service.ConversationService
}

type createConversationRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	TargetUserID string `json:"targetUserId"`
}

type addUsersRequest struct {
	ConversationID string   `json:"conversationId"`
	UserEmails     []string `json:"userEmails"`
}

func (h *ConversationHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "conversation_create")

	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bind_failed", "error", err)
		return fail(c, apperr.Invalid("invalid body"))
	}

	conv, err := h.Svc.CreateConversation(ctx, service.CreateConversationInput{
		Type:         models.ConversationType(req.Type),
		Name:         req.Name,
		TargetUserID: req.TargetUserID,
	}, userID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, conv)
}

func (h *ConversationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	typeFilter := models.ConversationType(c.QueryParam("type"))
	includeLastMessage := c.QueryParam("includeLastMessage") == "1"

	views, err := h.Svc.ListConversations(ctx, userID(c), typeFilter, includeLastMessage)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, views)
}

func (h *ConversationHTTP) AddUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "conversation_add_users")

	var req addUsersRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bind_failed", "error", err)
		return fail(c, apperr.Invalid("invalid body"))
	}
	if req.ConversationID == "" || len(req.UserEmails) == 0 {
		return fail(c, apperr.Invalid("conversationId and userEmails are required"))
	}

	if err := h.Svc.AddUsers(ctx, req.ConversationID, req.UserEmails, models.UserRole(userRole(c))); err != nil {
		return fail(c, err)
	}

	return c.NoContent(http.StatusOK)
}
