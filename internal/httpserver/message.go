package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/service"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

type MessageHTTP struct {
	Svc *service.MessageService
}

type addMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

func (h *MessageHTTP) ListByConversation(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID := c.Param("conversationId")
	if conversationID == "" {
		return fail(c, apperr.Invalid("conversationId is required"))
	}

	msgs, err := h.Svc.ListMessages(ctx, conversationID, userID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, msgs)
}

func (h *MessageHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message_add")

	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bind_failed", "error", err)
		return fail(c, apperr.Invalid("invalid body"))
	}
	if req.ConversationID == "" {
		return fail(c, apperr.Invalid("conversationId is required"))
	}

	id, err := h.Svc.PostMessage(ctx, req.ConversationID, req.Content, userID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"messageId": id})
}
