package service

import (
	"context"
	"strings"

	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/repo"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// MessageService is a thin gateway: every access decision is delegated to the
// conversation service before storage is touched.
type MessageService struct {
	Repo          *repo.GormRepo
	Conversations *ConversationService
}

func (s *MessageService) ListMessages(ctx context.Context, conversationID, requesterID string) ([]models.Message, error) {
	l := logging.FromContext(ctx).With("svc", "message.list")

	if err := s.Conversations.VerifyMembership(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}

	// The fetch doubles as the delivery acknowledgment: everything addressed
	// to the requester flips to DELIVERED before it is read back.
	if err := s.Repo.MarkDelivered(ctx, conversationID, requesterID); err != nil {
		l.Error("ack_failed", "error", err)
		return nil, apperr.Internal("failed to acknowledge delivery", err)
	}

	msgs, err := s.Repo.GetMessagesByConversationID(ctx, conversationID)
	if err != nil {
		l.Error("fetch_failed", "error", err)
		return nil, apperr.Internal("failed to load messages", err)
	}
	return msgs, nil
}

// PostMessage stores a message as SENT and returns its id. Nothing is pushed
// to other devices; recipients fetch.
func (s *MessageService) PostMessage(ctx context.Context, conversationID, content, senderID string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "message.post")

	if strings.TrimSpace(content) == "" {
		return "", apperr.Invalid("message content is required")
	}

	if err := s.Conversations.VerifyMembership(ctx, conversationID, senderID); err != nil {
		return "", err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Status:         models.MessageSent,
	}
	if err := s.Repo.CreateMessage(ctx, msg); err != nil {
		l.Error("store_failed", "error", err)
		return "", apperr.Internal("failed to store message", err)
	}
	return msg.ID, nil
}
