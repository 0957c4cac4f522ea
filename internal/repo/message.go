package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
)

func (r *GormRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *GormRepo) GetMessagesByConversationID(ctx context.Context, conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	if err := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// LatestMessage returns the newest message of a conversation, or nil when the
// conversation has none.
func (r *GormRepo) LatestMessage(ctx context.Context, conversationID string) (*models.Message, error) {
	var msg models.Message
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkDelivered acknowledges a reader's fetch: every message in the
// conversation sent by someone else moves SENT -> DELIVERED. Nothing pushes
// messages to devices; this runs when a recipient fetches.
func (r *GormRepo) MarkDelivered(ctx context.Context, conversationID, readerID string) error {
	return r.DB.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND status = ?",
			conversationID, readerID, models.MessageSent).
		Update("status", models.MessageDelivered).Error
}
