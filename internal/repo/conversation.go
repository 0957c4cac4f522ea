package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/models"
)

// CreateConversation persists the conversation and seeds its initial
// membership in one transaction, so a conversation can never exist without
// its intended members.
func (r *GormRepo) CreateConversation(ctx context.Context, conv *models.Conversation, memberIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := models.ConversationUser{
				ConversationID: conv.ID,
				UserID:         userID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) GetConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *GormRepo) IsMember(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.ConversationUser{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMembers inserts membership rows for userIDs, skipping users who already
// belong. The whole batch commits or rolls back together.
func (r *GormRepo) AddMembers(ctx context.Context, conversationID string, userIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			var count int64
			if err := tx.Model(&models.ConversationUser{}).
				Where("conversation_id = ? AND user_id = ?", conversationID, userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			member := models.ConversationUser{
				ConversationID: conversationID,
				UserID:         userID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) ListConversationsByUserID(ctx context.Context, userID string, typeFilter models.ConversationType) ([]models.Conversation, error) {
	var convs []models.Conversation
	q := r.DB.WithContext(ctx).
		Joins("JOIN conversation_users ON conversation_users.conversation_id = conversations.id").
		Where("conversation_users.user_id = ?", userID).
		Where("conversations.is_deleted = ?", false)
	if typeFilter != "" {
		q = q.Where("conversations.type = ?", typeFilter)
	}
	if err := q.Order("conversations.updated_at DESC").Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

// GetMembers returns the conversation's users ordered by join time, then id,
// so callers deriving display names get a stable order.
func (r *GormRepo) GetMembers(ctx context.Context, conversationID string) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN conversation_users ON conversation_users.user_id = users.id").
		Where("conversation_users.conversation_id = ?", conversationID).
		Order("conversation_users.joined_at ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
