package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/models"
	"github.com/slchatapp/backend/internal/repo"
	apperr "github.com/slchatapp/backend/pkg/errors"
)

// ConversationService is the membership authority: every message read or
// write goes through VerifyMembership, and rosters change only here.
type ConversationService struct {
	Repo *repo.GormRepo
}

type CreateConversationInput struct {
	Type         models.ConversationType
	Name         string
	TargetUserID string
}

// ConversationView is a conversation enriched for listing: private chats get
// a synthesized name and the newest message can be attached.
type ConversationView struct {
	models.Conversation
	LastMessage *models.Message `json:"lastMessage,omitempty"`
}

// CreateConversation persists the conversation and its seed membership in one
// step. PRIVATE chats get creator plus target, GROUP chats start with the
// creator only.
func (s *ConversationService) CreateConversation(ctx context.Context, in CreateConversationInput, creatorID string) (*models.Conversation, error) {
	l := logging.FromContext(ctx).With("svc", "conversation.create")

	creatorExists, err := s.Repo.UserExists(ctx, creatorID)
	if err != nil {
		l.Error("lookup_failed", "error", err)
		return nil, apperr.Internal("failed to load creator", err)
	}
	if !creatorExists {
		return nil, apperr.ErrUserNotFound
	}

	var memberIDs []string
	switch in.Type {
	case models.ConversationPrivate:
		if in.TargetUserID == creatorID {
			return nil, apperr.ErrSelfConversation
		}
		targetExists, err := s.Repo.UserExists(ctx, in.TargetUserID)
		if err != nil {
			l.Error("lookup_failed", "error", err)
			return nil, apperr.Internal("failed to load target user", err)
		}
		if !targetExists {
			return nil, apperr.ErrUserNotFound
		}
		memberIDs = []string{creatorID, in.TargetUserID}
	case models.ConversationGroup:
		if strings.TrimSpace(in.Name) == "" {
			return nil, apperr.ErrNameRequired
		}
		memberIDs = []string{creatorID}
	default:
		return nil, apperr.Invalid("unknown conversation type")
	}

	conv := &models.Conversation{
		Type:      in.Type,
		Name:      in.Name,
		CreatedBy: creatorID,
	}
	if err := s.Repo.CreateConversation(ctx, conv, memberIDs); err != nil {
		l.Error("store_failed", "error", err)
		return nil, apperr.Internal("failed to create conversation", err)
	}
	return conv, nil
}

// VerifyMembership admits or rejects a user for a conversation. Deleted and
// nonexistent conversations are indistinguishable to the caller. The creator
// is admitted before the membership table is consulted, so a missing creator
// row never locks them out.
func (s *ConversationService) VerifyMembership(ctx context.Context, conversationID, userID string) error {
	l := logging.FromContext(ctx).With("svc", "conversation.verify")

	conv, err := s.Repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrConversationNotFound
		}
		l.Error("lookup_failed", "error", err)
		return apperr.Internal("failed to load conversation", err)
	}
	if conv.IsDeleted {
		return apperr.ErrConversationNotFound
	}

	if conv.CreatedBy == userID {
		return nil
	}

	isMember, err := s.Repo.IsMember(ctx, conversationID, userID)
	if err != nil {
		l.Error("membership_lookup_failed", "error", err)
		return apperr.Internal("failed to check membership", err)
	}
	if !isMember {
		return apperr.ErrNotMember
	}
	return nil
}

// ListConversations returns the user's conversations, optionally filtered by
// type and enriched with each conversation's newest message.
func (s *ConversationService) ListConversations(ctx context.Context, userID string, typeFilter models.ConversationType, includeLastMessage bool) ([]ConversationView, error) {
	l := logging.FromContext(ctx).With("svc", "conversation.list")

	exists, err := s.Repo.UserExists(ctx, userID)
	if err != nil {
		l.Error("lookup_failed", "error", err)
		return nil, apperr.Internal("failed to load user", err)
	}
	if !exists {
		return nil, apperr.ErrUserNotFound
	}

	convs, err := s.Repo.ListConversationsByUserID(ctx, userID, typeFilter)
	if err != nil {
		l.Error("list_failed", "error", err)
		return nil, apperr.Internal("failed to list conversations", err)
	}

	views := make([]ConversationView, 0, len(convs))
	for _, conv := range convs {
		view := ConversationView{Conversation: conv}

		if conv.Type == models.ConversationPrivate && conv.Name == "" {
			name, err := s.privateName(ctx, conv.ID)
			if err != nil {
				l.Error("name_failed", "conversation_id", conv.ID, "error", err)
				return nil, err
			}
			view.Name = name
		}

		if includeLastMessage {
			last, err := s.Repo.LatestMessage(ctx, conv.ID)
			if err != nil {
				l.Error("last_message_failed", "conversation_id", conv.ID, "error", err)
				return nil, apperr.Internal("failed to load last message", err)
			}
			view.LastMessage = last
		}

		views = append(views, view)
	}
	return views, nil
}

// privateName builds "First & First" from the two members, in join order so
// the label is stable across calls.
func (s *ConversationService) privateName(ctx context.Context, conversationID string) (string, error) {
	members, err := s.Repo.GetMembers(ctx, conversationID)
	if err != nil {
		return "", apperr.Internal("failed to load members", err)
	}
	switch len(members) {
	case 0:
		return "", nil
	case 1:
		return members[0].FirstName, nil
	default:
		return fmt.Sprintf("%s & %s", members[0].FirstName, members[1].FirstName), nil
	}
}

// AddUsers grows a group roster. Only staff roles may call it; every email
// must resolve before anything is written, and the batch commits atomically.
// Already-present members are skipped, so retries are harmless.
func (s *ConversationService) AddUsers(ctx context.Context, conversationID string, emails []string, requesterRole models.UserRole) error {
	l := logging.FromContext(ctx).With("svc", "conversation.add_users")

	if !requesterRole.CanAddMembers() {
		return apperr.ErrRoleForbidden
	}

	conv, err := s.Repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrConversationNotFound
		}
		l.Error("lookup_failed", "error", err)
		return apperr.Internal("failed to load conversation", err)
	}
	if conv.IsDeleted {
		return apperr.ErrConversationNotFound
	}
	if conv.Type != models.ConversationGroup {
		return apperr.ErrNotGroup
	}

	userIDs := make([]string, 0, len(emails))
	for _, email := range emails {
		user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no account for " + email)
			}
			l.Error("lookup_failed", "email", email, "error", err)
			return apperr.Internal("failed to load user", err)
		}
		userIDs = append(userIDs, user.ID)
	}

	if err := s.Repo.AddMembers(ctx, conversationID, userIDs); err != nil {
		l.Error("store_failed", "error", err)
		return apperr.Internal("failed to add members", err)
	}
	return nil
}
