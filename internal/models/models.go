package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleUser    UserRole = "USER"
)

// CanAddMembers is the single place the role policy lives: plain users read
// and write their own conversations, staff may also grow group rosters.
func (r UserRole) CanAddMembers() bool {
	return r == RoleAdmin || r == RoleTeacher
}

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleUser
}

type ConversationType string

const (
	ConversationPrivate ConversationType = "PRIVATE"
	ConversationGroup   ConversationType = "GROUP"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "SENT"
	MessageDelivered MessageStatus = "DELIVERED"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36"    json:"userId"`
	Email        string     `gorm:"uniqueIndex;not null"  json:"emailAddress"`
	PasswordHash string     `gorm:"not null"              json:"-"`
	FirstName    string     `gorm:"not null"              json:"firstName"`
	LastName     string     `gorm:"not null"              json:"lastName"`
	Role         UserRole   `gorm:"not null;default:USER" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Session holds the refresh credential for a user, at most one live row per
// user. The refresh token itself is stored only as a bcrypt hash.
type Session struct {
	ID               string     `gorm:"primaryKey;size:36" json:"sessionId"`
	UserID           string     `gorm:"index;not null"     json:"userId"`
	RefreshTokenHash string     `gorm:"not null"           json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	ExpiresAt        time.Time  `gorm:"not null"           json:"expiresAt"`
	RevokedAt        *time.Time `json:"revokedAt,omitempty"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Live reports whether the session can still be exchanged for access tokens.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type Conversation struct {
	ID        string           `gorm:"primaryKey;size:36"     json:"conversationId"`
	Type      ConversationType `gorm:"not null"               json:"type"`
	Name      string           `json:"name,omitempty"`
	CreatedBy string           `gorm:"index;not null"         json:"createdBy"`
	IsDeleted bool             `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ConversationUser struct {
	ID             string    `gorm:"primaryKey;size:36"                                 json:"conversationUserId"`
	ConversationID string    `gorm:"uniqueIndex:idx_conversation_user;not null;size:36" json:"conversationId"`
	UserID         string    `gorm:"uniqueIndex:idx_conversation_user;not null;size:36" json:"userId"`
	JoinedAt       time.Time `gorm:"autoCreateTime"                                     json:"joinedAt"`
}

func (cu *ConversationUser) BeforeCreate(tx *gorm.DB) error {
	if cu.ID == "" {
		cu.ID = uuid.NewString()
	}
	return nil
}

type Message struct {
	ID             string        `gorm:"primaryKey;size:36"    json:"messageId"`
	ConversationID string        `gorm:"index;not null"        json:"conversationId"`
	SenderID       string        `gorm:"index;not null"        json:"senderId"`
	Content        string        `gorm:"not null"              json:"content"`
	Status         MessageStatus `gorm:"not null;default:SENT" json:"messageStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
