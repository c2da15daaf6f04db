package model

import (
	"gorm.io/gorm"

	"github.com/kart-io/haven/pkg/id"
)

// Message roles within an advisor conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn entry in an advisor conversation.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Conversation holds a user's advisor dialogue together with the per-section
// guide hashes last transmitted to the model. The most recently updated
// conversation is the user's current one.
//
// Version is an optimistic-concurrency token: every mutating write must match
// the version it read and increments it.
type Conversation struct {
	ID                 string            `json:"id" gorm:"primaryKey;size:26"`
	UserID             string            `json:"user_id" gorm:"size:26;not null;index:idx_conv_user_updated,priority:1"`
	Messages           []Message         `json:"messages" gorm:"serializer:json"`
	GuideSectionHashes map[string]string `json:"guide_section_hashes" gorm:"serializer:json"`
	Version            int64             `json:"-" gorm:"not null;default:0"`
	CreatedAt          int64             `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt          int64             `json:"updated_at" gorm:"autoUpdateTime:milli;index:idx_conv_user_updated,priority:2"`
}

// TableName returns the table name for GORM.
func (c *Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = id.New()
	}
	return nil
}
