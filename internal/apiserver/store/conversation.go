package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/errors"
)

type conversations struct {
	db *gorm.DB
}

// Create creates a new conversation.
func (c *conversations) Create(ctx context.Context, conv *model.Conversation) error {
	return c.db.WithContext(ctx).Create(conv).Error
}

// Get retrieves a conversation by ID.
func (c *conversations) Get(ctx context.Context, convID string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := c.db.WithContext(ctx).Where("id = ?", convID).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindLatest returns the user's most recently updated conversation.
func (c *conversations) FindLatest(ctx context.Context, userID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessages appends messages to the conversation's ordered turn list.
func (c *conversations) AppendMessages(ctx context.Context, convID string, messages []model.Message) error {
	return c.updateVersioned(ctx, convID, func(conv *model.Conversation) map[string]interface{} {
		return map[string]interface{}{
			"messages": append(conv.Messages, messages...),
		}
	})
}

// UpdateGuideHashes overwrites the conversation's guide hash map.
func (c *conversations) UpdateGuideHashes(ctx context.Context, convID string, hashes map[string]string) error {
	return c.updateVersioned(ctx, convID, func(conv *model.Conversation) map[string]interface{} {
		return map[string]interface{}{
			"guide_section_hashes": hashes,
		}
	})
}

// DeleteByUser removes all of the user's conversations.
func (c *conversations) DeleteByUser(ctx context.Context, userID string) error {
	return c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Conversation{}).Error
}

// updateVersioned performs an optimistic read-modify-write: the update only
// lands if the version read is still current, and a lost race is retried
// once before reporting a conflict.
func (c *conversations) updateVersioned(ctx context.Context, convID string, apply func(*model.Conversation) map[string]interface{}) error {
	for attempt := 0; attempt < 2; attempt++ {
		conv, err := c.Get(ctx, convID)
		if err != nil {
			return err
		}

		assignments := apply(conv)
		assignments["version"] = conv.Version + 1

		res := c.db.WithContext(ctx).
			Model(&model.Conversation{}).
			Where("id = ? AND version = ?", conv.ID, conv.Version).
			Updates(assignments)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
	}
	return errors.ErrConversationConflict
}
