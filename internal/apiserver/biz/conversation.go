// Package biz implements the business logic of the Haven API server: the
// advisor orchestration around the guide retrieval core, plus the journal,
// tracking, summary, and account services.
package biz

import (
	"context"

	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/kart-io/haven/pkg/errors"
)

// ConversationService tracks per-user advisor conversations and the guide
// hash state that drives full-versus-delta guide transmission.
type ConversationService struct {
	store store.Factory
	guide *guide.Loader
}

// NewConversationService creates a new ConversationService.
func NewConversationService(store store.Factory, loader *guide.Loader) *ConversationService {
	return &ConversationService{store: store, guide: loader}
}

// GetOrCreate returns the user's current conversation, defined as the most
// recently updated one, creating an empty conversation if the user has none.
func (s *ConversationService) GetOrCreate(ctx context.Context, userID string) (*model.Conversation, error) {
	conv, err := s.store.Conversations().FindLatest(ctx, userID)
	if err == nil {
		return conv, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	conv = &model.Conversation{
		UserID:             userID,
		Messages:           []model.Message{},
		GuideSectionHashes: map[string]string{},
	}
	if err := s.store.Conversations().Create(ctx, conv); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return conv, nil
}

// ComputeGuideUpdates compares current guide sections against the hashes the
// conversation last saw. A section counts as changed when its ID is absent
// from the stored map or its hash differs. Changed sections come back in
// document order; nextHashes is the complete current id-to-hash map so a
// save replaces stale and removed entries wholesale.
func (s *ConversationService) ComputeGuideUpdates(conv *model.Conversation) (changed []guide.Section, nextHashes map[string]string, err error) {
	sections, err := s.guide.Sections()
	if err != nil {
		return nil, nil, errors.ErrGuideUnavailable.WithCause(err)
	}

	nextHashes = make(map[string]string, len(sections))
	for _, sec := range sections {
		nextHashes[sec.ID] = sec.Hash
		prev, ok := conv.GuideSectionHashes[sec.ID]
		if !ok || prev != sec.Hash {
			changed = append(changed, sec)
		}
	}
	return changed, nextHashes, nil
}

// SaveGuideHashes overwrites the conversation's stored hash map.
func (s *ConversationService) SaveGuideHashes(ctx context.Context, convID string, hashes map[string]string) error {
	if err := s.store.Conversations().UpdateGuideHashes(ctx, convID, hashes); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// History returns the last limit messages of the user's current conversation,
// oldest first. A user with no conversation gets an empty slice.
func (s *ConversationService) History(ctx context.Context, userID string, limit int) ([]model.Message, error) {
	conv, err := s.store.Conversations().FindLatest(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return []model.Message{}, nil
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}

	msgs := conv.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// Clear removes the user's conversation history.
func (s *ConversationService) Clear(ctx context.Context, userID string) error {
	if err := s.store.Conversations().DeleteByUser(ctx, userID); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}
