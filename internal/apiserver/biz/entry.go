package biz

import (
	"context"
	"strings"
	"time"

	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/errors"
)

// EntryService handles journal entry business logic.
type EntryService struct {
	store store.Factory
}

// NewEntryService creates a new EntryService.
func NewEntryService(store store.Factory) *EntryService {
	return &EntryService{store: store}
}

// Create records a new journal entry.
func (s *EntryService) Create(ctx context.Context, entry *model.Entry) error {
	if strings.TrimSpace(entry.Content) == "" {
		return errors.ErrEmptyEntryBody
	}
	if entry.EntryType == "" {
		entry.EntryType = model.EntryTypeText
	}
	if !model.ValidEntryType(entry.EntryType) {
		return errors.ErrInvalidParam.WithMessagef("unknown entry type %q", entry.EntryType)
	}

	if err := s.store.Entries().Create(ctx, entry); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves one of the user's entries.
func (s *EntryService) Get(ctx context.Context, userID, entryID string) (*model.Entry, error) {
	entry, err := s.store.Entries().Get(ctx, userID, entryID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEntryNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return entry, nil
}

// Delete removes one of the user's entries.
func (s *EntryService) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.store.Entries().Delete(ctx, userID, entryID); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// List lists the user's entries newest first with pagination.
func (s *EntryService) List(ctx context.Context, userID string, offset, limit int) (int64, []*model.Entry, error) {
	count, items, err := s.store.Entries().List(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, items, nil
}

// Since returns the user's entries created at or after since (Unix millis).
func (s *EntryService) Since(ctx context.Context, userID string, since int64, limit int) ([]*model.Entry, error) {
	items, err := s.store.Entries().ListSince(ctx, userID, since, limit)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return items, nil
}

// Today returns the user's entries since midnight UTC.
func (s *EntryService) Today(ctx context.Context, userID string) ([]*model.Entry, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.Since(ctx, userID, midnight.UnixMilli(), 100)
}

// ForDay returns the user's entries created on the given YYYY-MM-DD day (UTC).
func (s *EntryService) ForDay(ctx context.Context, userID, date string) ([]*model.Entry, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, errors.ErrInvalidDay
	}
	items, err := s.Since(ctx, userID, day.UnixMilli(), 200)
	if err != nil {
		return nil, err
	}

	end := day.Add(24 * time.Hour).UnixMilli()
	out := make([]*model.Entry, 0, len(items))
	for _, entry := range items {
		if entry.CreatedAt < end {
			out = append(out, entry)
		}
	}
	return out, nil
}
