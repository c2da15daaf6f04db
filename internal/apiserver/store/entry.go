package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/model"
)

type entries struct {
	db *gorm.DB
}

// Create creates a new journal entry.
func (e *entries) Create(ctx context.Context, entry *model.Entry) error {
	return e.db.WithContext(ctx).Create(entry).Error
}

// Get retrieves one of the user's entries by ID.
func (e *entries) Get(ctx context.Context, userID, entryID string) (*model.Entry, error) {
	var entry model.Entry
	err := e.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes one of the user's entries.
func (e *entries) Delete(ctx context.Context, userID, entryID string) error {
	return e.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&model.Entry{}).Error
}

// List lists the user's entries, newest first, with pagination.
func (e *entries) List(ctx context.Context, userID string, offset, limit int) (int64, []*model.Entry, error) {
	var count int64
	var items []*model.Entry

	q := e.db.WithContext(ctx).Model(&model.Entry{}).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// ListSince returns entries created at or after since, newest first.
func (e *entries) ListSince(ctx context.Context, userID string, since int64, limit int) ([]*model.Entry, error) {
	var items []*model.Entry
	err := e.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
