// Package store provides the persistence layer of the Haven API server.
// Interfaces are defined here; the GORM-backed implementation lives in
// datastore.go and the per-entity files.
package store

import (
	"context"

	"github.com/kart-io/haven/internal/model"
)

// Factory defines the factory interface for creating stores.
type Factory interface {
	Users() UserStore
	Entries() EntryStore
	Checklists() ChecklistStore
	Metrics() MetricStore
	CravingLogs() CravingLogStore
	Plans() PlanStore
	Summaries() SummaryStore
	Conversations() ConversationStore
	AutoMigrate() error
	Close() error
}

// UserStore defines account storage.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// EntryStore defines journal entry storage.
type EntryStore interface {
	Create(ctx context.Context, entry *model.Entry) error
	Get(ctx context.Context, userID, entryID string) (*model.Entry, error)
	Delete(ctx context.Context, userID, entryID string) error
	List(ctx context.Context, userID string, offset, limit int) (int64, []*model.Entry, error)
	// ListSince returns entries created at or after since (Unix millis),
	// newest first, capped at limit.
	ListSince(ctx context.Context, userID string, since int64, limit int) ([]*model.Entry, error)
}

// ChecklistStore defines daily checklist storage.
type ChecklistStore interface {
	Upsert(ctx context.Context, checklist *model.DailyChecklist) error
	Get(ctx context.Context, userID, date string) (*model.DailyChecklist, error)
}

// MetricStore defines daily metric storage.
type MetricStore interface {
	Upsert(ctx context.Context, metric *model.DailyMetric) error
	Get(ctx context.Context, userID, date string) (*model.DailyMetric, error)
	Range(ctx context.Context, userID, from, to string) ([]*model.DailyMetric, error)
}

// CravingLogStore defines craving episode storage.
type CravingLogStore interface {
	Create(ctx context.Context, log *model.CravingLog) error
	List(ctx context.Context, userID string, offset, limit int) (int64, []*model.CravingLog, error)
}

// PlanStore defines if-then plan storage.
type PlanStore interface {
	Create(ctx context.Context, plan *model.IfThenPlan) error
	Get(ctx context.Context, userID, planID string) (*model.IfThenPlan, error)
	Update(ctx context.Context, plan *model.IfThenPlan) error
	Delete(ctx context.Context, userID, planID string) error
	List(ctx context.Context, userID string) ([]*model.IfThenPlan, error)
}

// SummaryStore defines daily summary storage.
type SummaryStore interface {
	Upsert(ctx context.Context, summary *model.DailySummary) error
	Get(ctx context.Context, userID, date string) (*model.DailySummary, error)
}

// ConversationStore defines advisor conversation storage.
//
// AppendMessages and UpdateGuideHashes are versioned read-modify-write
// operations: a write whose version token no longer matches is retried once
// and then fails with a conflict error.
type ConversationStore interface {
	Create(ctx context.Context, conv *model.Conversation) error
	Get(ctx context.Context, convID string) (*model.Conversation, error)
	// FindLatest returns the user's most recently updated conversation,
	// or gorm.ErrRecordNotFound if the user has none.
	FindLatest(ctx context.Context, userID string) (*model.Conversation, error)
	AppendMessages(ctx context.Context, convID string, messages []model.Message) error
	UpdateGuideHashes(ctx context.Context, convID string, hashes map[string]string) error
	DeleteByUser(ctx context.Context, userID string) error
}
