package store

import (
	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/model"
)

// datastore implements the Factory interface on top of a GORM connection.
type datastore struct {
	db *gorm.DB
}

// NewDatastore creates a Factory backed by the given GORM connection.
// The connection may target postgres (production) or sqlite (dev/tests).
func NewDatastore(db *gorm.DB) Factory {
	return &datastore{db: db}
}

// Users returns the account store.
func (ds *datastore) Users() UserStore {
	return &users{ds.db}
}

// Entries returns the journal entry store.
func (ds *datastore) Entries() EntryStore {
	return &entries{ds.db}
}

// Checklists returns the daily checklist store.
func (ds *datastore) Checklists() ChecklistStore {
	return &checklists{ds.db}
}

// Metrics returns the daily metric store.
func (ds *datastore) Metrics() MetricStore {
	return &metrics{ds.db}
}

// CravingLogs returns the craving episode store.
func (ds *datastore) CravingLogs() CravingLogStore {
	return &cravingLogs{ds.db}
}

// Plans returns the if-then plan store.
func (ds *datastore) Plans() PlanStore {
	return &plans{ds.db}
}

// Summaries returns the daily summary store.
func (ds *datastore) Summaries() SummaryStore {
	return &summaries{ds.db}
}

// Conversations returns the advisor conversation store.
func (ds *datastore) Conversations() ConversationStore {
	return &conversations{ds.db}
}

// AutoMigrate migrates the database schema.
func (ds *datastore) AutoMigrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Entry{},
		&model.DailyChecklist{},
		&model.DailyMetric{},
		&model.CravingLog{},
		&model.IfThenPlan{},
		&model.DailySummary{},
		&model.Conversation{},
	)
}

// Close closes the factory. The underlying connection is owned by the
// component client that opened it.
func (ds *datastore) Close() error {
	return nil
}
