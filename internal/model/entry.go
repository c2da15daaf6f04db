package model

import (
	"gorm.io/gorm"

	"github.com/kart-io/haven/pkg/id"
)

// Entry types accepted by the journal.
const (
	EntryTypeText       = "text"
	EntryTypeVoice      = "voice"
	EntryTypeQuickCheck = "quick-check"
)

// ValidEntryType reports whether t is a recognized journal entry type.
func ValidEntryType(t string) bool {
	switch t {
	case EntryTypeText, EntryTypeVoice, EntryTypeQuickCheck:
		return true
	}
	return false
}

// Entry represents a journal entry.
type Entry struct {
	ID             string   `json:"id" gorm:"primaryKey;size:26"`
	UserID         string   `json:"user_id" gorm:"size:26;not null;index:idx_entries_user_created,priority:1"`
	Content        string   `json:"content" gorm:"type:text;not null"`
	EntryType      string   `json:"entry_type" gorm:"size:16;not null;default:text"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	CreatedAt      int64    `json:"created_at" gorm:"autoCreateTime:milli;index:idx_entries_user_created,priority:2"`
	UpdatedAt      int64    `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// EntryList contains a list of entries and pagination info.
type EntryList struct {
	TotalCount int64    `json:"totalCount"`
	Items      []*Entry `json:"items"`
}

// TableName returns the table name for GORM.
func (e *Entry) TableName() string {
	return "entries"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = id.New()
	}
	return nil
}
