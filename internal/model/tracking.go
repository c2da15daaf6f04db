package model

import (
	"gorm.io/gorm"

	"github.com/kart-io/haven/pkg/id"
)

// DailyChecklist records which named habit items were completed on one day.
// Status maps item name to done. Date is a YYYY-MM-DD calendar day.
type DailyChecklist struct {
	ID        string          `json:"id" gorm:"primaryKey;size:26"`
	UserID    string          `json:"user_id" gorm:"size:26;not null;uniqueIndex:uk_checklist_user_date,priority:1"`
	Date      string          `json:"date" gorm:"size:10;not null;uniqueIndex:uk_checklist_user_date,priority:2"`
	Status    map[string]bool `json:"status" gorm:"serializer:json"`
	CreatedAt int64           `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64           `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName returns the table name for GORM.
func (c *DailyChecklist) TableName() string {
	return "daily_checklists"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (c *DailyChecklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = id.New()
	}
	return nil
}

// DailyMetric records the six daily wellbeing scores for one day.
// Nil pointers mean the score was not reported.
type DailyMetric struct {
	ID        string `json:"id" gorm:"primaryKey;size:26"`
	UserID    string `json:"user_id" gorm:"size:26;not null;uniqueIndex:uk_metric_user_date,priority:1"`
	Date      string `json:"date" gorm:"size:10;not null;uniqueIndex:uk_metric_user_date,priority:2"`
	Conn      *int   `json:"conn,omitempty"`
	Pray      *int   `json:"pray,omitempty"`
	Move      *int   `json:"move,omitempty"`
	Mind      *int   `json:"mind,omitempty"`
	Service   *int   `json:"service,omitempty"`
	Sleep     *int   `json:"sleep,omitempty"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName returns the table name for GORM.
func (m *DailyMetric) TableName() string {
	return "daily_metrics"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (m *DailyMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = id.New()
	}
	return nil
}

// CravingLog records one craving episode and how it was handled.
type CravingLog struct {
	ID        string   `json:"id" gorm:"primaryKey;size:26"`
	UserID    string   `json:"user_id" gorm:"size:26;not null;index:idx_craving_user_created,priority:1"`
	Trigger   string   `json:"trigger" gorm:"size:255"`
	Intensity int      `json:"intensity"`
	ToolsUsed []string `json:"tools_used" gorm:"serializer:json"`
	Result    string   `json:"result" gorm:"size:255"`
	Lesson    string   `json:"lesson" gorm:"type:text"`
	CreatedAt int64    `json:"created_at" gorm:"autoCreateTime:milli;index:idx_craving_user_created,priority:2"`
}

// TableName returns the table name for GORM.
func (l *CravingLog) TableName() string {
	return "craving_logs"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (l *CravingLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = id.New()
	}
	return nil
}

// IfThenPlan is a prepared trigger-to-action intervention.
type IfThenPlan struct {
	ID        string `json:"id" gorm:"primaryKey;size:26"`
	UserID    string `json:"user_id" gorm:"size:26;not null;index:idx_plans_user"`
	Trigger   string `json:"trigger" gorm:"size:255;not null"`
	Action    string `json:"action" gorm:"size:255;not null"`
	Active    bool   `json:"active" gorm:"default:true"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName returns the table name for GORM.
func (p *IfThenPlan) TableName() string {
	return "if_then_plans"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (p *IfThenPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = id.New()
	}
	return nil
}

// DailySummary is an AI-generated digest of one day's journal entries.
type DailySummary struct {
	ID            string   `json:"id" gorm:"primaryKey;size:26"`
	UserID        string   `json:"user_id" gorm:"size:26;not null;uniqueIndex:uk_summary_user_date,priority:1"`
	Date          string   `json:"date" gorm:"size:10;not null;uniqueIndex:uk_summary_user_date,priority:2"`
	Summary       string   `json:"summary" gorm:"type:text;not null"`
	KeyInsights   []string `json:"key_insights" gorm:"serializer:json"`
	Encouragement string   `json:"encouragement" gorm:"type:text"`
	CreatedAt     int64    `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt     int64    `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName returns the table name for GORM.
func (s *DailySummary) TableName() string {
	return "daily_summaries"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (s *DailySummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = id.New()
	}
	return nil
}
