package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kart-io/haven/internal/model"
)

type checklists struct {
	db *gorm.DB
}

// Upsert inserts the checklist or, when one exists for the same user and
// date, replaces its status map.
func (c *checklists) Upsert(ctx context.Context, checklist *model.DailyChecklist) error {
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(checklist).Error
}

// Get retrieves the user's checklist for one day.
func (c *checklists) Get(ctx context.Context, userID, date string) (*model.DailyChecklist, error) {
	var checklist model.DailyChecklist
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&checklist).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

type metrics struct {
	db *gorm.DB
}

// Upsert inserts the metric row or replaces the scores for the same user
// and date.
func (m *metrics) Upsert(ctx context.Context, metric *model.DailyMetric) error {
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"conn", "pray", "move", "mind", "service", "sleep", "updated_at"}),
	}).Create(metric).Error
}

// Get retrieves the user's metrics for one day.
func (m *metrics) Get(ctx context.Context, userID, date string) (*model.DailyMetric, error) {
	var metric model.DailyMetric
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

// Range returns the user's metrics for days in [from, to], ascending by day.
func (m *metrics) Range(ctx context.Context, userID, from, to string) ([]*model.DailyMetric, error) {
	var items []*model.DailyMetric
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type cravingLogs struct {
	db *gorm.DB
}

// Create records a craving episode.
func (c *cravingLogs) Create(ctx context.Context, log *model.CravingLog) error {
	return c.db.WithContext(ctx).Create(log).Error
}

// List lists the user's craving logs, newest first, with pagination.
func (c *cravingLogs) List(ctx context.Context, userID string, offset, limit int) (int64, []*model.CravingLog, error) {
	var count int64
	var items []*model.CravingLog

	q := c.db.WithContext(ctx).Model(&model.CravingLog{}).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

type plans struct {
	db *gorm.DB
}

// Create creates a new if-then plan.
func (p *plans) Create(ctx context.Context, plan *model.IfThenPlan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

// Get retrieves one of the user's plans by ID.
func (p *plans) Get(ctx context.Context, userID, planID string) (*model.IfThenPlan, error) {
	var plan model.IfThenPlan
	err := p.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update updates an existing plan.
func (p *plans) Update(ctx context.Context, plan *model.IfThenPlan) error {
	return p.db.WithContext(ctx).Save(plan).Error
}

// Delete removes one of the user's plans.
func (p *plans) Delete(ctx context.Context, userID, planID string) error {
	return p.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&model.IfThenPlan{}).Error
}

// List lists the user's plans, newest first.
func (p *plans) List(ctx context.Context, userID string) ([]*model.IfThenPlan, error) {
	var items []*model.IfThenPlan
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type summaries struct {
	db *gorm.DB
}

// Upsert inserts the summary or replaces the digest for the same user and
// date.
func (s *summaries) Upsert(ctx context.Context, summary *model.DailySummary) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "key_insights", "encouragement", "updated_at"}),
	}).Create(summary).Error
}

// Get retrieves the user's summary for one day.
func (s *summaries) Get(ctx context.Context, userID, date string) (*model.DailySummary, error) {
	var summary model.DailySummary
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
