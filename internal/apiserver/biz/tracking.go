package biz

import (
	"context"
	"time"

	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/errors"
)

func validDay(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.ErrInvalidDay
	}
	return nil
}

// TrackingService handles checklists, metrics, craving logs, and if-then
// plans. These are thin CRUD paths; validation lives here, persistence in
// the store.
type TrackingService struct {
	store store.Factory
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(store store.Factory) *TrackingService {
	return &TrackingService{store: store}
}

// UpsertChecklist replaces the user's checklist status for one day.
func (s *TrackingService) UpsertChecklist(ctx context.Context, checklist *model.DailyChecklist) error {
	if err := validDay(checklist.Date); err != nil {
		return err
	}
	if checklist.Status == nil {
		checklist.Status = map[string]bool{}
	}
	if err := s.store.Checklists().Upsert(ctx, checklist); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// GetChecklist returns the user's checklist for one day.
func (s *TrackingService) GetChecklist(ctx context.Context, userID, date string) (*model.DailyChecklist, error) {
	if err := validDay(date); err != nil {
		return nil, err
	}
	checklist, err := s.store.Checklists().Get(ctx, userID, date)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrChecklistNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return checklist, nil
}

// UpsertMetric replaces the user's wellbeing scores for one day.
func (s *TrackingService) UpsertMetric(ctx context.Context, metric *model.DailyMetric) error {
	if err := validDay(metric.Date); err != nil {
		return err
	}
	if err := s.store.Metrics().Upsert(ctx, metric); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// GetMetric returns the user's scores for one day, or nil scores when the
// day has no row.
func (s *TrackingService) GetMetric(ctx context.Context, userID, date string) (*model.DailyMetric, error) {
	if err := validDay(date); err != nil {
		return nil, err
	}
	metric, err := s.store.Metrics().Get(ctx, userID, date)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return &model.DailyMetric{UserID: userID, Date: date}, nil
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return metric, nil
}

// MetricRange returns the user's scores for days in [from, to].
func (s *TrackingService) MetricRange(ctx context.Context, userID, from, to string) ([]*model.DailyMetric, error) {
	if err := validDay(from); err != nil {
		return nil, err
	}
	if err := validDay(to); err != nil {
		return nil, err
	}
	items, err := s.store.Metrics().Range(ctx, userID, from, to)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return items, nil
}

// LogCraving records a craving episode.
func (s *TrackingService) LogCraving(ctx context.Context, log *model.CravingLog) error {
	if log.Intensity < 1 || log.Intensity > 10 {
		return errors.ErrInvalidIntensity
	}
	if err := s.store.CravingLogs().Create(ctx, log); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// ListCravings lists the user's craving logs newest first with pagination.
func (s *TrackingService) ListCravings(ctx context.Context, userID string, offset, limit int) (int64, []*model.CravingLog, error) {
	count, items, err := s.store.CravingLogs().List(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, items, nil
}

// CreatePlan creates an if-then plan.
func (s *TrackingService) CreatePlan(ctx context.Context, plan *model.IfThenPlan) error {
	if err := s.store.Plans().Create(ctx, plan); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// UpdatePlan updates one of the user's plans.
func (s *TrackingService) UpdatePlan(ctx context.Context, userID, planID string, trigger, action *string, active *bool) (*model.IfThenPlan, error) {
	plan, err := s.store.Plans().Get(ctx, userID, planID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPlanNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}

	if trigger != nil {
		plan.Trigger = *trigger
	}
	if action != nil {
		plan.Action = *action
	}
	if active != nil {
		plan.Active = *active
	}

	if err := s.store.Plans().Update(ctx, plan); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return plan, nil
}

// DeletePlan removes one of the user's plans.
func (s *TrackingService) DeletePlan(ctx context.Context, userID, planID string) error {
	if err := s.store.Plans().Delete(ctx, userID, planID); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// ListPlans lists the user's plans newest first.
func (s *TrackingService) ListPlans(ctx context.Context, userID string) ([]*model.IfThenPlan, error) {
	items, err := s.store.Plans().List(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return items, nil
}
