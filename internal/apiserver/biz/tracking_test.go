package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/component/sqlite"
	"github.com/kart-io/haven/pkg/errors"
)

func newTrackingFixture(t *testing.T) *TrackingService {
	t.Helper()

	client, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewDatastore(client.DB())
	require.NoError(t, factory.AutoMigrate())

	return NewTrackingService(factory)
}

func intp(v int) *int { return &v }

func TestChecklistUpsert_ReplacesStatus(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.UpsertChecklist(ctx, &model.DailyChecklist{
		UserID: "user-1",
		Date:   "2026-08-29",
		Status: map[string]bool{"prayer": true, "movement": false},
	}))
	require.NoError(t, svc.UpsertChecklist(ctx, &model.DailyChecklist{
		UserID: "user-1",
		Date:   "2026-08-29",
		Status: map[string]bool{"movement": true},
	}))

	got, err := svc.GetChecklist(ctx, "user-1", "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"movement": true}, got.Status)
}

func TestChecklistGet_MissingDay(t *testing.T) {
	svc := newTrackingFixture(t)

	_, err := svc.GetChecklist(context.Background(), "user-1", "2026-08-29")
	assert.Equal(t, errors.ErrChecklistNotFound.Code, errors.GetCode(err))
}

func TestChecklist_RejectsBadDate(t *testing.T) {
	svc := newTrackingFixture(t)

	err := svc.UpsertChecklist(context.Background(), &model.DailyChecklist{
		UserID: "user-1",
		Date:   "Aug 29",
	})
	assert.Equal(t, errors.ErrInvalidDay.Code, errors.GetCode(err))
}

func TestMetricGet_MissingDayReturnsEmpty(t *testing.T) {
	svc := newTrackingFixture(t)

	got, err := svc.GetMetric(context.Background(), "user-1", "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Nil(t, got.Sleep)
}

func TestMetricRange_OrdersByDay(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-28", "2026-08-26", "2026-08-27"} {
		require.NoError(t, svc.UpsertMetric(ctx, &model.DailyMetric{
			UserID: "user-1",
			Date:   date,
			Sleep:  intp(7),
		}))
	}

	items, err := svc.MetricRange(ctx, "user-1", "2026-08-26", "2026-08-28")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "2026-08-26", items[0].Date)
	assert.Equal(t, "2026-08-28", items[2].Date)
}

func TestLogCraving_BoundsIntensity(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	err := svc.LogCraving(ctx, &model.CravingLog{UserID: "user-1", Intensity: 0})
	assert.Equal(t, errors.ErrInvalidIntensity.Code, errors.GetCode(err))

	err = svc.LogCraving(ctx, &model.CravingLog{UserID: "user-1", Intensity: 11})
	assert.Equal(t, errors.ErrInvalidIntensity.Code, errors.GetCode(err))

	require.NoError(t, svc.LogCraving(ctx, &model.CravingLog{
		UserID:    "user-1",
		Trigger:   "late night scrolling",
		Intensity: 7,
		ToolsUsed: []string{"urge surfing", "walk"},
	}))

	count, items, err := svc.ListCravings(ctx, "user-1", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"urge surfing", "walk"}, items[0].ToolsUsed)
}

func TestPlanUpdate_PartialFields(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	plan := &model.IfThenPlan{
		UserID:  "user-1",
		Trigger: "restless after 10pm",
		Action:  "phone in the kitchen",
		Active:  true,
	}
	require.NoError(t, svc.CreatePlan(ctx, plan))

	inactive := false
	updated, err := svc.UpdatePlan(ctx, "user-1", plan.ID, nil, nil, &inactive)
	require.NoError(t, err)
	assert.Equal(t, "restless after 10pm", updated.Trigger)
	assert.False(t, updated.Active)
}

func TestPlanUpdate_WrongOwner(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	plan := &model.IfThenPlan{UserID: "user-1", Trigger: "t", Action: "a"}
	require.NoError(t, svc.CreatePlan(ctx, plan))

	_, err := svc.UpdatePlan(ctx, "user-2", plan.ID, nil, nil, nil)
	assert.Equal(t, errors.ErrPlanNotFound.Code, errors.GetCode(err))
}

func TestPlanDeleteAndList(t *testing.T) {
	svc := newTrackingFixture(t)
	ctx := context.Background()

	keep := &model.IfThenPlan{UserID: "user-1", Trigger: "keep", Action: "a"}
	drop := &model.IfThenPlan{UserID: "user-1", Trigger: "drop", Action: "a"}
	require.NoError(t, svc.CreatePlan(ctx, keep))
	require.NoError(t, svc.CreatePlan(ctx, drop))

	require.NoError(t, svc.DeletePlan(ctx, "user-1", drop.ID))

	items, err := svc.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep", items[0].Trigger)
}
