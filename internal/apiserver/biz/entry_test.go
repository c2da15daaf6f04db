package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/component/sqlite"
	"github.com/kart-io/haven/pkg/errors"
)

func newEntryFixture(t *testing.T) *EntryService {
	t.Helper()

	client, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewDatastore(client.DB())
	require.NoError(t, factory.AutoMigrate())

	return NewEntryService(factory)
}

func TestEntryCreate_Defaults(t *testing.T) {
	svc := newEntryFixture(t)
	ctx := context.Background()

	entry := &model.Entry{UserID: "user-1", Content: "wrote in the journal"}
	require.NoError(t, svc.Create(ctx, entry))
	assert.Len(t, entry.ID, 26)
	assert.Equal(t, model.EntryTypeText, entry.EntryType)
}

func TestEntryCreate_RejectsBlankContent(t *testing.T) {
	svc := newEntryFixture(t)

	err := svc.Create(context.Background(), &model.Entry{UserID: "user-1", Content: "   \n"})
	assert.Equal(t, errors.ErrEmptyEntryBody.Code, errors.GetCode(err))
}

func TestEntryCreate_RejectsUnknownType(t *testing.T) {
	svc := newEntryFixture(t)

	err := svc.Create(context.Background(), &model.Entry{
		UserID:    "user-1",
		Content:   "hello",
		EntryType: "video",
	})
	assert.Equal(t, errors.ErrInvalidParam.Code, errors.GetCode(err))
}

func TestEntryGet_ScopedToOwner(t *testing.T) {
	svc := newEntryFixture(t)
	ctx := context.Background()

	entry := &model.Entry{UserID: "user-1", Content: "mine"}
	require.NoError(t, svc.Create(ctx, entry))

	got, err := svc.Get(ctx, "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Content)

	_, err = svc.Get(ctx, "user-2", entry.ID)
	assert.Equal(t, errors.ErrEntryNotFound.Code, errors.GetCode(err))
}

func TestEntryList_NewestFirst(t *testing.T) {
	svc := newEntryFixture(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, svc.Create(ctx, &model.Entry{UserID: "user-1", Content: content}))
		time.Sleep(2 * time.Millisecond)
	}

	count, items, err := svc.List(ctx, "user-1", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].Content)
	assert.Equal(t, "second", items[1].Content)
}

func TestEntryForDay_RejectsBadDate(t *testing.T) {
	svc := newEntryFixture(t)

	_, err := svc.ForDay(context.Background(), "user-1", "29-08-2026")
	assert.Equal(t, errors.ErrInvalidDay.Code, errors.GetCode(err))
}

func TestEntryToday_ExcludesOldEntries(t *testing.T) {
	svc := newEntryFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Entry{UserID: "user-1", Content: "fresh"}))

	old := &model.Entry{
		UserID:    "user-1",
		Content:   "stale",
		CreatedAt: time.Now().AddDate(0, 0, -2).UnixMilli(),
	}
	require.NoError(t, svc.Create(ctx, old))

	items, err := svc.Today(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].Content)
}
