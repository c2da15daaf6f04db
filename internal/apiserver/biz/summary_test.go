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

func TestParseSummaryPayload(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "plain json",
			in:   `{"summary":"A steady day.","keyInsights":["slept well"],"encouragement":"Keep going."}`,
			want: "A steady day.",
		},
		{
			name: "json fence",
			in:   "```json\n{\"summary\":\"Fenced.\",\"keyInsights\":[],\"encouragement\":\"\"}\n```",
			want: "Fenced.",
		},
		{
			name: "bare fence",
			in:   "```\n{\"summary\":\"Bare.\",\"keyInsights\":[],\"encouragement\":\"\"}\n```",
			want: "Bare.",
		},
		{
			name:    "not json",
			in:      "The model decided to write prose instead.",
			wantErr: true,
		},
		{
			name:    "missing summary field",
			in:      `{"keyInsights":["x"]}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := parseSummaryPayload(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.Summary)
		})
	}
}

func todayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

func newSummaryFixture(t *testing.T, provider *mockChatProvider) (*SummaryService, store.Factory) {
	t.Helper()

	client, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewDatastore(client.DB())
	require.NoError(t, factory.AutoMigrate())

	entries := NewEntryService(factory)
	return NewSummaryService(factory, entries, provider, true, nil), factory
}

func seedEntryForToday(t *testing.T, factory store.Factory, userID, content string) string {
	t.Helper()
	entry := &model.Entry{UserID: userID, Content: content, EntryType: model.EntryTypeText}
	require.NoError(t, factory.Entries().Create(context.Background(), entry))
	return entry.ID
}

func TestGenerate_PersistsParsedSummary(t *testing.T) {
	provider := &mockChatProvider{
		response: `{"summary":"One craving handled well.","keyInsights":["evening risk"],"encouragement":"Proud of you."}`,
	}
	svc, factory := newSummaryFixture(t, provider)
	ctx := context.Background()

	seedEntryForToday(t, factory, "u1", "Got through a craving by calling my sponsor.")
	today := todayUTC()

	summary, err := svc.Generate(ctx, "u1", today)
	require.NoError(t, err)
	assert.Equal(t, "One craving handled well.", summary.Summary)
	assert.Equal(t, []string{"evening risk"}, summary.KeyInsights)

	stored, err := factory.Summaries().Get(ctx, "u1", today)
	require.NoError(t, err)
	assert.Equal(t, summary.Summary, stored.Summary)
}

func TestGenerate_KeepsRawTextWhenJSONInvalid(t *testing.T) {
	provider := &mockChatProvider{response: "Plain prose summary, no JSON."}
	svc, factory := newSummaryFixture(t, provider)
	ctx := context.Background()

	seedEntryForToday(t, factory, "u1", "Quiet day, stayed on routine.")

	summary, err := svc.Generate(ctx, "u1", todayUTC())
	require.NoError(t, err)
	assert.Equal(t, "Plain prose summary, no JSON.", summary.Summary)
	assert.Empty(t, summary.KeyInsights)
}

func TestGenerate_NoEntries(t *testing.T) {
	svc, _ := newSummaryFixture(t, &mockChatProvider{response: "{}"})

	_, err := svc.Generate(context.Background(), "u1", todayUTC())
	assert.Equal(t, errors.ErrEntryNotFound.Code, errors.GetCode(err))
}

func TestGenerate_InvalidDay(t *testing.T) {
	svc, _ := newSummaryFixture(t, &mockChatProvider{})

	_, err := svc.Generate(context.Background(), "u1", "08/01/2026")
	assert.Equal(t, errors.ErrInvalidDay.Code, errors.GetCode(err))
}
