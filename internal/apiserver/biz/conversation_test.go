package biz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/kart-io/haven/pkg/component/sqlite"
)

func newConversationFixture(t *testing.T) (*ConversationService, store.Factory, *guide.Loader) {
	t.Helper()

	client, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewDatastore(client.DB())
	require.NoError(t, factory.AutoMigrate())

	path := filepath.Join(t.TempDir(), "guide.md")
	require.NoError(t, os.WriteFile(path, []byte(testGuide), 0o600))
	loader := guide.NewLoader(path)

	return NewConversationService(factory, loader), factory, loader
}

func TestGetOrCreate_CreatesEmptyConversation(t *testing.T) {
	svc, _, _ := newConversationFixture(t)
	ctx := context.Background()

	conv, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Empty(t, conv.Messages)
	assert.Empty(t, conv.GuideSectionHashes)

	again, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}

func TestComputeGuideUpdates_EmptyMapMarksAllChanged(t *testing.T) {
	svc, _, loader := newConversationFixture(t)

	conv := &model.Conversation{GuideSectionHashes: map[string]string{}}
	changed, next, err := svc.ComputeGuideUpdates(conv)
	require.NoError(t, err)

	sections, err := loader.Sections()
	require.NoError(t, err)
	assert.Len(t, changed, len(sections))
	assert.Len(t, next, len(sections))

	// Document order is preserved.
	for i, sec := range sections {
		assert.Equal(t, sec.ID, changed[i].ID)
	}
}

func TestComputeGuideUpdates_MatchingMapMarksNoneChanged(t *testing.T) {
	svc, _, loader := newConversationFixture(t)

	sections, err := loader.Sections()
	require.NoError(t, err)

	hashes := make(map[string]string, len(sections))
	for _, sec := range sections {
		hashes[sec.ID] = sec.Hash
	}

	changed, next, err := svc.ComputeGuideUpdates(&model.Conversation{GuideSectionHashes: hashes})
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, hashes, next)
}

func TestComputeGuideUpdates_StaleHashMarksSectionChanged(t *testing.T) {
	svc, _, loader := newConversationFixture(t)

	sections, err := loader.Sections()
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	hashes := make(map[string]string, len(sections))
	for _, sec := range sections {
		hashes[sec.ID] = sec.Hash
	}
	hashes[sections[0].ID] = "stale"

	changed, _, err := svc.ComputeGuideUpdates(&model.Conversation{GuideSectionHashes: hashes})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, sections[0].ID, changed[0].ID)
}

func TestHistory_LimitsToLastMessages(t *testing.T) {
	svc, factory, _ := newConversationFixture(t)
	ctx := context.Background()

	conv, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	var msgs []model.Message
	for i := 0; i < 6; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msgs = append(msgs, model.Message{Role: role, Content: string(rune('a' + i)), Timestamp: int64(i)})
	}
	require.NoError(t, factory.Conversations().AppendMessages(ctx, conv.ID, msgs))

	got, err := svc.History(ctx, "u1", 4)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "c", got[0].Content)
	assert.Equal(t, "f", got[3].Content)
}

func TestHistory_NoConversation(t *testing.T) {
	svc, _, _ := newConversationFixture(t)

	got, err := svc.History(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClear_RemovesHistory(t *testing.T) {
	svc, _, _ := newConversationFixture(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "u1"))

	second, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
