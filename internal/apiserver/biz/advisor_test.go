package biz

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/kart-io/haven/pkg/component/sqlite"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/llm"
)

const testGuide = `Welcome to the program.

## Handling Cravings

When a craving hits, pause and breathe. Call your sponsor before acting.

## Daily Practice

Morning review, evening inventory. Keep the routine small and consistent.
`

// mockChatProvider is a scripted ChatProvider for orchestrator tests.
type mockChatProvider struct {
	response string
	err      error
	prompts  []string
	systems  []string
}

func (m *mockChatProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockChatProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.systems = append(m.systems, systemPrompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockChatProvider) Name() string { return "mock" }

type advisorFixture struct {
	store    store.Factory
	loader   *guide.Loader
	convs    *ConversationService
	provider *mockChatProvider
	advisor  *AdvisorService
	guideDir string
}

func newAdvisorFixture(t *testing.T) *advisorFixture {
	t.Helper()

	client, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewDatastore(client.DB())
	require.NoError(t, factory.AutoMigrate())

	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(path, []byte(testGuide), 0o600))

	loader := guide.NewLoader(path)
	convs := NewConversationService(factory, loader)
	provider := &mockChatProvider{response: "Take one breath. Call your sponsor."}

	return &advisorFixture{
		store:    factory,
		loader:   loader,
		convs:    convs,
		provider: provider,
		advisor:  NewAdvisorService(factory, loader, convs, provider, true),
		guideDir: dir,
	}
}

func (f *advisorFixture) rewriteGuide(t *testing.T, text string) {
	t.Helper()
	path := filepath.Join(f.guideDir, "guide.md")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	require.NoError(t, f.loader.Refresh())
}

func TestAsk_EmptyQuestion(t *testing.T) {
	f := newAdvisorFixture(t)

	_, err := f.advisor.Ask(context.Background(), "u1", "   ", "")
	assert.Equal(t, errors.ErrEmptyQuestion.Code, errors.GetCode(err))
	assert.Empty(t, f.provider.prompts)
}

func TestAsk_MissingCredentialReturnsFallback(t *testing.T) {
	f := newAdvisorFixture(t)
	advisor := NewAdvisorService(f.store, f.loader, f.convs, nil, false)

	answer, err := advisor.Ask(context.Background(), "u1", "How do I handle a craving?", "")
	require.NoError(t, err)
	assert.Equal(t, FallbackResponse, answer.Response)

	// No conversation side effects without a model call.
	msgs, err := f.convs.History(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestAsk_FirstTurnSendsFullGuideAndSeedsHashes(t *testing.T) {
	f := newAdvisorFixture(t)
	ctx := context.Background()

	answer, err := f.advisor.Ask(ctx, "u1", "How do I handle a craving?", "")
	require.NoError(t, err)
	assert.NotEmpty(t, answer.Response)

	require.Len(t, f.provider.prompts, 1)
	assert.Contains(t, f.provider.prompts[0], "Welcome to the program.")
	assert.Contains(t, f.provider.prompts[0], "Handling Cravings")

	conv, err := f.store.Conversations().FindLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)

	sections, err := f.loader.Sections()
	require.NoError(t, err)
	require.Len(t, conv.GuideSectionHashes, len(sections))
	for _, sec := range sections {
		assert.Equal(t, sec.Hash, conv.GuideSectionHashes[sec.ID])
	}
}

func TestAsk_SecondTurnUnchangedGuideSendsNoFoundation(t *testing.T) {
	f := newAdvisorFixture(t)
	ctx := context.Background()

	_, err := f.advisor.Ask(ctx, "u1", "How do I handle a craving?", "")
	require.NoError(t, err)

	_, err = f.advisor.Ask(ctx, "u1", "What about tonight?", "")
	require.NoError(t, err)

	require.Len(t, f.provider.prompts, 2)
	assert.NotContains(t, f.provider.prompts[1], "GUIDE FOUNDATION:")

	conv, err := f.store.Conversations().FindLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)
}

func TestAsk_EditedSectionIsResentAlone(t *testing.T) {
	f := newAdvisorFixture(t)
	ctx := context.Background()

	_, err := f.advisor.Ask(ctx, "u1", "How do I handle a craving?", "")
	require.NoError(t, err)

	before, err := f.store.Conversations().FindLatest(ctx, "u1")
	require.NoError(t, err)

	edited := `Welcome to the program.

## Handling Cravings

When a craving hits, pause and breathe. Call your sponsor before acting.

## Daily Practice

Morning review, evening inventory, and a nightly gratitude list.
`
	f.rewriteGuide(t, edited)

	_, err = f.advisor.Ask(ctx, "u1", "Anything new?", "")
	require.NoError(t, err)

	require.Len(t, f.provider.prompts, 2)
	prompt := f.provider.prompts[1]
	start := strings.Index(prompt, "GUIDE FOUNDATION:")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(prompt, "RELEVANT GUIDE PASSAGES:")
	require.Greater(t, end, start)

	foundation := prompt[start:end]
	assert.Contains(t, foundation, "Daily Practice")
	assert.NotContains(t, foundation, "Handling Cravings")
	assert.NotContains(t, foundation, "Welcome to the program.")

	after, err := f.store.Conversations().FindLatest(ctx, "u1")
	require.NoError(t, err)
	for id, hash := range before.GuideSectionHashes {
		if id == "2-daily-practice" {
			assert.NotEqual(t, hash, after.GuideSectionHashes[id])
			continue
		}
		assert.Equal(t, hash, after.GuideSectionHashes[id])
	}
}

func TestAsk_CompletionFailurePersistsNothing(t *testing.T) {
	f := newAdvisorFixture(t)
	ctx := context.Background()

	f.provider.err = fmt.Errorf("upstream 500")
	_, err := f.advisor.Ask(ctx, "u1", "How do I handle a craving?", "")
	assert.Equal(t, errors.ErrModelCallFailed.Code, errors.GetCode(err))

	conv, ferr := f.store.Conversations().FindLatest(ctx, "u1")
	require.NoError(t, ferr)
	assert.Empty(t, conv.Messages)
}

func TestAsk_ResponseIsSentenceCapped(t *testing.T) {
	f := newAdvisorFixture(t)
	f.provider.response = "One. Two. Three. Four. Five. Six. Seven."

	answer, err := f.advisor.Ask(context.Background(), "u1", "How do I handle a craving?", "")
	require.NoError(t, err)
	assert.Equal(t, "One. Two. Three. Four. Five.", answer.Response)
}

func TestCapSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"under cap", "Stay close. Call someone.", "Stay close. Call someone."},
		{"exactly five", "A. B. C. D. E.", "A. B. C. D. E."},
		{"over cap", "A. B. C. D. E. F.", "A. B. C. D. E."},
		{"mixed punctuation", "Really? Yes! Good. Then go. Now. Extra.", "Really? Yes! Good. Then go. Now."},
		{"no boundary", "just a fragment with no period", "just a fragment with no period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capSentences(tt.in, 5))
		})
	}
}

func TestAsk_RecentEntriesFlowIntoPrompt(t *testing.T) {
	f := newAdvisorFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Entries().Create(ctx, &model.Entry{
		UserID:    "u1",
		Content:   "Rough evening, strong craving after work.",
		EntryType: model.EntryTypeText,
	}))

	_, err := f.advisor.Ask(ctx, "u1", "What should I watch for?", "")
	require.NoError(t, err)

	require.Len(t, f.provider.prompts, 1)
	assert.Contains(t, f.provider.prompts[0], "Rough evening, strong craving after work.")
}
