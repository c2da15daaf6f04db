package biz

import (
	"context"
	"fmt"
	"strings"

	stderrors "errors"

	"github.com/bytedance/sonic"
	"github.com/kart-io/logger"
	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/llm"
)

const summarySystemPrompt = `You summarize one day of recovery journal entries. Reply with strict
JSON only, no prose around it, in the shape
{"summary": string, "keyInsights": [string], "encouragement": string}.`

// SummaryService generates and serves AI daily digests of journal entries.
type SummaryService struct {
	store         store.Factory
	entries       *EntryService
	provider      llm.ChatProvider
	hasCredential bool
	cache         *SummaryCache
}

// NewSummaryService creates a new SummaryService. cache may be nil.
func NewSummaryService(store store.Factory, entries *EntryService, provider llm.ChatProvider, hasCredential bool, cache *SummaryCache) *SummaryService {
	return &SummaryService{
		store:         store,
		entries:       entries,
		provider:      provider,
		hasCredential: hasCredential,
		cache:         cache,
	}
}

// summaryPayload is the JSON shape the model is instructed to emit.
type summaryPayload struct {
	Summary       string   `json:"summary"`
	KeyInsights   []string `json:"keyInsights"`
	Encouragement string   `json:"encouragement"`
}

// Get returns the stored summary for the user and day, consulting the cache
// first.
func (s *SummaryService) Get(ctx context.Context, userID, date string) (*model.DailySummary, error) {
	if err := validDay(date); err != nil {
		return nil, err
	}

	if cached := s.cache.Get(ctx, userID, date); cached != nil {
		return cached, nil
	}

	summary, err := s.store.Summaries().Get(ctx, userID, date)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("No summary for that day")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}

	s.cache.Set(ctx, summary)
	return summary, nil
}

// Generate produces the AI digest for one day of entries and persists it.
// Persistence and caching are best-effort; the generated digest is returned
// even when the write fails.
func (s *SummaryService) Generate(ctx context.Context, userID, date string) (*model.DailySummary, error) {
	if err := validDay(date); err != nil {
		return nil, err
	}
	if !s.hasCredential {
		return nil, errors.ErrServiceUnavailable.WithMessage("Summary generation requires a configured model credential")
	}

	items, err := s.entries.ForDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.ErrEntryNotFound.WithMessage("No journal entries for that day")
	}

	var sb strings.Builder
	for _, entry := range items {
		fmt.Fprintf(&sb, "(%s) %s\n", entry.EntryType, entry.Content)
	}

	raw, err := s.provider.Generate(ctx, sb.String(), summarySystemPrompt)
	if err != nil {
		return nil, errors.ErrModelCallFailed.WithCause(err)
	}

	summary := &model.DailySummary{UserID: userID, Date: date}
	payload, perr := parseSummaryPayload(raw)
	if perr != nil {
		// The model ignored the JSON instruction; keep its text as the digest.
		logger.Warnw("summary response was not valid JSON, keeping raw text",
			"user_id", userID, "date", date, "error", perr)
		summary.Summary = strings.TrimSpace(raw)
	} else {
		summary.Summary = payload.Summary
		summary.KeyInsights = payload.KeyInsights
		summary.Encouragement = payload.Encouragement
	}

	if err := s.store.Summaries().Upsert(ctx, summary); err != nil {
		logger.Warnw("failed to persist daily summary",
			"user_id", userID, "date", date, "error", err)
		return summary, nil
	}

	s.cache.Set(ctx, summary)
	return summary, nil
}

// parseSummaryPayload decodes the model response, tolerating a markdown code
// fence around the JSON body.
func parseSummaryPayload(raw string) (*summaryPayload, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var payload summaryPayload
	if err := sonic.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("summary field missing")
	}
	return &payload, nil
}
