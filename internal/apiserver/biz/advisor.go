package biz

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/llm"
)

// Prompt assembly bounds.
const (
	recentWindow      = 7 * 24 * time.Hour
	recentMaxEntries  = 10
	maxPromptChunks   = 6
	maxPromptChars    = 8000
	transcriptLimit   = 10
	responseSentences = 5
)

const advisorSystemPrompt = `You are a compassionate recovery advisor. Ground every answer in the
guide material provided and the person's own recent journal entries. Be
specific and practical. Respond in at most five sentences.`

// FallbackResponse is returned when the completion service cannot be called.
const FallbackResponse = "I'm sorry, I can't reach the advisor service right now. " +
	"Please lean on your support network, and try again in a little while."

// AdvisorService orchestrates an advisor turn: recent-entry context, chunk
// retrieval, full-versus-delta guide foundation, bounded transcript, one
// completion call, sentence cap, best-effort persistence.
type AdvisorService struct {
	store         store.Factory
	guide         *guide.Loader
	conversations *ConversationService
	provider      llm.ChatProvider
	hasCredential bool
}

// NewAdvisorService creates a new AdvisorService. provider may be nil only
// when hasCredential is false.
func NewAdvisorService(store store.Factory, loader *guide.Loader, conversations *ConversationService, provider llm.ChatProvider, hasCredential bool) *AdvisorService {
	return &AdvisorService{
		store:         store,
		guide:         loader,
		conversations: conversations,
		provider:      provider,
		hasCredential: hasCredential,
	}
}

// Answer holds one advisor reply.
type Answer struct {
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}

// Ask runs one advisor turn for the user.
//
// The completion call is attempted exactly once; a failure is fatal for the
// turn and nothing is persisted. Appending the finished turn is best-effort:
// a store failure there is logged and the answer is still returned.
func (s *AdvisorService) Ask(ctx context.Context, userID, question, extraContext string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.ErrEmptyQuestion
	}

	if !s.hasCredential {
		logger.Warnw("advisor credential missing, returning fallback", "user_id", userID)
		return &Answer{Response: FallbackResponse, Timestamp: time.Now().UnixMilli()}, nil
	}

	recentText := s.renderRecentEntries(ctx, userID)

	chunks, err := s.guide.Chunks()
	if err != nil {
		return nil, errors.ErrGuideUnavailable.WithCause(err)
	}
	selected := guide.SelectChunks(chunks, question, recentText, maxPromptChunks, maxPromptChars)

	conv, err := s.conversations.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	foundation, err := s.buildFoundation(ctx, conv)
	if err != nil {
		return nil, err
	}

	transcript := renderTranscript(conv.Messages, transcriptLimit)
	prompt := buildPrompt(foundation, selected, recentText, transcript, question, extraContext)

	raw, err := s.provider.Generate(ctx, prompt, advisorSystemPrompt)
	if err != nil {
		return nil, errors.ErrModelCallFailed.WithCause(err)
	}
	response := capSentences(raw, responseSentences)

	now := time.Now().UnixMilli()
	turn := []model.Message{
		{Role: model.RoleUser, Content: question, Timestamp: now},
		{Role: model.RoleAssistant, Content: response, Timestamp: now},
	}
	if err := s.store.Conversations().AppendMessages(ctx, conv.ID, turn); err != nil {
		logger.Warnw("failed to persist advisor turn",
			"user_id", userID,
			"conversation_id", conv.ID,
			"error", err,
		)
	}

	return &Answer{Response: response, Timestamp: now}, nil
}

// buildFoundation decides what guide content this turn carries. A brand-new
// conversation gets the full guide text; afterwards only changed sections are
// sent. The hash map is seeded on the first turn and refreshed whenever
// sections changed, so the next turn sees true deltas only.
func (s *AdvisorService) buildFoundation(ctx context.Context, conv *model.Conversation) (string, error) {
	changed, nextHashes, err := s.conversations.ComputeGuideUpdates(conv)
	if err != nil {
		return "", err
	}

	firstTurn := len(conv.Messages) == 0

	var foundation string
	if firstTurn {
		foundation, err = s.guide.Text()
		if err != nil {
			return "", errors.ErrGuideUnavailable.WithCause(err)
		}
	} else if len(changed) > 0 {
		parts := make([]string, 0, len(changed))
		for _, sec := range changed {
			parts = append(parts, fmt.Sprintf("## %s\n\n%s", sec.Title, sec.Content))
		}
		foundation = strings.Join(parts, "\n\n---\n\n")
	}

	if firstTurn || len(changed) > 0 {
		if err := s.conversations.SaveGuideHashes(ctx, conv.ID, nextHashes); err != nil {
			return "", err
		}
	}
	return foundation, nil
}

// renderRecentEntries renders the trailing window of journal entries as a
// flat text block. Read failures degrade to an empty block.
func (s *AdvisorService) renderRecentEntries(ctx context.Context, userID string) string {
	since := time.Now().Add(-recentWindow).UnixMilli()
	items, err := s.store.Entries().ListSince(ctx, userID, since, recentMaxEntries)
	if err != nil {
		logger.Warnw("failed to load recent entries for advisor context",
			"user_id", userID, "error", err)
		return ""
	}

	var sb strings.Builder
	for _, entry := range items {
		day := time.UnixMilli(entry.CreatedAt).UTC().Format("2006-01-02")
		fmt.Fprintf(&sb, "[%s] (%s) %s\n", day, entry.EntryType, entry.Content)
	}
	return sb.String()
}

// renderTranscript renders the last limit messages as dialogue lines.
func renderTranscript(messages []model.Message, limit int) string {
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	var sb strings.Builder
	for _, msg := range messages {
		speaker := "User"
		if msg.Role == model.RoleAssistant {
			speaker = "Advisor"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, msg.Content)
	}
	return sb.String()
}

// buildPrompt assembles the single bounded prompt for the completion call.
func buildPrompt(foundation string, chunks []string, recentText, transcript, question, extraContext string) string {
	var sb strings.Builder

	if foundation != "" {
		sb.WriteString("GUIDE FOUNDATION:\n")
		sb.WriteString(foundation)
		sb.WriteString("\n\n")
	}
	if len(chunks) > 0 {
		sb.WriteString("RELEVANT GUIDE PASSAGES:\n")
		for _, chunk := range chunks {
			sb.WriteString(chunk)
			sb.WriteString("\n\n")
		}
	}
	if recentText != "" {
		sb.WriteString("RECENT JOURNAL ENTRIES:\n")
		sb.WriteString(recentText)
		sb.WriteString("\n")
	}
	if transcript != "" {
		sb.WriteString("CONVERSATION SO FAR:\n")
		sb.WriteString(transcript)
		sb.WriteString("\n")
	}
	if extraContext != "" {
		sb.WriteString("ADDITIONAL CONTEXT:\n")
		sb.WriteString(extraContext)
		sb.WriteString("\n\n")
	}
	sb.WriteString("QUESTION: ")
	sb.WriteString(question)

	return sb.String()
}

var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+["')\]]*\s*`)

// capSentences truncates text to at most max sentences. Text with no
// detectable sentence boundary is returned unchanged.
func capSentences(text string, max int) string {
	matches := sentenceRegex.FindAllString(text, -1)
	if len(matches) <= max {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(strings.Join(matches[:max], ""))
}
