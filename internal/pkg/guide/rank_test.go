package guide_test

import (
	"strings"
	"testing"

	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and splits on punctuation",
			input:    "How do I handle a CRAVING?!",
			expected: []string{"how", "do", "i", "handle", "a", "craving"},
		},
		{
			name:     "keeps digits",
			input:    "4-7-8 breathing",
			expected: []string{"4", "7", "8", "breathing"},
		},
		{
			name:     "empty input",
			input:    "  ...  ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guide.Tokenize(tt.input))
		})
	}
}

func TestScore_ZeroCases(t *testing.T) {
	assert.Zero(t, guide.Score(nil, "some chunk text"))
	assert.Zero(t, guide.Score([]string{"craving"}, ""))
	assert.Zero(t, guide.Score([]string{"missing"}, "entirely unrelated words"))
}

func TestScore_BoostTerms(t *testing.T) {
	chunk := "craving craving walking walking"
	boosted := guide.Score([]string{"craving"}, chunk)
	plain := guide.Score([]string{"walking"}, chunk)
	assert.InDelta(t, 2*plain, boosted, 0.0001)
}

func TestScore_LengthNormalization(t *testing.T) {
	short := "craving help now"
	long := "craving " + strings.Repeat("filler ", 50)
	assert.Greater(t,
		guide.Score([]string{"craving"}, short),
		guide.Score([]string{"craving"}, long),
		"a match in a short chunk should outrank the same match diluted in a long chunk")
}

func TestSelectChunks_Budgets(t *testing.T) {
	chunks := []string{
		"craving craving craving",
		"craving craving",
		"craving",
		"nothing relevant here",
	}

	selected := guide.SelectChunks(chunks, "craving", "", 2, 10000)
	require.Len(t, selected, 2)
	assert.Equal(t, "craving craving craving", selected[0])
	assert.Equal(t, "craving craving", selected[1])

	total := 0
	for _, c := range guide.SelectChunks(chunks, "craving", "", 10, 30) {
		total += len(c)
	}
	assert.LessOrEqual(t, total, 30)
}

// Selection stops at the first chunk that would overflow the character
// budget; it does not skip it and continue with smaller chunks.
func TestSelectChunks_StopsAtFirstOverflow(t *testing.T) {
	chunks := []string{
		"craving craving craving craving long chunk " + strings.Repeat("pad ", 20),
		"craving tiny",
	}

	// Only the small chunk would fit, but the long chunk ranks first.
	budget := len(chunks[1]) + 5
	selected := guide.SelectChunks(chunks, "craving", "", 10, budget)
	assert.Empty(t, selected, "selection stops once the top-ranked chunk overflows")
}

func TestSelectChunks_TieKeepsDocumentOrder(t *testing.T) {
	chunks := []string{"craving alpha", "craving beta", "craving gamma"}
	selected := guide.SelectChunks(chunks, "craving", "", 3, 10000)
	require.Len(t, selected, 3)
	assert.Equal(t, chunks, selected)
}

func TestSelectChunks_RecentTextContributes(t *testing.T) {
	chunks := []string{"sleep hygiene and rest", "sponsor calls and meetings"}
	selected := guide.SelectChunks(chunks, "what should I do tonight", "journal: could not sleep, restless", 1, 10000)
	require.Len(t, selected, 1)
	assert.Equal(t, "sleep hygiene and rest", selected[0])
}

func TestSelectChunks_EmptyQuery(t *testing.T) {
	chunks := []string{"alpha", "beta"}
	selected := guide.SelectChunks(chunks, "", "", 2, 10000)
	// All scores are zero; stable order is preserved and budgets still apply.
	assert.Equal(t, chunks, selected)
}
