package guide_test

import (
	"strings"
	"testing"

	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks_HeadingBoundaries(t *testing.T) {
	doc := strings.Join([]string{
		"Intro line before any heading.",
		"# Top Heading",
		"body one",
		"Part 1",
		"body two",
		"Module 3",
		"body three",
		"EMERGENCY TOOLS:",
		"body four",
	}, "\n")

	chunks := guide.Chunks(doc)
	require.Len(t, chunks, 5)
	assert.Equal(t, "Intro line before any heading.", chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], "# Top Heading"))
	assert.True(t, strings.HasPrefix(chunks[2], "Part 1"))
	assert.True(t, strings.HasPrefix(chunks[3], "Module 3"))
	assert.True(t, strings.HasPrefix(chunks[4], "EMERGENCY TOOLS:"))
}

func TestChunks_OrdinaryLinesDoNotSplit(t *testing.T) {
	doc := "plain line one\nplain line two\nAnother plain line: with colon but lowercase"
	chunks := guide.Chunks(doc)
	require.Len(t, chunks, 1)
}

func TestChunks_OversizedChunkRepackedByParagraph(t *testing.T) {
	para := strings.Repeat("craving wave rider ", 50) // ~950 chars
	doc := "## Big Section\n" + para + "\n\n" + para + "\n\n" + para + "\n\n" + para

	chunks := guide.Chunks(doc)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), guide.MaxChunkChars, "chunk %d", i)
	}
}

// A single paragraph with no internal blank line may exceed the budget; it is
// kept whole rather than split mid-paragraph.
func TestChunks_SingleOversizedParagraphKeptWhole(t *testing.T) {
	para := strings.Repeat("obsession surrender sponsor ", 120) // > 2500 chars, one paragraph
	doc := "## Huge\n" + para

	chunks := guide.Chunks(doc)
	require.Len(t, chunks, 1)
	assert.Greater(t, len(chunks[0]), guide.MaxChunkChars)
	assert.NotContains(t, chunks[0], "\n\n")
}

func TestChunks_EmptyDocument(t *testing.T) {
	assert.Empty(t, guide.Chunks(""))
}
