package guide_test

import (
	"strings"
	"testing"

	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `Welcome to the recovery guide.
This preamble has no heading.

## Riding the Wave
Cravings rise and fall like waves.
Breathe through the peak.

## Connection & Service
Call your sponsor.
Serve someone today.

##   Empty Section

## Daily Protocol
Move the body within five seconds.`

func TestSections_Basic(t *testing.T) {
	sections := guide.Sections(sampleDoc)
	require.Len(t, sections, 4)

	assert.Equal(t, "Introduction", sections[0].Title)
	assert.Equal(t, "0-introduction", sections[0].ID)
	assert.Contains(t, sections[0].Content, "preamble")

	assert.Equal(t, "Riding the Wave", sections[1].Title)
	assert.Equal(t, "1-riding-the-wave", sections[1].ID)

	assert.Equal(t, "Connection & Service", sections[2].Title)
	assert.Equal(t, "2-connection-service-", sections[2].ID)

	// The empty-bodied section is dropped; ids keep counting from the
	// surviving sections.
	assert.Equal(t, "Daily Protocol", sections[3].Title)
	assert.Equal(t, "3-daily-protocol", sections[3].ID)
}

func TestSections_HashesPerSection(t *testing.T) {
	sections := guide.Sections(sampleDoc)
	for _, s := range sections {
		assert.Equal(t, guide.Hash(s.Content), s.Hash, "section %s", s.ID)
		assert.NotEmpty(t, s.Content)
	}
}

func TestSections_StableIDsAcrossRederivation(t *testing.T) {
	first := guide.Sections(sampleDoc)
	second := guide.Sections(sampleDoc)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Hash, second[i].Hash)
	}
}

// Concatenating section bodies in order reconstructs the document content
// modulo heading lines and surrounding whitespace.
func TestSections_NoContentLoss(t *testing.T) {
	sections := guide.Sections(sampleDoc)

	var rebuilt strings.Builder
	for _, s := range sections {
		rebuilt.WriteString(s.Content)
		rebuilt.WriteString("\n")
	}

	for _, line := range strings.Split(sampleDoc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "##  ") {
			continue
		}
		assert.Contains(t, rebuilt.String(), trimmed)
	}
}

func TestSections_NoHeadings(t *testing.T) {
	sections := guide.Sections("just one paragraph, no headings at all")
	require.Len(t, sections, 1)
	assert.Equal(t, "Introduction", sections[0].Title)
	assert.Equal(t, "0-introduction", sections[0].ID)
}

func TestSections_EmptyDocument(t *testing.T) {
	assert.Empty(t, guide.Sections(""))
	assert.Empty(t, guide.Sections("\n\n\n"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Riding the Wave", "riding-the-wave"},
		{"Connection & Service", "connection-service-"},
		{"ALREADY-SLUGGED", "already-slugged"},
		{"  spaces  ", "-spaces-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, guide.Slugify(tt.input), "input %q", tt.input)
	}
}
