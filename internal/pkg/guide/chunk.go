package guide

import (
	"regexp"
	"strings"
)

// MaxChunkChars caps the size of a retrieval chunk. Chunks exceeding it are
// re-split on paragraph boundaries; a single paragraph with no internal blank
// line may still exceed the cap and is kept whole.
const MaxChunkChars = 2500

// chunkHeadingRegex matches lines that start a new retrieval chunk: markdown
// headings, "Part N" / "Module N" labels, or an ALL-CAPS label ending in a
// colon. Broader than the section heading pattern; retrieval chunks are
// independent of change-tracking sections.
var chunkHeadingRegex = regexp.MustCompile(`^(#{1,6}\s+|Part\s+\d+|Module\s+\d+|[A-Z][A-Z\s\-,&]+:)`)

var paragraphSplitRegex = regexp.MustCompile(`\n\n+`)

// Chunks splits the document into retrieval units. Boundaries are
// heading-like lines; oversized chunks are repacked greedily on blank-line
// paragraph boundaries so that no chunk exceeds MaxChunkChars except the
// documented single-oversized-paragraph case.
func Chunks(doc string) []string {
	var chunks []string
	var current []string

	flush := func() {
		if text := strings.TrimSpace(strings.Join(current, "\n")); text != "" {
			chunks = append(chunks, text)
		}
		current = nil
	}

	for _, line := range strings.Split(doc, "\n") {
		if chunkHeadingRegex.MatchString(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	normalized := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk) <= MaxChunkChars {
			normalized = append(normalized, chunk)
			continue
		}
		normalized = append(normalized, splitByParagraphs(chunk)...)
	}
	return normalized
}

// splitByParagraphs packs paragraphs into sub-chunks not exceeding
// MaxChunkChars. Paragraphs are never split internally.
func splitByParagraphs(chunk string) []string {
	var out []string
	var buffer string

	for _, para := range paragraphSplitRegex.Split(chunk, -1) {
		if buffer != "" && len(buffer)+2+len(para) > MaxChunkChars {
			if text := strings.TrimSpace(buffer); text != "" {
				out = append(out, text)
			}
			buffer = para
			continue
		}
		if buffer == "" {
			buffer = para
		} else {
			buffer = buffer + "\n\n" + para
		}
	}
	if text := strings.TrimSpace(buffer); text != "" {
		out = append(out, text)
	}
	return out
}
