package guide

import (
	"fmt"
	"regexp"
	"strings"
)

// Section is a heading-delimited region of the guide, tracked per conversation
// for change detection. Sections are re-derived from the source document on
// every read; only their hashes are persisted.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Hash    string `json:"hash"`
}

var (
	sectionHeadingRegex = regexp.MustCompile(`^##\s+`)
	slugRegex           = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases the title and collapses runs of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	return slugRegex.ReplaceAllString(strings.ToLower(title), "-")
}

// Sections splits the document into titled sections on level-two markdown
// headings. Content before the first heading becomes an implicit
// "Introduction" section. Sections with empty bodies are dropped.
//
// Section IDs are "{index}-{slug}" and stay stable across re-derivations as
// long as heading text and ordering are unchanged; they key the persisted
// per-conversation hash state.
func Sections(doc string) []Section {
	lines := strings.Split(doc, "\n")

	type rawSection struct {
		title string
		body  []string
	}

	var raw []rawSection
	current := rawSection{title: "Introduction"}

	flush := func() {
		if strings.TrimSpace(strings.Join(current.body, "\n")) != "" {
			raw = append(raw, current)
		}
	}

	for _, line := range lines {
		if sectionHeadingRegex.MatchString(line) {
			flush()
			current = rawSection{title: strings.TrimSpace(sectionHeadingRegex.ReplaceAllString(line, ""))}
			continue
		}
		current.body = append(current.body, line)
	}
	flush()

	sections := make([]Section, 0, len(raw))
	for i, s := range raw {
		content := strings.TrimSpace(strings.Join(s.body, "\n"))
		sections = append(sections, Section{
			ID:      fmt.Sprintf("%d-%s", i, Slugify(s.title)),
			Title:   s.title,
			Content: content,
			Hash:    Hash(content),
		})
	}
	return sections
}
