package guide

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenSplitRegex = regexp.MustCompile(`[^a-z0-9]+`)

// boostTerms are domain-salient words weighted double during scoring.
var boostTerms = map[string]bool{
	"craving":   true,
	"obsession": true,
	"surrender": true,
	"sponsor":   true,
}

// Tokenize lowercases text and splits it on runs of non-alphanumeric
// characters, dropping empty tokens.
func Tokenize(text string) []string {
	var tokens []string
	for _, t := range tokenSplitRegex.Split(strings.ToLower(text), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Score rates a chunk against tokenized query terms: the sum of per-token
// chunk frequencies (domain terms doubled), normalized by the square root of
// the chunk's token count so long chunks do not win on bulk alone.
func Score(queryTokens []string, chunk string) float64 {
	chunkTokens := Tokenize(chunk)
	if len(queryTokens) == 0 || len(chunkTokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(chunkTokens))
	for _, t := range chunkTokens {
		freq[t]++
	}

	var score float64
	for _, t := range queryTokens {
		boost := 1.0
		if boostTerms[t] {
			boost = 2.0
		}
		score += float64(freq[t]) * boost
	}
	return score / math.Sqrt(float64(len(chunkTokens)))
}

// SelectChunks ranks chunks against the question plus recent-activity text
// and returns the best ones, most relevant first, bounded by both a chunk
// count and a total character budget.
//
// Selection walks chunks in strict score order and stops at the first chunk
// that would overflow the character budget; it does not skip ahead to smaller
// chunks. Ties keep original document order.
func SelectChunks(chunks []string, question, recentText string, maxChunks, maxTotalChars int) []string {
	queryTokens := Tokenize(strings.TrimSpace(question + "\n\n" + recentText))

	type scored struct {
		chunk string
		score float64
	}
	ranked := make([]scored, len(chunks))
	for i, c := range chunks {
		ranked[i] = scored{chunk: c, score: Score(queryTokens, c)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var selected []string
	used := 0
	for _, r := range ranked {
		if len(selected) >= maxChunks {
			break
		}
		if used+len(r.chunk) > maxTotalChars {
			break
		}
		selected = append(selected, r.chunk)
		used += len(r.chunk)
	}
	return selected
}
