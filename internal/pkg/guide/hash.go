// Package guide provides segmentation, hashing, and relevance ranking for the
// static recovery guide document used to ground advisor responses.
package guide

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	punctuationRegex = regexp.MustCompile(`[.,;:!?()\[\]{}"']`)
)

// Normalize prepares text for change-detection hashing: lowercase, collapse
// whitespace runs to a single space, strip punctuation, trim. Formatting-only
// edits (re-wrapping, re-indenting) therefore do not change the hash.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = punctuationRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Hash returns the SHA-256 hex digest of the normalized text. It is used only
// for change detection, not for anything security-sensitive.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}
