package guide_test

import (
	"testing"

	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "Ride The Wave",
			expected: "ride the wave",
		},
		{
			name:     "collapses whitespace runs",
			input:    "ride  the\n\n\twave",
			expected: "ride the wave",
		},
		{
			name:     "strips punctuation",
			input:    `"Ride, the (wave)!"`,
			expected: "ride the wave",
		},
		{
			name:     "trims",
			input:    "  ride the wave  ",
			expected: "ride the wave",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guide.Normalize(tt.input))
		})
	}
}

func TestHash_FormattingInsensitive(t *testing.T) {
	base := guide.Hash("Call your sponsor before the craving peaks.")

	variants := []string{
		"call your sponsor before the craving peaks",
		"Call  your\nsponsor   before the craving peaks.",
		"CALL YOUR SPONSOR, BEFORE THE CRAVING PEAKS!",
		"\tCall your sponsor before the craving peaks.  ",
	}
	for _, v := range variants {
		assert.Equal(t, base, guide.Hash(v), "variant %q should hash identically", v)
	}

	assert.NotEqual(t, base, guide.Hash("Call your sponsor after the craving peaks."))
}

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, guide.Hash("surrender"), guide.Hash("surrender"))

	// Empty input hashes to a fixed digest, never errors.
	assert.Equal(t, guide.Hash(""), guide.Hash("   \n\t "))
	assert.Len(t, guide.Hash(""), 64)
}
