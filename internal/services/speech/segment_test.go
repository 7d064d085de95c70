package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "mixed punctuation",
			text:     "Hello there. How are you? Great!",
			expected: []string{"Hello there", "How are you", "Great"},
		},
		{
			name:     "japanese punctuation",
			text:     "こんにちは。元気ですか？",
			expected: []string{"こんにちは", "元気ですか"},
		},
		{
			name:     "no punctuation",
			text:     "one long run on line",
			expected: []string{"one long run on line"},
		},
		{
			name:     "empty",
			text:     "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSentences(tt.text))
		})
	}
}

func TestCuesFromSentences(t *testing.T) {
	cues := cuesFromSentences("First. Second. Third.")

	require.Len(t, cues, 3)
	assert.Equal(t, 0.0, cues[0].Start)
	assert.Equal(t, 3.0, cues[0].End)
	assert.Equal(t, 3.0, cues[1].Start)
	assert.Equal(t, 6.0, cues[1].End)
	assert.Equal(t, "Third", cues[2].Text)
}

func TestCuesFromUtterances(t *testing.T) {
	cues := cuesFromUtterances([]string{
		"one two three four five", // 5 words, 2s
		"six seven",               // 2 words, 0.8s
	})

	require.Len(t, cues, 2)
	assert.Equal(t, 0.0, cues[0].Start)
	assert.Equal(t, 2.0, cues[0].End)
	assert.InDelta(t, 2.5, cues[1].Start, 1e-9, "a pause separates utterances")
	assert.InDelta(t, 3.3, cues[1].End, 1e-9)
}

func TestCuesFromUtterancesSkipsBlank(t *testing.T) {
	cues := cuesFromUtterances([]string{"", "  ", "hello"})
	require.Len(t, cues, 1)
	assert.Equal(t, "hello", cues[0].Text)
}
