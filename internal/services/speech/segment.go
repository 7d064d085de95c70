package speech

import (
	"regexp"
	"strings"

	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// Timing heuristics for transcripts that come back without timestamps.
// Conversational speech averages roughly 150 words a minute.
const (
	wordsPerSecond   = 2.5
	utteranceGapSecs = 0.5
	sentenceDuration = 3.0
)

var sentenceBoundary = regexp.MustCompile(`[.!?。！？]+`)

// splitSentences breaks a flat transcript on sentence punctuation, keeping
// non-empty fragments in order.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceBoundary.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// cuesFromSentences lays sentences end to end at a fixed duration each. This
// is the crudest timing model, used only when a provider returns text with no
// timestamps at all.
func cuesFromSentences(text string) []subtitle.Cue {
	sentences := splitSentences(text)
	cues := make([]subtitle.Cue, 0, len(sentences))
	offset := 0.0
	for _, sentence := range sentences {
		cues = append(cues, subtitle.Cue{
			Start: offset,
			End:   offset + sentenceDuration,
			Text:  sentence,
		})
		offset += sentenceDuration
	}
	return cues
}

// cuesFromUtterances estimates per-utterance timing from word counts, with a
// short pause between utterances.
func cuesFromUtterances(utterances []string) []subtitle.Cue {
	cues := make([]subtitle.Cue, 0, len(utterances))
	offset := 0.0
	for _, utterance := range utterances {
		text := strings.TrimSpace(utterance)
		if text == "" {
			continue
		}
		words := len(strings.Fields(text))
		duration := float64(words) / wordsPerSecond
		if duration <= 0 {
			duration = sentenceDuration
		}
		cues = append(cues, subtitle.Cue{
			Start: offset,
			End:   offset + duration,
			Text:  text,
		})
		offset += duration + utteranceGapSecs
	}
	return cues
}

// joinCueText flattens cues back into a single transcript string
func joinCueText(cues []subtitle.Cue) string {
	parts := make([]string, 0, len(cues))
	for _, cue := range cues {
		parts = append(parts, cue.Text)
	}
	return strings.Join(parts, " ")
}
