package subtitle

import (
	"html"
	"regexp"
	"strings"
)

// Cue is a single timed subtitle unit. Start and End are seconds from the
// beginning of the video; End is inclusive.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

var (
	bracketedRegex     = regexp.MustCompile(`\[.*?\]`)
	parenthesizedRegex = regexp.MustCompile(`\(.*?\)`)
)

// CleanText normalizes raw caption text for display: HTML entities are
// unescaped, newlines collapsed to spaces, and bracketed/parenthesized
// annotations (sound effects, speaker notes) removed.
func CleanText(text string) string {
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "\n", " ")
	text = bracketedRegex.ReplaceAllString(text, "")
	text = parenthesizedRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// NewCue builds a Cue from source-native millisecond timing, cleaning the
// text. The second return value is false when the cue should be dropped
// (empty after cleaning, or non-positive duration).
func NewCue(offsetMs, durationMs float64, text string) (Cue, bool) {
	cleaned := CleanText(text)
	if cleaned == "" || durationMs <= 0 {
		return Cue{}, false
	}
	return Cue{
		Start: offsetMs / 1000,
		End:   (offsetMs + durationMs) / 1000,
		Text:  cleaned,
	}, true
}
