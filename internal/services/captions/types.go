package captions

import "context"

// LanguageAvailability describes one caption language discovered for a video.
// Probing through transcript fetches cannot observe whether a track was
// manually authored, so AutoGenerated is always reported as true.
type LanguageAvailability struct {
	Language      string `json:"language"`
	LanguageName  string `json:"languageName"`
	AutoGenerated bool   `json:"isGenerated"`
	Translatable  bool   `json:"isTranslatable"`
}

// RawCue is a transcript line in source-native timing: milliseconds since the
// start of the video plus a millisecond duration.
type RawCue struct {
	OffsetMs   float64
	DurationMs float64
	Text       string
}

// TranscriptSource retrieves raw transcripts for a (video, language) pair.
// Implementations must request the literal language tag with no fuzzy
// matching; tag reconciliation is the orchestrator's job.
type TranscriptSource interface {
	FetchTranscript(ctx context.Context, videoID, lang string) ([]RawCue, error)
}
