package subtitles

import (
	"context"

	"github.com/eigotube/immersion-api/internal/services/captions"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// LanguageProber discovers which caption languages a video carries
type LanguageProber interface {
	DiscoverLanguages(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error)
	Invalidate(ctx context.Context, videoID string) error
}

// TranscriptFetcher retrieves cleaned cue sequences for a literal tag
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error)
	Invalidate(ctx context.Context, videoID, lang string) error
}

// Translator converts cue text between languages, preserving timing
type Translator interface {
	TranslateCues(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]subtitle.Cue, error)
}
