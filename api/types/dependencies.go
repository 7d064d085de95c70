package types

import (
	"context"

	"github.com/eigotube/immersion-api/internal/database"
	"github.com/eigotube/immersion-api/internal/services/captions"
	"github.com/eigotube/immersion-api/internal/services/library"
	"github.com/eigotube/immersion-api/internal/services/speech"
	"github.com/eigotube/immersion-api/internal/services/subtitles"
	"github.com/eigotube/immersion-api/internal/services/youtube"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// SubtitleResolver reconciles multi-source subtitles into bundles
type SubtitleResolver interface {
	Resolve(ctx context.Context, videoID string) (*subtitles.Bundle, error)
	ResolveLanguage(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error)
	Invalidate(ctx context.Context, videoID, lang string) error
}

// LanguageProber exposes raw availability discovery for debugging
type LanguageProber interface {
	DiscoverLanguages(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error)
}

// Translator runs text and cue sequences through the translation cascade
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, string, error)
	TranslateCues(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]subtitle.Cue, error)
}

// Transcriber converts uploaded audio into timed cues
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*speech.Result, error)
	Providers() []speech.ProviderStatus
	Available() bool
}

// CatalogSearcher searches the video catalog
type CatalogSearcher interface {
	SearchVideos(ctx context.Context, term string, opts *youtube.SearchOptions) (*youtube.SearchResults, error)
	SearchChannels(ctx context.Context, term string, maxResults int) (*youtube.ChannelResults, error)
	Configured() bool
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	SubtitleService SubtitleResolver
	Prober          LanguageProber
	Translator      Translator
	Transcriber     Transcriber
	Search          CatalogSearcher
	Library         library.VideoService
}
