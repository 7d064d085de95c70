package subtitles

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/eigotube/immersion-api/internal/services/captions"
	apperrors "github.com/eigotube/immersion-api/pkg/errors"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// Bundle is the full dual-language resolution result for one video. Absence
// of subtitles is data here, not an exception: the errors map carries
// per-language failure detail while the rest of the bundle stays usable.
type Bundle struct {
	VideoID               string                          `json:"videoId"`
	English               []subtitle.Cue                  `json:"english"`
	Japanese              []subtitle.Cue                  `json:"japanese"`
	AvailableLanguages    []captions.LanguageAvailability `json:"availableLanguages"`
	HasEnglishSubtitles   bool                            `json:"hasEnglishSubtitles"`
	HasJapaneseSubtitles  bool                            `json:"hasJapaneseSubtitles"`
	LoadingJapanese       bool                            `json:"loadingJapanese"`
	Errors                map[string]string               `json:"errors,omitempty"`
	SpeechToTextAvailable bool                            `json:"speechToTextAvailable"`
	Suggestions           []string                        `json:"suggestions,omitempty"`
}

// Service reconciles language discovery, transcript fetching, and the
// translation fallback into dual-language bundles.
type Service struct {
	prober     LanguageProber
	fetcher    TranscriptFetcher
	translator Translator
}

// NewService creates a subtitle resolution service
func NewService(prober LanguageProber, fetcher TranscriptFetcher, translator Translator) *Service {
	return &Service{
		prober:     prober,
		fetcher:    fetcher,
		translator: translator,
	}
}

// Resolve builds the dual-language bundle for a video. Only an unavailable
// video is a hard error; every other failure is folded into the bundle.
func (s *Service) Resolve(ctx context.Context, videoID string) (*Bundle, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, apperrors.MissingFieldError("videoId")
	}

	available, err := s.prober.DiscoverLanguages(ctx, videoID)
	if err != nil {
		if errors.Is(err, captions.ErrVideoUnavailable) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeVideoUnavailable, "video is unavailable")
		}
		return nil, err
	}

	bundle := &Bundle{
		VideoID:            videoID,
		AvailableLanguages: available,
		Errors:             make(map[string]string),
	}

	english, err := s.fetchMatching(ctx, videoID, "en", available)
	if err != nil {
		bundle.Errors["english"] = classify(err)
	}
	bundle.English = english
	bundle.HasEnglishSubtitles = len(english) > 0

	japanese, translated, err := s.resolveJapanese(ctx, videoID, available, english)
	if err != nil {
		bundle.Errors["japanese"] = classify(err)
	}
	bundle.Japanese = japanese
	bundle.HasJapaneseSubtitles = len(japanese) > 0
	if translated {
		bundle.Suggestions = append(bundle.Suggestions,
			"Japanese subtitles were machine translated from the English track")
	}

	if len(bundle.Errors) == 0 {
		bundle.Errors = nil
	}

	bundle.SpeechToTextAvailable = !bundle.HasEnglishSubtitles &&
		!bundle.HasJapaneseSubtitles && len(available) == 0
	if bundle.SpeechToTextAvailable {
		bundle.Suggestions = append(bundle.Suggestions,
			"No captions were found; speech recognition can transcribe the audio instead")
	}

	log.Printf("[subtitles] resolved %s: en=%d ja=%d langs=%d",
		videoID, len(bundle.English), len(bundle.Japanese), len(available))
	return bundle, nil
}

// ResolveLanguage fetches one language's cues. A Japanese request for a video
// without a native track falls back to translating the English track, so the
// caller always gets the best available rendition of the language it asked
// for.
func (s *Service) ResolveLanguage(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, apperrors.MissingFieldError("videoId")
	}
	if strings.TrimSpace(lang) == "" {
		return nil, apperrors.MissingFieldError("lang")
	}

	available, err := s.prober.DiscoverLanguages(ctx, videoID)
	if err != nil && !errors.Is(err, captions.ErrVideoUnavailable) {
		return nil, err
	}
	if errors.Is(err, captions.ErrVideoUnavailable) {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeVideoUnavailable, "video is unavailable")
	}

	cues, fetchErr := s.fetchMatching(ctx, videoID, lang, available)
	if fetchErr == nil && len(cues) > 0 {
		return cues, nil
	}

	if tagsMatch(lang, "ja") {
		english, err := s.fetchMatching(ctx, videoID, "en", available)
		if err == nil && len(english) > 0 {
			log.Printf("[subtitles] %s: no native %s track, translating english", videoID, lang)
			return s.translator.TranslateCues(ctx, english, "en", "ja")
		}
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	return cues, nil
}

// Invalidate drops cached artifacts for a video. With a language tag only
// that language's cue sequence is removed; the availability list stays since
// deleting one transcript does not change what the source carries. Without a
// tag every cached cue sequence and the availability list are cleared.
func (s *Service) Invalidate(ctx context.Context, videoID, lang string) error {
	if strings.TrimSpace(videoID) == "" {
		return apperrors.MissingFieldError("videoId")
	}
	if lang != "" {
		return s.fetcher.Invalidate(ctx, videoID, lang)
	}
	if err := s.fetcher.Invalidate(ctx, videoID, ""); err != nil {
		return err
	}
	return s.prober.Invalidate(ctx, videoID)
}

// resolveJapanese tries the native track first and falls back to translating
// the already-fetched English cues. The bool reports whether the result is a
// translation.
func (s *Service) resolveJapanese(ctx context.Context, videoID string, available []captions.LanguageAvailability, english []subtitle.Cue) ([]subtitle.Cue, bool, error) {
	if _, ok := matchAvailability("ja", available); ok {
		japanese, err := s.fetchMatching(ctx, videoID, "ja", available)
		if err == nil && len(japanese) > 0 {
			return japanese, false, nil
		}
		if err != nil && len(english) == 0 {
			return nil, false, err
		}
	}

	if len(english) == 0 {
		return nil, false, nil
	}

	japanese, err := s.translator.TranslateCues(ctx, english, "en", "ja")
	if err != nil {
		return nil, false, err
	}
	return japanese, true, nil
}

// fetchMatching fetches cues for the requested language, resolving the
// request tag against the discovered availability list first and against any
// availability hint in the fetch error second.
func (s *Service) fetchMatching(ctx context.Context, videoID, lang string, available []captions.LanguageAvailability) ([]subtitle.Cue, error) {
	tag := lang
	if concrete, ok := matchAvailability(lang, available); ok {
		tag = concrete
	}

	cues, err := s.fetcher.FetchTranscript(ctx, videoID, tag)
	if err == nil {
		return cues, nil
	}

	// A miss on the literal tag may still name a matching variant
	var nte *captions.NoTranscriptError
	if errors.As(err, &nte) {
		for _, hinted := range nte.Available {
			if hinted != tag && tagsMatch(lang, hinted) {
				return s.fetcher.FetchTranscript(ctx, videoID, hinted)
			}
		}
	}

	return nil, err
}

// matchAvailability finds the concrete availability tag for a requested
// language.
func matchAvailability(lang string, available []captions.LanguageAvailability) (string, bool) {
	for _, a := range available {
		if a.Language == lang {
			return a.Language, true
		}
	}
	for _, a := range available {
		if tagsMatch(lang, a.Language) {
			return a.Language, true
		}
	}
	return "", false
}

// tagsMatch reports whether two language tags refer to the same base
// language: en matches en-US and en-US matches en.
func tagsMatch(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	return strings.HasPrefix(a, b+"-") || strings.HasPrefix(b, a+"-")
}

// classify turns a resolution failure into a stable per-language error label
func classify(err error) string {
	switch {
	case captions.IsNoTranscript(err):
		return "NO_TRANSCRIPT"
	case errors.Is(err, captions.ErrVideoUnavailable):
		return "VIDEO_UNAVAILABLE"
	case errors.Is(err, captions.ErrMalformedPage):
		return "MALFORMED_RESPONSE"
	default:
		return string(apperrors.GetCode(err))
	}
}
