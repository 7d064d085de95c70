package captions

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"time"

	"github.com/eigotube/immersion-api/internal/services/cache"
)

// probeLanguages is the priority list of tags tried during discovery: major
// languages first, then their common regional variants.
var probeLanguages = []string{
	"en", "en-US", "en-GB", "en-CA", "en-AU",
	"ja", "ja-JP",
	"ko", "ko-KR",
	"zh", "zh-CN", "zh-TW", "zh-HK",
	"es", "es-ES", "es-MX",
	"fr", "fr-FR", "fr-CA",
	"de", "de-DE",
	"it", "it-IT",
	"pt", "pt-BR", "pt-PT",
	"ru", "ru-RU",
	"ar", "hi", "th", "vi",
}

// availableLanguagesHint matches the language list some transcript sources
// embed in their failure messages.
var availableLanguagesHint = regexp.MustCompile(`Available languages: (.+)`)

var hintSeparator = regexp.MustCompile(`[,\s]+`)

// Prober discovers which caption languages exist for a video by
// speculatively fetching transcripts from a prioritized tag list.
type Prober struct {
	source TranscriptSource
	cache  cache.Cache
	ttl    time.Duration
	// Probing stops once this many languages are confirmed. Bounds cost, not
	// correctness: discovery is allowed to be incomplete.
	maxConfirmed int
}

// NewProber creates a language prober
func NewProber(source TranscriptSource, c cache.Cache, ttl time.Duration, maxConfirmed int) *Prober {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxConfirmed <= 0 {
		maxConfirmed = 3
	}
	return &Prober{
		source:       source,
		cache:        c,
		ttl:          ttl,
		maxConfirmed: maxConfirmed,
	}
}

// languageCacheKey builds the cache key for a video's availability list.
func languageCacheKey(videoID string) string {
	return "lang-" + videoID
}

// DiscoverLanguages probes the candidate tag list and returns every confirmed
// language. Individual probe failures are swallowed; an empty result with a
// nil error means no captions could be confirmed. ErrVideoUnavailable is
// returned only when every probe reported the video itself as unavailable.
func (p *Prober) DiscoverLanguages(ctx context.Context, videoID string) ([]LanguageAvailability, error) {
	key := languageCacheKey(videoID)

	if payload, found := p.cache.Get(ctx, key); found {
		var langs []LanguageAvailability
		if err := json.Unmarshal(payload, &langs); err == nil {
			log.Printf("[captions] cached availability for %s: %d languages", videoID, len(langs))
			return langs, nil
		}
		_ = p.cache.Delete(ctx, key)
	}

	var confirmed []LanguageAvailability
	tried := make(map[string]bool)
	unavailable := false

	for _, lang := range probeLanguages {
		if len(confirmed) >= p.maxConfirmed {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		confirmed = p.probe(ctx, videoID, lang, tried, confirmed, &unavailable)
	}

	if len(confirmed) == 0 && unavailable {
		return nil, ErrVideoUnavailable
	}

	if payload, err := json.Marshal(confirmed); err == nil {
		_ = p.cache.Set(ctx, key, payload, p.ttl)
	}

	log.Printf("[captions] discovered %d languages for %s", len(confirmed), videoID)
	return confirmed, nil
}

// probe attempts one tag and follows any availability hint in the failure
// message, returning the updated confirmed list.
func (p *Prober) probe(ctx context.Context, videoID, lang string, tried map[string]bool, confirmed []LanguageAvailability, unavailable *bool) []LanguageAvailability {
	if tried[lang] {
		return confirmed
	}
	tried[lang] = true

	raw, err := p.source.FetchTranscript(ctx, videoID, lang)
	if err == nil && len(raw) > 0 {
		return append(confirmed, LanguageAvailability{
			Language:     lang,
			LanguageName: lang,
			// Fetch-based probing cannot distinguish manual tracks, so
			// everything is reported as generated
			AutoGenerated: true,
			Translatable:  true,
		})
	}
	if err == nil {
		return confirmed
	}

	if errors.Is(err, ErrVideoUnavailable) {
		*unavailable = true
		return confirmed
	}

	log.Printf("[captions] probe %s/%s failed: %v", videoID, lang, err)

	for _, hinted := range hintedLanguages(err) {
		if len(confirmed) >= p.maxConfirmed {
			break
		}
		if tried[hinted] {
			continue
		}
		confirmed = p.probe(ctx, videoID, hinted, tried, confirmed, unavailable)
	}

	return confirmed
}

// hintedLanguages extracts candidate tags from a probe failure: the typed
// error's list when present, otherwise the message-embedded hint used by
// foreign transcript sources.
func hintedLanguages(err error) []string {
	var nte *NoTranscriptError
	if errors.As(err, &nte) && len(nte.Available) > 0 {
		return nte.Available
	}

	match := availableLanguagesHint.FindStringSubmatch(err.Error())
	if match == nil {
		return nil
	}

	var hints []string
	for _, tag := range hintSeparator.Split(match[1], -1) {
		if tag != "" {
			hints = append(hints, tag)
		}
	}
	return hints
}

// Invalidate drops the cached availability list for a video.
func (p *Prober) Invalidate(ctx context.Context, videoID string) error {
	return p.cache.Delete(ctx, languageCacheKey(videoID))
}
