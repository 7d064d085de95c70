package captions

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/eigotube/immersion-api/internal/services/cache"
	apperrors "github.com/eigotube/immersion-api/pkg/errors"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// Fetcher retrieves cleaned, second-normalized cue sequences for a
// (video, language) pair, with caching and a hard per-fetch deadline.
type Fetcher struct {
	source TranscriptSource
	cache  cache.Cache
	ttl    time.Duration
	// Hard ceiling on one transcript fetch. The source has been observed to
	// hang for minutes on throttled videos.
	timeout time.Duration
}

// NewFetcher creates a transcript fetcher
func NewFetcher(source TranscriptSource, c cache.Cache, ttl, timeout time.Duration) *Fetcher {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Fetcher{
		source:  source,
		cache:   c,
		ttl:     ttl,
		timeout: timeout,
	}
}

// CacheKey builds the cache key for a (video, language) pair.
func CacheKey(videoID, lang string) string {
	return videoID + "-" + lang
}

// FetchTranscript returns the cue sequence for the literal language tag.
// Successful non-empty results are cached for the configured TTL. The
// returned error is typed: NoTranscriptError, ErrVideoUnavailable, or an
// AppError for timeouts.
func (f *Fetcher) FetchTranscript(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
	key := CacheKey(videoID, lang)

	if payload, found := f.cache.Get(ctx, key); found {
		var cues []subtitle.Cue
		if err := json.Unmarshal(payload, &cues); err == nil {
			log.Printf("[captions] cache hit for %s (%d cues)", key, len(cues))
			return cues, nil
		}
		// Unreadable payloads fall through to a fresh fetch
		_ = f.cache.Delete(ctx, key)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := f.source.FetchTranscript(fetchCtx, videoID, lang)
	if err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.TimeoutError("transcript fetch", f.timeout.String()).WithCause(err)
		}
		return nil, err
	}

	cues := make([]subtitle.Cue, 0, len(raw))
	for _, r := range raw {
		if cue, ok := subtitle.NewCue(r.OffsetMs, r.DurationMs, r.Text); ok {
			cues = append(cues, cue)
		}
	}

	if len(cues) > 0 {
		if payload, err := json.Marshal(cues); err == nil {
			_ = f.cache.Set(ctx, key, payload, f.ttl)
		}
	}

	log.Printf("[captions] fetched %d cues for %s", len(cues), key)
	return cues, nil
}

// Invalidate removes cached cues for one language, or for every language of
// the video when lang is empty.
func (f *Fetcher) Invalidate(ctx context.Context, videoID, lang string) error {
	if lang != "" {
		return f.cache.Delete(ctx, CacheKey(videoID, lang))
	}
	return f.cache.DeletePrefix(ctx, videoID+"-")
}
