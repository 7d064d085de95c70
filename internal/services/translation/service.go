package translation

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/eigotube/immersion-api/pkg/errors"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// Options configures the translation cascade
type Options struct {
	BatchSize     int           // Cues translated concurrently per batch. Default: 5
	BatchDelay    time.Duration // Pause between batches. Default: 500ms
	MaxTextLength int           // Longest accepted input. Default: 5000
}

// Service runs text through an ordered provider cascade. A provider's answer
// wins only when it is non-empty and differs from the input; anything else
// falls through to the next provider.
type Service struct {
	providers []Provider
	opts      Options
	// sleep is swapped out by tests to observe inter-batch pacing
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService creates a translation service over the given provider order
func NewService(providers []Provider, opts Options) *Service {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = 500 * time.Millisecond
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = 5000
	}
	return &Service{
		providers: providers,
		opts:      opts,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Translate runs one text through the cascade and returns the first winning
// translation together with the provider that produced it.
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", "", apperrors.MissingFieldError("text")
	}
	if len(trimmed) > s.opts.MaxTextLength {
		return "", "", apperrors.ValidationError("text", "exceeds maximum length")
	}
	if targetLang == "" {
		return "", "", apperrors.MissingFieldError("targetLang")
	}

	concrete := s.resolveSource(trimmed, sourceLang)

	var lastErr error
	for _, provider := range s.providers {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		source := sourceLang
		if provider.Name() == "mymemory" {
			source = concrete
		}

		result, err := provider.Translate(ctx, trimmed, source, targetLang)
		if err != nil {
			log.Printf("[translation] %s failed: %v", provider.Name(), err)
			lastErr = err
			continue
		}
		if !isWinning(trimmed, result) {
			log.Printf("[translation] %s returned input unchanged, falling through", provider.Name())
			continue
		}
		return result, provider.Name(), nil
	}

	return "", "", apperrors.ExternalServiceError("translation", lastErr)
}

// isWinning reports whether a provider answer counts as a translation
func isWinning(input, output string) bool {
	out := strings.TrimSpace(output)
	return out != "" && !strings.EqualFold(out, strings.TrimSpace(input))
}

// resolveSource turns "auto" into a concrete tag for providers that cannot
// detect the source themselves.
func (s *Service) resolveSource(text, sourceLang string) string {
	if sourceLang != "" && sourceLang != "auto" {
		return sourceLang
	}
	if iso := whatlanggo.DetectLang(text).Iso6391(); iso != "" {
		return iso
	}
	return "en"
}

// TranslateCues translates a cue sequence in fixed-size batches: cues inside
// a batch run concurrently, batches are paced apart to stay under provider
// rate limits. A cue whose translation fails keeps its original text so one
// bad cue never sinks the sequence.
func (s *Service) TranslateCues(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]subtitle.Cue, error) {
	if len(cues) == 0 {
		return nil, nil
	}

	translated := make([]subtitle.Cue, len(cues))
	copy(translated, cues)

	for start := 0; start < len(cues); start += s.opts.BatchSize {
		if start > 0 {
			if err := s.sleep(ctx, s.opts.BatchDelay); err != nil {
				return nil, err
			}
		}

		end := start + s.opts.BatchSize
		if end > len(cues) {
			end = len(cues)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				result, _, err := s.Translate(gctx, cues[i].Text, sourceLang, targetLang)
				if err != nil {
					log.Printf("[translation] cue %d failed, keeping original text: %v", i, err)
					return nil
				}
				translated[i].Text = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return translated, nil
}
