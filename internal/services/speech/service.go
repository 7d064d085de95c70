package speech

import (
	"context"
	"errors"
	"log"

	apperrors "github.com/eigotube/immersion-api/pkg/errors"
)

// ProviderStatus describes one recognizer for capability listings
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// Service runs audio through an ordered recognizer cascade, skipping
// unconfigured providers.
type Service struct {
	recognizers []Recognizer
	maxFileSize int64
}

// NewService creates a speech recognition service
func NewService(recognizers []Recognizer, maxFileSize int64) *Service {
	if maxFileSize <= 0 {
		maxFileSize = MaxAudioBytes
	}
	return &Service{
		recognizers: recognizers,
		maxFileSize: maxFileSize,
	}
}

// Providers reports the cascade order and which rungs hold credentials
func (s *Service) Providers() []ProviderStatus {
	statuses := make([]ProviderStatus, 0, len(s.recognizers))
	for _, r := range s.recognizers {
		statuses = append(statuses, ProviderStatus{Name: r.Name(), Configured: r.Configured()})
	}
	return statuses
}

// Available reports whether at least one recognizer holds credentials
func (s *Service) Available() bool {
	for _, r := range s.recognizers {
		if r.Configured() {
			return true
		}
	}
	return false
}

// Transcribe validates the upload and tries each configured recognizer in
// order. The error for a fully failed cascade carries a suggestion the
// caller can surface: the browser's built-in recognition still works when
// every server-side provider is down or unconfigured.
func (s *Service) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Result, error) {
	if err := ValidateAudio(audio, mimeType, s.maxFileSize); err != nil {
		return nil, err
	}

	var lastErr error
	attempted := 0
	for _, recognizer := range s.recognizers {
		if !recognizer.Configured() {
			log.Printf("[speech] skipping %s: not configured", recognizer.Name())
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempted++

		result, err := recognizer.Transcribe(ctx, audio, mimeType, language)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Printf("[speech] %s timed out", recognizer.Name())
			} else {
				log.Printf("[speech] %s failed: %v", recognizer.Name(), err)
			}
			lastErr = err
			continue
		}

		log.Printf("[speech] %s transcribed %d cues", recognizer.Name(), len(result.Cues))
		return result, nil
	}

	if attempted == 0 {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "no speech recognition provider is configured").
			WithDetail("suggestion", "use the browser's interactive speech recognition instead")
	}
	return nil, apperrors.ExternalServiceError("speech recognition", lastErr).
		WithDetail("suggestion", "use the browser's interactive speech recognition instead")
}
