package speech

import (
	"context"
	"fmt"

	apperrors "github.com/eigotube/immersion-api/pkg/errors"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// MaxAudioBytes is the largest accepted upload, matching the strictest
// provider limit (Whisper's 25MB).
const MaxAudioBytes = 25 * 1024 * 1024

// Result is one successful recognition: timed cues plus the flat transcript
// and which provider produced it.
type Result struct {
	Cues     []subtitle.Cue `json:"cues"`
	Text     string         `json:"text"`
	Provider string         `json:"provider"`
	Language string         `json:"language"`
}

// Recognizer converts raw audio into timed cues. Configured reports whether
// the provider has credentials; unconfigured recognizers are skipped by the
// cascade instead of burning a network round trip.
type Recognizer interface {
	Name() string
	Configured() bool
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Result, error)
}

var allowedMIMETypes = map[string]bool{
	"audio/wav":  true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/webm": true,
}

// ValidateAudio checks an upload before any provider sees it
func ValidateAudio(audio []byte, mimeType string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxAudioBytes
	}
	if len(audio) == 0 {
		return apperrors.MissingFieldError("audio")
	}
	if int64(len(audio)) > maxSize {
		return apperrors.ValidationError("audio", fmt.Sprintf("file exceeds %d bytes", maxSize)).
			WithDetail("size", len(audio))
	}
	if !allowedMIMETypes[mimeType] {
		return apperrors.ValidationError("mimeType", fmt.Sprintf("unsupported type %q", mimeType)).
			WithDetail("supported", SupportedFormats())
	}
	return nil
}

// SupportedFormats lists the accepted upload MIME types
func SupportedFormats() []string {
	return []string{"audio/wav", "audio/mp3", "audio/mpeg", "audio/ogg", "audio/webm"}
}
