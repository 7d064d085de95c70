package captions

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVideoUnavailable indicates the video is private, deleted, or
// region-locked. Not retried.
var ErrVideoUnavailable = errors.New("video unavailable (private, deleted, or region restricted)")

// ErrMalformedPage indicates the caption source returned a page the scraper
// cannot interpret.
var ErrMalformedPage = errors.New("malformed caption source response")

// NoTranscriptError indicates the video has no transcript in the requested
// language. When the source lists the languages it does have, they are
// carried along so the prober can follow the hint.
type NoTranscriptError struct {
	VideoID   string
	Language  string
	Available []string
}

func (e *NoTranscriptError) Error() string {
	msg := fmt.Sprintf("no transcript available for video %s in language %s", e.VideoID, e.Language)
	if len(e.Available) > 0 {
		msg += ". Available languages: " + strings.Join(e.Available, ", ")
	}
	return msg
}

// IsNoTranscript reports whether err is a NoTranscriptError.
func IsNoTranscript(err error) bool {
	var nte *NoTranscriptError
	return errors.As(err, &nte)
}
