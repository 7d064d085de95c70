package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// WhisperConfig holds OpenAI Whisper API settings
type WhisperConfig struct {
	APIKey  string
	APIURL  string // Default: https://api.openai.com/v1/audio/transcriptions
	Model   string // Default: whisper-1
	Timeout time.Duration
}

// WhisperRecognizer transcribes through the OpenAI audio API. It is the
// primary rung of the cascade because it returns real segment timestamps.
type WhisperRecognizer struct {
	httpClient *http.Client
	config     WhisperConfig
}

// NewWhisperRecognizer creates a Whisper recognizer
func NewWhisperRecognizer(cfg WhisperConfig) *WhisperRecognizer {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.openai.com/v1/audio/transcriptions"
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &WhisperRecognizer{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Name implements Recognizer
func (w *WhisperRecognizer) Name() string {
	return "whisper"
}

// Configured implements Recognizer
func (w *WhisperRecognizer) Configured() bool {
	return w.config.APIKey != ""
}

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio and maps the verbose response's segments to
// cues. Responses without segments fall back to sentence-level timing.
func (w *WhisperRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileNameForMIME(mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	_ = writer.WriteField("model", w.config.Model)
	_ = writer.WriteField("response_format", "verbose_json")
	if language != "" && language != "auto" {
		_ = writer.WriteField("language", baseTag(language))
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.APIURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.config.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper returned status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var parsed whisperResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected whisper response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return nil, fmt.Errorf("whisper returned an empty transcript")
	}

	var cues []subtitle.Cue
	for _, seg := range parsed.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" || seg.End <= seg.Start {
			continue
		}
		cues = append(cues, subtitle.Cue{Start: seg.Start, End: seg.End, Text: text})
	}
	if len(cues) == 0 {
		cues = cuesFromSentences(parsed.Text)
	}

	return &Result{
		Cues:     cues,
		Text:     strings.TrimSpace(parsed.Text),
		Provider: w.Name(),
		Language: parsed.Language,
	}, nil
}

func fileNameForMIME(mimeType string) string {
	switch mimeType {
	case "audio/wav":
		return "audio.wav"
	case "audio/ogg":
		return "audio.ogg"
	case "audio/webm":
		return "audio.webm"
	default:
		return "audio.mp3"
	}
}

// baseTag strips a regional suffix: en-US becomes en
func baseTag(tag string) string {
	if idx := strings.IndexByte(tag, '-'); idx > 0 {
		return tag[:idx]
	}
	return tag
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
