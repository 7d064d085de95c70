package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GoogleSpeechConfig holds Google Cloud Speech-to-Text settings
type GoogleSpeechConfig struct {
	APIKey  string
	APIURL  string // Default: https://speech.googleapis.com/v1/speech:recognize
	Timeout time.Duration
}

// GoogleSpeechRecognizer is the second rung of the cascade. The synchronous
// recognize endpoint returns utterances without timestamps, so timing is
// estimated from word counts.
type GoogleSpeechRecognizer struct {
	httpClient *http.Client
	config     GoogleSpeechConfig
}

// NewGoogleSpeechRecognizer creates a Google Speech recognizer
func NewGoogleSpeechRecognizer(cfg GoogleSpeechConfig) *GoogleSpeechRecognizer {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://speech.googleapis.com/v1/speech:recognize"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &GoogleSpeechRecognizer{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Name implements Recognizer
func (g *GoogleSpeechRecognizer) Name() string {
	return "google-speech"
}

// Configured implements Recognizer
func (g *GoogleSpeechRecognizer) Configured() bool {
	return g.config.APIKey != ""
}

type googleSpeechRequest struct {
	Config struct {
		Encoding     string `json:"encoding,omitempty"`
		LanguageCode string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type googleSpeechResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe posts base64 audio to the recognize endpoint and estimates cue
// timing from the returned utterances.
func (g *GoogleSpeechRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Result, error) {
	var reqBody googleSpeechRequest
	reqBody.Config.Encoding = encodingForMIME(mimeType)
	reqBody.Config.LanguageCode = languageCodeOrDefault(language)
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s?key=%s", g.config.APIURL, g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google speech request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google speech returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed googleSpeechResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected google speech response: %w", err)
	}

	var utterances []string
	for _, result := range parsed.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if transcript := strings.TrimSpace(result.Alternatives[0].Transcript); transcript != "" {
			utterances = append(utterances, transcript)
		}
	}
	if len(utterances) == 0 {
		return nil, fmt.Errorf("google speech returned no transcript")
	}

	cues := cuesFromUtterances(utterances)
	return &Result{
		Cues:     cues,
		Text:     joinCueText(cues),
		Provider: g.Name(),
		Language: reqBody.Config.LanguageCode,
	}, nil
}

func encodingForMIME(mimeType string) string {
	switch mimeType {
	case "audio/wav":
		return "LINEAR16"
	case "audio/ogg":
		return "OGG_OPUS"
	case "audio/webm":
		return "WEBM_OPUS"
	default:
		// mp3 and mpeg; the API also sniffs the container when omitted
		return "MP3"
	}
}

func languageCodeOrDefault(language string) string {
	if language == "" || language == "auto" {
		return "en-US"
	}
	if !strings.Contains(language, "-") {
		switch language {
		case "en":
			return "en-US"
		case "ja":
			return "ja-JP"
		}
	}
	return language
}
