package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleProvider translates through the unauthenticated web endpoint. It is
// the highest-quality free source but has no SLA, so it sits behind the
// cascade's fallback chain rather than being trusted alone.
type GoogleProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a Google web translation provider
func NewGoogleProvider(baseURL string, timeout time.Duration) *GoogleProvider {
	if baseURL == "" {
		baseURL = "https://translate.googleapis.com"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Name implements Provider
func (g *GoogleProvider) Name() string {
	return "google"
}

// Translate calls the web endpoint and reassembles the segmented response.
// The endpoint splits long inputs into sentence segments; the full
// translation is the concatenation of the first element of each segment.
func (g *GoogleProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == "" {
		sourceLang = "auto"
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sourceLang)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	endpoint := fmt.Sprintf("%s/translate_a/single?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse walks the endpoint's nested-array payload:
// [[["translated","original",...],...],...]
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return "", fmt.Errorf("unexpected google translate response shape")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected google translate segment shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("google translate returned an empty translation")
	}
	return result, nil
}
