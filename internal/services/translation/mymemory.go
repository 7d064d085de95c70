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

// MyMemoryProvider translates through the MyMemory public API. Free tier is
// rate limited per day, so it only serves as the second rung of the cascade.
type MyMemoryProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewMyMemoryProvider creates a MyMemory translation provider
func NewMyMemoryProvider(baseURL string, timeout time.Duration) *MyMemoryProvider {
	if baseURL == "" {
		baseURL = "https://api.mymemory.translated.net"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MyMemoryProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Name implements Provider
func (m *MyMemoryProvider) Name() string {
	return "mymemory"
}

type myMemoryResponse struct {
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
	ResponseData    struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Translate calls the public API. MyMemory requires concrete tags on both
// sides of the langpair, so "auto" is not accepted here.
func (m *MyMemoryProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == "" || sourceLang == "auto" {
		return "", fmt.Errorf("mymemory requires a concrete source language")
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", sourceLang+"|"+targetLang)

	endpoint := fmt.Sprintf("%s/get?%s", m.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var payload myMemoryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected mymemory response: %w", err)
	}

	// The API reports errors in-band with a 200 HTTP status
	if status, _ := payload.ResponseStatus.Int64(); status != 200 {
		return "", fmt.Errorf("mymemory error %d: %s", status, payload.ResponseDetails)
	}

	result := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if result == "" {
		return "", fmt.Errorf("mymemory returned an empty translation")
	}
	return result, nil
}
