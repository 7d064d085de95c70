package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds configuration for the caption scraping client
type Config struct {
	BaseURL   string        // Default: https://www.youtube.com
	Timeout   time.Duration // Per-request HTTP timeout. Default: 30s
	UserAgent string
	MaxSize   int64 // Maximum response size in bytes
}

// Client scrapes caption tracks from the video watch page. It requests the
// literal language tag only; availability reconciliation happens above it.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new caption scraping client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.youtube.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 10 * 1024 * 1024
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        5,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		config: cfg,
	}
}

// captionTrack mirrors the track metadata embedded in the watch page
type captionTrack struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
}

// timedText mirrors the transcript XML served by the caption endpoint
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Lines   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript retrieves the raw transcript for the literal language tag.
// Timing is returned in source-native milliseconds.
func (c *Client) FetchTranscript(ctx context.Context, videoID, lang string) ([]RawCue, error) {
	tracks, err := c.listCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	var match *captionTrack
	available := make([]string, 0, len(tracks))
	for i := range tracks {
		available = append(available, tracks[i].LanguageCode)
		if tracks[i].LanguageCode == lang {
			match = &tracks[i]
		}
	}

	if match == nil {
		return nil, &NoTranscriptError{VideoID: videoID, Language: lang, Available: available}
	}

	return c.fetchTrack(ctx, videoID, lang, match.BaseURL)
}

// listCaptionTracks scrapes the watch page for the embedded caption track list
func (c *Client) listCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pageURL := fmt.Sprintf("%s/watch?v=%s", c.config.BaseURL, videoID)
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if strings.Contains(body, `"status":"ERROR"`) || strings.Contains(body, "Video unavailable") {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrVideoUnavailable)
	}

	raw, ok := extractJSONArray(body, `"captionTracks":`)
	if !ok {
		// A playable page without a track list simply has no captions
		if strings.Contains(body, `"playabilityStatus"`) || strings.Contains(body, "ytInitialPlayerResponse") {
			return nil, &NoTranscriptError{VideoID: videoID}
		}
		return nil, fmt.Errorf("video %s: %w", videoID, ErrMalformedPage)
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("video %s: parsing caption tracks: %w", videoID, ErrMalformedPage)
	}
	if len(tracks) == 0 {
		return nil, &NoTranscriptError{VideoID: videoID}
	}

	return tracks, nil
}

// fetchTrack downloads and parses one timedtext track
func (c *Client) fetchTrack(ctx context.Context, videoID, lang, trackURL string) ([]RawCue, error) {
	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, err
	}

	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("video %s (%s): parsing transcript: %w", videoID, lang, ErrMalformedPage)
	}

	cues := make([]RawCue, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		cues = append(cues, RawCue{
			OffsetMs:   line.Start * 1000,
			DurationMs: line.Dur * 1000,
			Text:       line.Text,
		})
	}

	if len(cues) == 0 {
		return nil, &NoTranscriptError{VideoID: videoID, Language: lang}
	}

	return cues, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption source returned status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, c.config.MaxSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}

// extractJSONArray pulls the bracket-balanced JSON array following marker out
// of the page source.
func extractJSONArray(body, marker string) (string, bool) {
	idx := strings.Index(body, marker)
	if idx < 0 {
		return "", false
	}

	start := idx + len(marker)
	if start >= len(body) || body[start] != '[' {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(body); i++ {
		ch := body[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return body[start : i+1], true
				}
			}
		}
	}

	return "", false
}
