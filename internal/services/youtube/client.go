package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited indicates the API quota was exceeded
	ErrRateLimited = errors.New("youtube api quota exceeded")

	// ErrNoResults indicates the search matched nothing
	ErrNoResults = errors.New("no results found")

	// ErrNotConfigured indicates no API key is set
	ErrNotConfigured = errors.New("youtube api key is not configured")
)

// Config holds configuration for the Data API client
type Config struct {
	APIKey string

	// Rate limiting. The Data API bills quota units per request rather than
	// requests per minute; this limiter just smooths bursts.
	RequestsPerMinute int // Default: 100
	BurstSize         int // Default: 5

	Timeout      time.Duration // Default: 30s
	MaxRetries   int           // Default: 3
	RetryBackoff time.Duration // Default: 1s

	MaxResults int // Default page size: 12

	// Base URL (for testing)
	BaseURL string // Default: https://www.googleapis.com/youtube/v3
}

// Client handles communication with the YouTube Data API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config

	// Metrics
	metrics *clientMetrics
}

// clientMetrics tracks client usage statistics
type clientMetrics struct {
	requests  atomic.Int64
	quotaHits atomic.Int64
	errors    atomic.Int64
}

// NewClient creates a new Data API client
func NewClient(cfg Config) *Client {
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 100
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 12
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		config:      cfg,
		metrics:     &clientMetrics{},
	}
}

// Configured reports whether the client holds an API key
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// SearchVideos searches the catalog for videos matching the term
func (c *Client) SearchVideos(ctx context.Context, term string, opts *SearchOptions) (*SearchResults, error) {
	if term == "" {
		return nil, errors.New("search term cannot be empty")
	}

	params := c.baseParams(term, "video")
	if opts != nil {
		if opts.MaxResults > 0 {
			params.Set("maxResults", fmt.Sprintf("%d", capResults(opts.MaxResults)))
		}
		if opts.PageToken != "" {
			params.Set("pageToken", opts.PageToken)
		}
		if opts.Order != "" {
			params.Set("order", opts.Order)
		}
		if opts.ChannelID != "" {
			params.Set("channelId", opts.ChannelID)
		}
	}

	resp, err := c.doRequestWithRetry(ctx, fmt.Sprintf("%s/search?%s", c.config.BaseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	results := &SearchResults{
		Query:         term,
		Videos:        make([]Video, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
		TotalResults:  resp.PageInfo.TotalResults,
	}
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results.Videos = append(results.Videos, Video{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			Thumbnail:    item.thumbnail(),
		})
	}

	if len(results.Videos) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

// SearchChannels searches the catalog for channels matching the term
func (c *Client) SearchChannels(ctx context.Context, term string, maxResults int) (*ChannelResults, error) {
	if term == "" {
		return nil, errors.New("search term cannot be empty")
	}

	params := c.baseParams(term, "channel")
	if maxResults > 0 {
		params.Set("maxResults", fmt.Sprintf("%d", capResults(maxResults)))
	}

	resp, err := c.doRequestWithRetry(ctx, fmt.Sprintf("%s/search?%s", c.config.BaseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("search channels: %w", err)
	}

	results := &ChannelResults{
		Query:    term,
		Channels: make([]Channel, 0, len(resp.Items)),
	}
	for _, item := range resp.Items {
		if item.ID.ChannelID == "" {
			continue
		}
		results.Channels = append(results.Channels, Channel{
			ChannelID:   item.ID.ChannelID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   item.thumbnail(),
		})
	}

	if len(results.Channels) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func (c *Client) baseParams(term, kind string) url.Values {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", term)
	params.Set("type", kind)
	params.Set("maxResults", fmt.Sprintf("%d", c.config.MaxResults))
	params.Set("key", c.config.APIKey)
	return params
}

func capResults(n int) int {
	if n > 50 {
		return 50
	}
	return n
}

// doRequestWithRetry performs an HTTP request with retry logic
func (c *Client) doRequestWithRetry(ctx context.Context, requestURL string) (*searchResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		resp, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return resp, nil
		}

		if errors.Is(err, ErrRateLimited) || isTemporaryError(err) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				lastErr = err
				continue
			}
		}

		return nil, err
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, requestURL string) (*searchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	c.metrics.requests.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	// The Data API reports quota exhaustion as 403 as well as 429
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden {
		c.metrics.quotaHits.Add(1)
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests":   c.metrics.requests.Load(),
		"quota_hits": c.metrics.quotaHits.Load(),
		"errors":     c.metrics.errors.Load(),
	}
}

// isTemporaryError checks if an error is temporary and should be retried
func isTemporaryError(err error) bool {
	if netErr, ok := err.(interface{ Temporary() bool }); ok {
		return netErr.Temporary()
	}
	if netErr, ok := err.(interface{ Timeout() bool }); ok {
		return netErr.Timeout()
	}
	return false
}
