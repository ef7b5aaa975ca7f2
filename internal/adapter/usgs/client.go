package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Client fetches the USGS earthquake summary feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a feed client. requestsPerSecond caps outbound fetches
// so a burst of page loads does not hammer the upstream feed.
func NewClient(feedURL string, timeout time.Duration, requestsPerSecond float64, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// URL returns the feed URL this client fetches.
func (c *Client) URL() string { return c.feedURL }

// Fetch issues a single GET against the feed and decodes its features.
// Every failure is reported as a *domain.FeedError; there is no retry.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawFeature, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.feedError(domain.FeedErrorNetwork, 0, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, c.feedError(domain.FeedErrorNetwork, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	req.Header.Set("User-Agent", "quake-map-service/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.feedError(domain.FeedErrorNetwork, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, c.feedError(domain.FeedErrorStatus, resp.StatusCode, fmt.Errorf("%s", body))
	}

	features, err := Decode(resp.Body)
	if err != nil {
		return nil, c.feedError(domain.FeedErrorPayload, resp.StatusCode, err)
	}

	c.logger.Debug("feed fetched", "url", c.feedURL, "features", len(features))
	return features, nil
}

func (c *Client) feedError(kind domain.FeedErrorKind, status int, err error) error {
	return &domain.FeedError{Kind: kind, URL: c.feedURL, StatusCode: status, Err: err}
}
