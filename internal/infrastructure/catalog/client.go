package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/vitrin/backend/internal/domain"
)

const (
	productsPath = "/products"
	sharedPath   = "/shared-products"
	maxAttempts  = 3
)

// ClientConfig holds configuration for the hosted catalog backend
type ClientConfig struct {
	BaseURL         string
	APIKey          string
	IncludeShared   bool // merge the cross-listed feed
	RequestsPerHour int
}

// Client fetches the product catalog from the hosted backend
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	includeShared bool
	rateLimiter   *rate.Limiter
	backoff       func(attempt int) time.Duration
	logger        zerolog.Logger
}

// NewClient creates a new catalog client
func NewClient(config ClientConfig, logger zerolog.Logger) *Client {
	perHour := config.RequestsPerHour
	if perHour <= 0 {
		perHour = 1000
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		apiKey:        config.APIKey,
		includeShared: config.IncludeShared,
		rateLimiter:   rate.NewLimiter(rate.Limit(float64(perHour)/3600), 10),
		backoff:       exponentialBackoff,
		logger:        logger.With().Str("component", "catalog_client").Logger(),
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// FetchProducts loads the main feed and, when enabled, appends the shared
// feed. The merged list may contain duplicate ids.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := c.fetchFeed(ctx, productsPath)
	if err != nil {
		return nil, err
	}

	if c.includeShared {
		shared, err := c.fetchFeed(ctx, sharedPath)
		if err != nil {
			return nil, err
		}
		products = append(products, shared...)
	}

	c.logger.Debug().Int("count", len(products)).Msg("catalog fetched")
	return products, nil
}

func (c *Client) fetchFeed(ctx context.Context, path string) ([]domain.Product, error) {
	reqURL := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
			}
			c.logger.Warn().Err(err).Int("attempt", attempt).Str("path", path).Msg("catalog request failed")
			lastErr = err
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		if status != http.StatusOK {
			lastErr = fmt.Errorf("%w: %s returned status %d", domain.ErrCatalogUnavailable, path, status)
			if !retryable(status) {
				return nil, lastErr
			}
			c.logger.Warn().Int("status", status).Int("attempt", attempt).Str("path", path).Msg("catalog request rejected")
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		var resp feedResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		products, skipped := MapRecords(resp.Products)
		if skipped > 0 {
			c.logger.Warn().Int("skipped", skipped).Str("path", path).Msg("feed records without usable id")
		}
		return products, nil
	}

	c.logger.Error().Err(lastErr).Str("path", path).Msg("all catalog retries failed")
	return nil, lastErr
}

// doRequest executes a GET request with the backend's auth headers
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Vitrin/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

// wait sleeps for the backoff of the given attempt unless ctx ends first
func (c *Client) wait(ctx context.Context, attempt int) error {
	if attempt == maxAttempts {
		return nil
	}
	timer := time.NewTimer(c.backoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// retryable reports whether a status is worth retrying
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
