package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"gamelib/internal/app/client/config"
	"gamelib/internal/domain/catalog"
)

const maxErrorBody = 512

// StatusError is returned when the catalog answers with a non-success status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("catalog returned status %d", e.Code)
}

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// CatalogClient talks to a RAWG-compatible catalog API. It implements
// catalog.Searcher and also fetches single entries with Get.
type CatalogClient struct {
	client          *http.Client
	log             *slog.Logger
	baseURL         string
	apiKey          string
	pageSize        int
	popularOrdering string
	limiter         *rate.Limiter
	maxRetries      int
	retryDelay      time.Duration
	userAgent       string
}

var _ catalog.Searcher = (*CatalogClient)(nil)

func NewCatalogClient(cfg *config.Config, log *slog.Logger) (*CatalogClient, error) {
	base, err := url.Parse(cfg.CatalogBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q", cfg.CatalogBaseURL)
	}

	client := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &CatalogClient{
		client:          client,
		log:             log.With("component", "catalog_client"),
		baseURL:         strings.TrimRight(base.String(), "/"),
		apiKey:          cfg.APIKey,
		pageSize:        cfg.PageSize,
		popularOrdering: cfg.PopularOrdering,
		limiter:         limiter,
		maxRetries:      cfg.MaxRetries,
		retryDelay:      cfg.RetryDelay,
		userAgent:       "gamelib-client/1.0",
	}, nil
}

// Search returns the first page of games whose name matches query.
func (c *CatalogClient) Search(ctx context.Context, query string) (*catalog.Page, error) {
	params := url.Values{}
	params.Set("search", query)
	return c.fetchPage(ctx, params)
}

// Popular returns the first page of the catalog in popularity order.
func (c *CatalogClient) Popular(ctx context.Context) (*catalog.Page, error) {
	params := url.Values{}
	if c.popularOrdering != "" {
		params.Set("ordering", c.popularOrdering)
	}
	return c.fetchPage(ctx, params)
}

// Get returns the full entry of one game, including its description.
func (c *CatalogClient) Get(ctx context.Context, id int64) (*catalog.Summary, error) {
	var wire catalog.WireGame
	if err := c.get(ctx, "/games/"+strconv.FormatInt(id, 10), url.Values{}, &wire); err != nil {
		return nil, err
	}
	s := wire.Summary()
	return &s, nil
}

func (c *CatalogClient) fetchPage(ctx context.Context, params url.Values) (*catalog.Page, error) {
	if c.pageSize > 0 {
		params.Set("page_size", strconv.Itoa(c.pageSize))
	}

	var wire catalog.WirePage
	if err := c.get(ctx, "/games", params, &wire); err != nil {
		return nil, err
	}
	return wire.Page(), nil
}

// get performs a GET with rate limiting and, when configured, retries on
// network errors and retryable statuses.
func (c *CatalogClient) get(ctx context.Context, path string, params url.Values, result any) error {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug("retrying catalog request", "path", path, "attempt", attempt, "error", lastErr)
			if err := sleep(ctx, c.retryDelay); err != nil {
				return lastErr
			}
		}

		lastErr = c.do(ctx, endpoint, result)
		if lastErr == nil || !retryable(ctx, lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *CatalogClient) do(ctx context.Context, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("sending catalog request", "path", req.URL.Path, "query", req.URL.Query().Get("search"))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}

// errorMessage extracts a readable message from an error response body.
func errorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Error != "":
			return payload.Error
		case payload.Title != "":
			return payload.Title
		}
	}
	return strings.TrimSpace(string(body))
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.retryable()
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
