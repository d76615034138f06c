// Package upstream is the HTTP client for the backend commerce API. It owns
// everything the normalization core treats as external: transport, retries,
// rate limiting, auth tokens, and envelope decoding.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nairamart/catalog-service/internal/types"
	"github.com/nairamart/catalog-service/internal/upstream/ratelimit"
)

// APIError is a backend failure surfaced with a display-ready message
// derived from the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// statusMessage maps an HTTP status to the message screens show.
func statusMessage(status int, serverMsg string) string {
	if serverMsg != "" {
		return serverMsg
	}
	switch {
	case status == http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case status == http.StatusForbidden:
		return "You do not have permission to do that."
	case status == http.StatusNotFound:
		return "The requested item could not be found."
	case status == http.StatusTooManyRequests:
		return "Too many requests. Please slow down."
	case status >= 500:
		return "Something went wrong on our end. Please try again later."
	default:
		return "Request failed."
	}
}

// envelope is the backend's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the commerce API. Construct one at process start and pass
// it by reference; there is no package-level instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	cfg        ratelimit.Config
	tokens     *TokenSource
	logger     zerolog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit *ratelimit.PartialConfig
	Tokens    *TokenSource
	Logger    zerolog.Logger
}

// New creates a commerce API client.
func New(opts Options) *Client {
	cfg := ratelimit.DefaultConfig()
	if opts.RateLimit != nil {
		cfg = ratelimit.WithOverrides(*opts.RateLimit)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    ratelimit.NewLimiter(cfg),
		cfg:        cfg,
		tokens:     opts.Tokens,
		logger:     opts.Logger,
	}
}

// ListProducts fetches raw catalog records matching the query.
func (c *Client) ListProducts(ctx context.Context, q types.ProductQuery) ([]types.RawProduct, error) {
	data, err := c.get(ctx, "/api/products", q.Values())
	if err != nil {
		return nil, err
	}
	var raws []types.RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return raws, nil
}

// GetProduct fetches one raw catalog record by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*types.RawProduct, error) {
	data, err := c.get(ctx, "/api/products/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	var raw types.RawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &raw, nil
}

// ListCategories fetches the category list.
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	data, err := c.get(ctx, "/api/categories", nil)
	if err != nil {
		return nil, err
	}
	var cats []types.Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return cats, nil
}

// get performs a GET with rate limiting, retries, and envelope unwrapping.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, status, err := c.do(ctx, u)
		if err == nil {
			return data, nil
		}
		lastStatus, lastErr = status, err

		// Expired token: drop it and retry once immediately.
		if status == http.StatusUnauthorized && c.tokens != nil {
			c.tokens.Invalidate()
			if attempt < c.cfg.MaxRetries {
				continue
			}
		}

		if status != 0 && !ratelimit.Retryable(status) {
			return nil, err
		}
		if attempt == c.cfg.MaxRetries {
			break
		}

		var backoff time.Duration
		if status == http.StatusTooManyRequests {
			backoff = ratelimit.RateLimitBackoff(attempt, c.cfg, retryAfterOf(err))
		} else {
			backoff = ratelimit.Backoff(attempt, c.cfg)
		}
		c.logger.Debug().Str("url", u).Int("attempt", attempt+1).
			Dur("backoff", backoff).Msg("Retrying upstream request")

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	return nil, &ratelimit.RetryError{
		URL:        u,
		Attempts:   c.cfg.MaxRetries + 1,
		LastStatus: lastStatus,
		Err:        lastErr,
	}
}

// retryAfterError carries the Retry-After header through the retry loop.
type retryAfterError struct {
	err        error
	retryAfter string
}

func (e *retryAfterError) Error() string { return e.err.Error() }
func (e *retryAfterError) Unwrap() error { return e.err }

func retryAfterOf(err error) string {
	if ra, ok := err.(*retryAfterError); ok {
		return ra.retryAfter
	}
	return ""
}

// do executes a single request and unwraps the response envelope.
func (c *Client) do(ctx context.Context, url string) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NairaMart-CatalogService/1.0")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("acquire token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(body, &env)
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, env.Message),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, resp.StatusCode, &retryAfterError{
				err:        apiErr,
				retryAfter: resp.Header.Get("Retry-After"),
			}
		}
		return nil, resp.StatusCode, apiErr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Some endpoints return the payload bare.
		return body, resp.StatusCode, nil
	}
	if env.Data == nil {
		return body, resp.StatusCode, nil
	}
	if !env.Success && env.Message != "" {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
		}
	}
	return env.Data, resp.StatusCode, nil
}
