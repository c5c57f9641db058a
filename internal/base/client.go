// Package base provides shared HTTP client infrastructure for the Wikipedia
// Action API: bounded concurrency, per-call timeouts, and circuit breaking.
// Each call is a single attempt; retry policy belongs to the caller.
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/patqa/wikipedia-asof-mcp-server/internal/infra"
)

const (
	// DefaultTimeout bounds a single upstream call end to end.
	DefaultTimeout = 30 * time.Second

	// MaxConcurrentRequests limits parallel API calls per client.
	MaxConcurrentRequests = 5
)

// Client wraps an http.Client with a semaphore and a circuit breaker.
// It is safe for concurrent use; requests for different pages share nothing
// beyond these two guards.
type Client struct {
	HTTPClient     *http.Client
	Logger         *slog.Logger
	CircuitBreaker *infra.CircuitBreaker
	Semaphore      chan struct{}
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithTimeout sets the per-call timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient.Timeout = d
	}
}

// NewClient creates a base client with default settings.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient:     newHTTPClient(DefaultTimeout),
		Logger:         slog.Default(),
		CircuitBreaker: infra.NewCircuitBreaker(infra.BreakerSettings{}),
		Semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AcquireSlot blocks until a request slot is available or the context ends.
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot.
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// BreakerStats returns the current circuit breaker state.
func (c *Client) BreakerStats() infra.BreakerStats {
	return c.CircuitBreaker.Stats()
}

// RequestConfig configures a single HTTP request.
type RequestConfig struct {
	URL       string
	UserAgent string
}

// DoRequest performs a single GET request. It returns the response body and
// status code; interpreting the status is the caller's job. Transport
// failures count against the circuit breaker, HTTP-level responses do not
// (a 403 or 404 means the API is up).
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	if !c.CircuitBreaker.Allow() {
		stats := c.CircuitBreaker.Stats()
		return nil, 0, &infra.ErrCircuitOpen{
			RetryAt:  stats.RetryAt,
			Failures: stats.ConsecutiveFails,
		}
	}

	if err := c.AcquireSlot(ctx); err != nil {
		return nil, 0, err
	}
	defer c.ReleaseSlot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.CircuitBreaker.RecordFailure()
		c.Logger.Warn("API request failed", "url", cfg.URL, "error", err)
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		c.CircuitBreaker.RecordFailure()
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		c.CircuitBreaker.RecordFailure()
	} else {
		c.CircuitBreaker.RecordSuccess()
	}

	return body, resp.StatusCode, nil
}

// readAndClose reads the response body and closes it.
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with pooled transport settings.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
