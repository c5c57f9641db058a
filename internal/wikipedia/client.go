package wikipedia

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patqa/wikipedia-asof-mcp-server/internal/base"
	"github.com/patqa/wikipedia-asof-mcp-server/metrics"
)

const (
	// revisionFloor is the fixed lower bound for backward revision search.
	// Wikipedia went live in January 2001; no revision predates this, so it
	// acts as a sentinel that stops the rvdir=older scan.
	revisionFloor = "2001-01-01T00:00:00Z"

	// maxLag makes the API shed our requests when replication lag is high,
	// per Wikimedia's etiquette guidelines for bots.
	maxLag = "5"
)

// Client provides access to the Wikipedia Action API.
type Client struct {
	*base.Client
	config *Config

	// now is the clock for the default-timestamp policy; injected in tests.
	now func() time.Time
}

// ClientOption configures the Client (re-export of base.ClientOption).
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// NewClient creates a new Wikipedia API client with the given configuration.
func NewClient(config *Config, opts ...ClientOption) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	baseOpts := []base.ClientOption{base.WithTimeout(config.Timeout)}
	baseOpts = append(baseOpts, opts...)

	return &Client{
		Client: base.NewClient(baseOpts...),
		config: config,
		now:    time.Now,
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *Config {
	return c.config
}

// permalink builds the canonical oldid URL for a revision. It is constructed
// from a fixed template, never parsed out of an upstream response.
func (c *Client) permalink(revID int64) string {
	return fmt.Sprintf("%s?oldid=%d", c.config.IndexURL, revID)
}

// doRequest performs a single Action API call and returns the raw body and
// status code. Common protocol parameters are set here.
func (c *Client) doRequest(ctx context.Context, operation string, params url.Values) ([]byte, int, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("maxlag", maxLag)

	start := time.Now()
	body, status, err := c.Client.DoRequest(ctx, base.RequestConfig{
		URL:       c.config.APIURL + "?" + params.Encode(),
		UserAgent: c.config.UserAgent,
	})
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordAPICall(operation, duration, false, "transport")
		return nil, 0, err
	}

	errorCode := ""
	if status != http.StatusOK {
		errorCode = fmt.Sprintf("http_%d", status)
	}
	metrics.RecordAPICall(operation, duration, status == http.StatusOK, errorCode)

	return body, status, nil
}
