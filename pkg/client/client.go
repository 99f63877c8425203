// Package client reads disk statistics from a running diskinfo daemon.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"diskinfo/pkg/log"
	"diskinfo/pkg/models"
)

const (
	defaultRequestTimeout = 5 * time.Second
)

// ErrNoURL is returned when a client is built without a daemon address.
var ErrNoURL = errors.New("daemon url is required")

// BackendError represents a non-200 answer from the daemon.
type BackendError struct {
	StatusCode int
}

func (e *BackendError) Error() string {
	return "daemon returned status " + http.StatusText(e.StatusCode)
}

// Client talks to a diskinfo daemon over HTTP.
type Client struct {
	baseURL        string
	client         *retryablehttp.Client
	requestTimeout time.Duration
}

// New creates a client for the daemon at baseURL.
func New(baseURL string, retryMax int, retryWaitMin, retryWaitMax, requestTimeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoURL
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Client{
		baseURL:        baseURL,
		client:         CreateRetryableClient(retryMax, retryWaitMin, retryWaitMax),
		requestTimeout: requestTimeout,
	}, nil
}

// BaseURL returns the daemon address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches GET /healthz.
func (c *Client) Health(ctx context.Context) (models.Health, error) {
	var health models.Health
	err := c.getJSON(ctx, "/healthz", &health)
	return health, err
}

// Info fetches a fresh GET /disk/info.
func (c *Client) Info(ctx context.Context) (models.DiskInfo, error) {
	var info models.DiskInfo
	err := c.getJSON(ctx, "/disk/info", &info)
	return info, err
}

// Timeline fetches GET /disk/timeline.
func (c *Client) Timeline(ctx context.Context) (models.Timeline, error) {
	var tl models.Timeline
	err := c.getJSON(ctx, "/disk/timeline", &tl)
	return tl, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("Failed to close daemon response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &BackendError{StatusCode: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateRetryableClient creates a retryable HTTP client for daemon requests.
func CreateRetryableClient(retryMax int, retryWaitMin, retryWaitMax time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil
	client.CheckRetry = retryOnTransportError
	return client
}

// retryOnTransportError retries connection and timeout failures only. Any
// HTTP answer, 5xx included, is returned to the caller as-is.
func retryOnTransportError(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil {
		return false, nil
	}

	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error itself
	}

	return false, nil
}
