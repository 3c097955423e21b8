// Package devseo is the typed client for the DevSEO analysis backend. It
// owns the HTTP wrapper (JSON headers, uniform error normalization, typed
// decoding) and the per-resource endpoint groups built on top of it.
package devseo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devseo/dashboard-gateway/internal/metrics"
)

const apiPrefix = "/api/v1"

// Config controls Client construction.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string
	// Timeout bounds each call. Ignored when HTTPClient is supplied.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Logger is optional; nil falls back to a nop logger.
	Logger *zap.Logger
}

// Client calls the DevSEO analysis backend. Each method issues exactly one
// network call; there are no retries.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: base, httpClient: httpClient, logger: logger}, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// HealthStatus is the backend's liveness payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// do performs one request against the backend. It always sends a JSON
// content type, decodes into out when provided, and normalizes every failure
// into an error carrying a human-readable message. A 204 response is treated
// as an empty success without touching the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(method, resourceLabel(path), 0, time.Since(start))
		return fmt.Errorf("call analysis backend: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("close response body failed", zap.Error(closeErr))
		}
	}()
	metrics.ObserveUpstream(method, resourceLabel(path), resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, resp.Status, data)
		c.logger.Debug("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// resourceLabel collapses a request path into a low-cardinality metric label.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(path, apiPrefix), "/")
	if trimmed == "" {
		return "root"
	}
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
