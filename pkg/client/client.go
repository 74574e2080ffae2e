package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// instanceHeader mirrors healthsvc.InstanceHeader.
const instanceHeader = "X-Fixture-Instance"

// maxBodySize caps how much of a probe response is read.
const maxBodySize = 64 * 1024

// Client is the interface for probing a health-check fixture
type Client interface {
	// Root probes GET /
	Root(ctx context.Context) (*ProbeResult, error)

	// Healthy probes GET /healthy
	Healthy(ctx context.Context) (*ProbeResult, error)

	// Sick probes GET /sick
	Sick(ctx context.Context) (*ProbeResult, error)

	// SlowHealthy probes GET /slowhealthy
	SlowHealthy(ctx context.Context) (*ProbeResult, error)

	// Probe issues a GET for any fixture path
	Probe(ctx context.Context, path string) (*ProbeResult, error)
}

// ProbeResult is a health answer from the fixture. A 400 is a valid
// unhealthy answer, not an error.
type ProbeResult struct {
	StatusCode int
	Body       string
	Instance   uuid.UUID
}

// OK reports whether the fixture answered healthy.
func (r *ProbeResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient implements the Client interface using HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new HTTP client for a fixture (simplified alias)
func New(baseURL string) Client {
	return NewClient(baseURL)
}

// NewClient creates a new HTTP client for a fixture
func NewClient(baseURL string) Client {
	return NewClientWithOptions(baseURL, 10*time.Second)
}

// NewClientWithOptions creates a new HTTP client with custom options
func NewClientWithOptions(baseURL string, timeout time.Duration) Client {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Root probes GET /
func (c *HTTPClient) Root(ctx context.Context) (*ProbeResult, error) {
	return c.Probe(ctx, "/")
}

// Healthy probes GET /healthy
func (c *HTTPClient) Healthy(ctx context.Context) (*ProbeResult, error) {
	return c.Probe(ctx, "/healthy")
}

// Sick probes GET /sick
func (c *HTTPClient) Sick(ctx context.Context) (*ProbeResult, error) {
	return c.Probe(ctx, "/sick")
}

// SlowHealthy probes GET /slowhealthy
func (c *HTTPClient) SlowHealthy(ctx context.Context) (*ProbeResult, error) {
	return c.Probe(ctx, "/slowhealthy")
}

// Probe issues a GET for path and classifies the answer
func (c *HTTPClient) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrNetworkError, err)
	}

	if resp.StatusCode != http.StatusBadRequest && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Path:       path,
		}
	}

	result := &ProbeResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
	if id := resp.Header.Get(instanceHeader); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			result.Instance = parsed
		}
	}

	return result, nil
}
