// Package upstream is the thin HTTP boundary to the financial data provider.
// It issues parameterized GETs with the API key appended to every query and
// decodes JSON bodies; it performs no retries and no response shaping.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/richtv/market-content-api/pkg/logger"
	"github.com/richtv/market-content-api/pkg/metrics"
)

// StatusError is a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.Path)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON fetches path with the given query parameters and decodes the body
// into dest. Transport failures and non-2xx statuses come back unwrapped so
// callers can propagate them as generic fetch failures.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	timer := metrics.NewTimer()

	// The key is injected into a copy so the caller's Values stay untouched.
	params := url.Values{}
	for k, vs := range query {
		params[k] = append([]string(nil), vs...)
	}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(path, "transport_error", timer.Elapsed().Seconds())
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		metrics.RecordUpstreamRequest(path, fmt.Sprintf("%d", resp.StatusCode), timer.Elapsed().Seconds())
		logger.Warn("upstream request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		metrics.RecordUpstreamRequest(path, "decode_error", timer.Elapsed().Seconds())
		return fmt.Errorf("decoding upstream response: %w", err)
	}

	metrics.RecordUpstreamRequest(path, "ok", timer.Elapsed().Seconds())
	logger.Debug("upstream request completed",
		zap.String("path", path),
		zap.Duration("elapsed", timer.Elapsed()))

	return nil
}
