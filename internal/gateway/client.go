// Package gateway is the typed I/O boundary to the brand-voting backend.
// One request function per resource, no business logic: services own
// validation and caching, the gateway owns transport, auth headers and
// status-to-error mapping.
package gateway

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

	"golang.org/x/time/rate"
)

// Client provides typed access to every backend resource this subsystem
// consumes. Token-taking methods attach the backend bearer token obtained
// at login.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a gateway client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		// Keep a misbehaving caller from hammering the backend: 20 rps
		// sustained, burst of 40 across all resources.
		limiter: rate.NewLimiter(20, 40),
	}
}

// wrapStatusError maps backend HTTP status codes to typed errors so callers
// can use errors.Is.
func wrapStatusError(operation string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w: %s", operation, ErrBadRequest, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %s", operation, ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", operation, ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %s", operation, ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w: %s", operation, ErrConflict, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %s", operation, ErrRateLimited, msg)
	}
	return fmt.Errorf("%s: backend returned %d: %s", operation, status, msg)
}

// do performs one backend call and decodes the JSON response into out
// (out may be nil for calls whose body is discarded). headers may be nil.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, token string, payload any, headers map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal payload: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to call backend: %w", operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return wrapStatusError(operation, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: failed to parse response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, token string, out any) error {
	return c.do(ctx, operation, http.MethodGet, path, query, token, nil, nil, out)
}

func (c *Client) post(ctx context.Context, operation, path string, token string, payload, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, nil, token, payload, nil, out)
}
