// Package client provides a storefront API client that carries the
// auth cookies and coordinates refresh-token rotation: any number of
// requests failing with an expired access credential collapse into a
// single rotation call, after which every original request is replayed
// exactly once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

const (
	refreshPath = "/auth/refresh-token"

	codeNoToken = "NO_TOKEN"
)

// Client is a cookie-carrying HTTP client for the storefront API.
// Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	// onSessionExpired fires after a failed refresh: local principal
	// state should be cleared, the user is effectively logged out.
	onSessionExpired func()

	mu         sync.Mutex
	refreshing bool
	pending    []chan error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// installed on it if it has none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSessionExpiredHandler sets the callback fired when a refresh
// attempt fails and the session is considered gone.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Do sends a JSON request and decodes the JSON response into out (when
// out is non-nil). On a 401 whose reason code is not NO_TOKEN it
// coordinates one refresh across all concurrent callers and replays the
// request once.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	apiErr, err := c.send(ctx, method, path, payload, out)
	if err != nil {
		return err
	}
	if apiErr == nil {
		return nil
	}

	// Not a 401, or the caller never logged in: no refresh will help.
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Code == codeNoToken {
		return apiErr
	}

	// The request is replayed at most once; a second 401 after a
	// successful refresh surfaces as-is.
	if err := c.awaitRefresh(ctx); err != nil {
		return err
	}

	retryErr, err := c.send(ctx, method, path, payload, out)
	if err != nil {
		return err
	}
	if retryErr != nil {
		return retryErr
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) (*Error, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil, nil
	}

	var body apiError
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &Error{StatusCode: resp.StatusCode, Message: body.Message, Code: body.Code}, nil
}

// awaitRefresh ensures exactly one rotation call is in flight. The
// first caller performs it; everyone else queues and receives the same
// outcome. The caller's context bounds the wait, so a hung refresh
// cannot stall a queued request forever.
func (c *Client) awaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.pending = append(c.pending, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.refresh(ctx)

	c.mu.Lock()
	waiters := c.pending
	c.pending = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}

	if err != nil && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return err
}

func (c *Client) refresh(ctx context.Context) error {
	apiErr, err := c.send(ctx, http.MethodPost, refreshPath, nil, nil)
	if err != nil {
		return err
	}
	if apiErr != nil {
		return apiErr
	}
	return nil
}
