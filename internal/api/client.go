package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
)

// Config configures a Client. Explicitly constructed and injected; there is
// no package-level client or mutable base URL.
type Config struct {
	// BaseURL is the REST API root without a trailing slash.
	BaseURL string

	// Token is the access token to send as a bearer token, empty before login.
	Token string

	// Timeout bounds every request. Zero means 45 seconds.
	Timeout time.Duration

	// HTTPClient overrides the default retrying client, used in tests.
	HTTPClient *http.Client
}

// Client talks to the MavPulse backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a Client for the given config. The default transport retries
// idempotent failures a few times before giving up.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		rc := retryablehttp.NewClient()
		rc.RetryMax = 3
		rc.Logger = nil
		httpClient = rc.StandardClient()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    httpClient,
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// do sends a request and decodes a 2xx JSON response into out (when out is
// non-nil). Transport failures and timeouts map to ErrNetworkFailure, non-2xx
// statuses to ErrServerRejection carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp)
	}

	if out == nil {
		return nil
	}
	return decodeJSON(resp.Body, out)
}

func decodeJSON(r io.Reader, out interface{}) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// rejection builds an ErrServerRejection from a non-2xx response. The body is
// included when it looks like a message; it is capped so a misbehaving server
// cannot flood the error chain.
func rejection(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))

	// Backends answer errors both as plain text and as {"error": "..."}.
	var wrapped struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &wrapped) == nil && wrapped.Error != "" {
		msg = wrapped.Error
	}

	if msg == "" {
		return fmt.Errorf("%w: status %d", apperrors.ErrServerRejection, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", apperrors.ErrServerRejection, resp.StatusCode, msg)
}
