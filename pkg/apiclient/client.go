package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIVersion is sent as the X-API-Version header on every request.
const DefaultAPIVersion = "2025-06-18"

// TokenSource supplies the bearer token at request time. Implementations are
// read on every call so external token changes take effect immediately.
type TokenSource interface {
	Token() string
	Clear() error
}

// Config configures the console API client.
type Config struct {
	BaseURL    string
	APIVersion string
	Tokens     TokenSource
	HTTPClient *http.Client
	// OnUnauthorized runs after a 401 clears the stored token. The SPA this
	// replaces forced a full page reload here; callers decide the equivalent.
	OnUnauthorized func()
}

// Client talks to the console backend REST API. Each exported method maps to
// exactly one endpoint and passes the payload through without validation,
// retries, or caching; callers handle failures individually.
type Client struct {
	baseURL        string
	apiVersion     string
	tokens         TokenSource
	client         *http.Client
	onUnauthorized func()
}

// New builds a client against the backend base URL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion:     version,
		tokens:         cfg.Tokens,
		client:         httpClient,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError carries the backend status code and verbatim error payload text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: remote error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 APIError.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("apiclient: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, target)
}

// doForm posts form-encoded values; the login endpoint is the only consumer.
func (c *Client) doForm(ctx context.Context, path string, values url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, target)
}

func (c *Client) send(req *http.Request, target any) error {
	c.decorate(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(buf.String())}
	}
	if target == nil {
		return nil
	}
	if raw, ok := target.(*[]byte); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("apiclient: read response: %w", err)
		}
		*raw = data
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// decorate attaches the bearer token and API version header. The token is
// read from the source per request, never cached on the client.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("X-API-Version", c.apiVersion)
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleUnauthorized() {
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
