// Package api is the HTTP client for the TransferDesk dashboard backend.
// Only the session contract (login, logout, identity verification) is
// exposed here; every other screen of the dashboard talks to the backend
// through its own views and is not this client's concern.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"transferdesk/internal/shared/logger"
)

// TokenSource yields the bearer credential at send time. Reading the
// token per request instead of mutating a shared default header means an
// in-flight request can never race a logout clearing the credential.
type TokenSource func() string

// Client is the dashboard API client.
type Client struct {
	baseURL       string
	tokenSource   TokenSource
	httpClient    *http.Client
	validate      *validator.Validate
	identityCache *ttlcache.Cache[string, *User]
	logger        logger.Interface
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithIdentityCacheTTL memoizes successful identity lookups per token for
// the given duration. Zero disables the cache.
func WithIdentityCacheTTL(ttl time.Duration) Option {
	return func(client *Client) {
		if ttl <= 0 {
			client.identityCache = nil
			return
		}
		client.identityCache = ttlcache.New[string, *User](
			ttlcache.WithTTL[string, *User](ttl),
			ttlcache.WithDisableTouchOnHit[string, *User](),
		)
	}
}

// WithLogger sets the client logger.
func WithLogger(log logger.Interface) Option {
	return func(client *Client) {
		client.logger = log
	}
}

// NewClient creates a new dashboard API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://ttdash.example.edu/api")
//   - tokenSource: Read at send time for the bearer header; may return ""
func NewClient(baseURL string, tokenSource TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		tokenSource: tokenSource,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.NewLogger().Named("api")
	}
	return c
}

// Login exchanges a credential pair for a token and identity.
// A rejected login is returned as *Error with the backend payload intact.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := c.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("validate login request: %w", err)
	}

	var result LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentUser verifies the current token against the backend and returns
// the identity it maps to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	token := c.tokenSource()
	if c.identityCache != nil && token != "" {
		if item := c.identityCache.Get(token); item != nil {
			return item.Value(), nil
		}
	}

	var result userResponse
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/auth/user", nil, &result); err != nil {
		return nil, err
	}

	if c.identityCache != nil && token != "" {
		c.identityCache.Set(token, &result.User, ttlcache.DefaultTTL)
	}
	return &result.User, nil
}

// Logout invalidates the token server-side. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil, nil)
}

// Ping probes backend reachability without touching session state.
func (c *Client) Ping(ctx context.Context) error {
	err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/auth/user", nil, nil)
	if err != nil {
		// Any HTTP response at all means the backend is reachable.
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil
		}
		return err
	}
	return nil
}

// InvalidateIdentityCache drops any memoized identity for the token.
func (c *Client) InvalidateIdentityCache(token string) {
	if c.identityCache != nil && token != "" {
		c.identityCache.Delete(token)
	}
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Body: respBody}
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
