// Package mindsphere provides REST clients for the platform services the
// proxy depends on: identity management, IoT file storage and asset
// management.
package mindsphere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds the connection settings shared by all service clients.
type Config struct {
	// Gateway is the platform API gateway base URL,
	// e.g. "https://gateway.eu1.mindsphere.io".
	Gateway string

	// Tenant is the host tenant the technical credentials belong to.
	Tenant string

	// ClientID and ClientSecret are the technical-user credentials used
	// for the client-credentials token grant.
	ClientID     string
	ClientSecret string

	// TokenURL overrides the token endpoint. Defaults to the gateway's
	// technical token manager endpoint when empty.
	TokenURL string

	// Timeout bounds every single HTTP call. Defaults to 30s.
	Timeout time.Duration
}

// Client is the shared HTTP layer under the per-service clients. It
// injects bearer tokens, encodes/decodes JSON and maps error responses
// to APIError values.
type Client struct {
	gateway    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates the shared client with a token manager built from the
// config credentials.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		gateway:    cfg.Gateway,
		httpClient: httpClient,
		tokens:     NewTokenManager(cfg, httpClient),
	}
}

// NewClientWithTokenSource creates the shared client over a caller-provided
// token source. Used in tests and by deployments with ambient credentials.
func NewClientWithTokenSource(gateway string, ts TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		gateway:    gateway,
		httpClient: httpClient,
		tokens:     ts,
	}
}

// do performs one HTTP request against the gateway and decodes the
// response. A status >= 400 is returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.gateway + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
