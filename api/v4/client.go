// Package v4 implements the endpoint client for the current Cloudreve
// protocol: bearer-token authentication and resource-URI addressing under
// /api/v4/.
package v4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cloudrevehq/cloudreve-go/api"
)

const basePath = "/api/v4/"

// Client is a thin per-endpoint client for the current protocol. It holds
// immutable configuration plus the token pair, which is guarded for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewClient returns a client rooted at baseURL. Trailing slashes on baseURL
// are ignored. A nil httpClient falls back to http.DefaultClient and a nil
// logger to a no-op logger.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetToken replaces the held token pair.
func (c *Client) SetToken(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// Token returns the held token pair.
func (c *Client) Token() (accessToken, refreshToken string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// BaseURL returns the normalized server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a JSON request against an endpoint under /api/v4/ and returns
// the decoded envelope data payload.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (json.RawMessage, error) {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &api.DecodeError{Err: err}
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, query), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	c.logger.Debug("v4 request", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &api.TransportError{Err: err}
	}
	return api.DecodeEnvelope(resp)
}

// doRaw issues a request with an opaque binary body, used by chunk uploads.
func (c *Client) doRaw(ctx context.Context, method, endpoint string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, nil), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(body))
	c.authorize(req)

	c.logger.Debug("v4 raw request", zap.String("method", method), zap.String("endpoint", endpoint), zap.Int("bytes", len(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &api.TransportError{Err: err}
	}
	return api.DecodeEnvelope(resp)
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := c.baseURL + basePath + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// Ping checks server liveness. It is the probe the version detector uses,
// so it must not require authentication.
func (c *Client) Ping(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "site/ping", nil, nil)
	if err != nil {
		return "", err
	}
	return api.UnmarshalData[string](data)
}

// SiteConfig fetches one section of the site configuration, e.g. "basic"
// or "login". The payload shape differs per section, so it is returned raw.
func (c *Client) SiteConfig(ctx context.Context, section string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "site/config/"+url.PathEscape(section), nil, nil)
}
