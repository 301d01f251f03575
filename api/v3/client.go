// Package v3 implements the endpoint client for the legacy Cloudreve
// protocol: cookie-session authentication under /api/v3/, with mutations
// addressed by opaque object IDs rather than paths.
package v3

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

const basePath = "/api/v3/"

// SessionCookieName is the cookie the server sets at login and expects on
// every subsequent request.
const SessionCookieName = "cloudreve-session"

// Client is a thin per-endpoint client for the legacy protocol. It holds
// immutable configuration plus the session cookie, which is guarded for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.RWMutex
	session string
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

// SetSession replaces the held session cookie value.
func (c *Client) SetSession(session string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Session returns the held session cookie value.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// BaseURL returns the normalized server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a JSON request against an endpoint under /api/v3/ and returns
// the decoded envelope data payload.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	resp, err := c.send(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	return api.DecodeEnvelope(resp)
}

// send issues the request and returns the raw response. Login uses this
// directly because it must read the Set-Cookie header before the body is
// consumed.
func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
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

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+strings.TrimLeft(endpoint, "/"), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	c.logger.Debug("v3 request", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &api.TransportError{Err: err}
	}
	return resp, nil
}

// doRaw issues a request with an opaque binary body, used by chunk uploads.
func (c *Client) doRaw(ctx context.Context, method, endpoint string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+strings.TrimLeft(endpoint, "/"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(body))
	c.authorize(req)

	c.logger.Debug("v3 raw request", zap.String("method", method), zap.String("endpoint", endpoint), zap.Int("bytes", len(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &api.TransportError{Err: err}
	}
	return api.DecodeEnvelope(resp)
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
	}
}

// Ping checks server liveness. It is the probe the version detector falls
// back to, so it must not require authentication.
func (c *Client) Ping(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "site/ping", nil)
	if err != nil {
		return "", err
	}
	if api.IsEmptyData(data) {
		return "", nil
	}
	return api.UnmarshalData[string](data)
}

// SiteConfig fetches the public site configuration.
func (c *Client) SiteConfig(ctx context.Context) (*SiteConfig, error) {
	data, err := c.do(ctx, http.MethodGet, "site/config", nil)
	if err != nil {
		return nil, err
	}
	config, err := api.UnmarshalData[SiteConfig](data)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// escapePath percent-encodes each segment of a filesystem path for use in
// an endpoint URL, keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
