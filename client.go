package cloudreve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cloudrevehq/cloudreve-go/api"
	v3 "github.com/cloudrevehq/cloudreve-go/api/v3"
	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/options"
)

var errBaseURLRequired = errors.New("non-empty base URL is required")

// Options holds construction-time configuration for a Client.
type Options struct {
	Version       api.Version
	HTTPClient    *http.Client
	Logger        *zap.Logger
	AccessToken   string
	RefreshToken  string
	SessionCookie string
}

// NewOptions returns the default client options.
func NewOptions() Options {
	return Options{
		Version: api.VersionAuto,
		Logger:  zap.NewNop(),
	}
}

// Client is the unified, version-agnostic Cloudreve client. At construction
// it probes the server (or honors an explicit version) and from then on
// exactly one protocol client is live; every method dispatches to it,
// translating path addressing into whatever that protocol needs.
type Client struct {
	baseURL string
	options Options
	version api.Version
	v3      *v3.Client
	v4      *v4.Client
}

// NewClient probes the server at baseURL and returns a client bound to the
// protocol version it speaks. The probe prefers v4 and falls back to v3;
// WithVersion skips it entirely. Credentials may be seeded via options or
// the CLOUDREVE_ACCESS_TOKEN / CLOUDREVE_SESSION environment variables.
func NewClient(ctx context.Context, baseURL string, opts ...options.NewClientOption[Client]) (*Client, error) {
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		options: NewOptions(),
	}
	options.ApplyOptions(c, opts...)

	if c.options.Logger == nil {
		c.options.Logger = zap.NewNop()
	}
	if c.options.AccessToken == "" {
		c.options.AccessToken = os.Getenv("CLOUDREVE_ACCESS_TOKEN")
	}
	if c.options.SessionCookie == "" {
		c.options.SessionCookie = os.Getenv("CLOUDREVE_SESSION")
	}

	if err := c.detect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// detect runs the single-pass version probe: v4 liveness first, then v3.
// There are no retries; a server that answers neither is unavailable.
func (c *Client) detect(ctx context.Context) error {
	switch c.options.Version {
	case api.VersionV3:
		c.activateV3()
		return nil
	case api.VersionV4:
		c.activateV4()
		return nil
	}

	probe := c.newV4Client()
	_, v4Err := probe.Ping(ctx)
	if v4Err == nil {
		c.v4 = probe
		c.version = api.VersionV4
		c.options.Logger.Debug("detected api version", zap.String("version", "v4"))
		return nil
	}

	fallback := c.newV3Client()
	_, v3Err := fallback.Ping(ctx)
	if v3Err == nil {
		c.v3 = fallback
		c.version = api.VersionV3
		c.options.Logger.Debug("detected api version", zap.String("version", "v3"))
		return nil
	}

	return fmt.Errorf("%w (v4: %v; v3: %v)", ErrVersionDetection, v4Err, v3Err)
}

func (c *Client) activateV3() {
	c.v3 = c.newV3Client()
	c.version = api.VersionV3
}

func (c *Client) activateV4() {
	c.v4 = c.newV4Client()
	c.version = api.VersionV4
}

func (c *Client) newV3Client() *v3.Client {
	client := v3.NewClient(c.baseURL, c.options.HTTPClient, c.options.Logger)
	if c.options.SessionCookie != "" {
		client.SetSession(c.options.SessionCookie)
	}
	return client
}

func (c *Client) newV4Client() *v4.Client {
	client := v4.NewClient(c.baseURL, c.options.HTTPClient, c.options.Logger)
	if c.options.AccessToken != "" || c.options.RefreshToken != "" {
		client.SetToken(c.options.AccessToken, c.options.RefreshToken)
	}
	return client
}

// Version returns the protocol version the client is bound to.
func (c *Client) Version() api.Version {
	return c.version
}

// BaseURL returns the normalized server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks server liveness through the active protocol client.
func (c *Client) Ping(ctx context.Context) (string, error) {
	if c.v4 != nil {
		return c.v4.Ping(ctx)
	}
	return c.v3.Ping(ctx)
}

func (c *Client) unsupported(op string) error {
	return &UnsupportedError{Op: op, Version: c.version}
}
