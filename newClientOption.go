package cloudreve

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cloudrevehq/cloudreve-go/api"
	"github.com/cloudrevehq/cloudreve-go/options"
)

const (
	optionNameVersion     = "version"
	optionNameHTTPClient  = "httpClient"
	optionNameLogger      = "logger"
	optionNameAccessToken = "accessToken"
	optionNameSession     = "sessionCookie"
)

// WithVersion pins the protocol version, skipping the detection probe.
func WithVersion(version api.Version) options.NewClientOption[Client] {
	return &versionOpt{version: version}
}

type versionOpt struct {
	version api.Version
}

func (o *versionOpt) Apply(c *Client) {
	c.options.Version = o.version
}

func (o *versionOpt) NewClientOptionName() string {
	return optionNameVersion
}

// WithHTTPClient sets a custom HTTP client. Useful for testing or when the
// caller needs custom timeouts or proxies.
func WithHTTPClient(httpClient *http.Client) options.NewClientOption[Client] {
	return &httpClientOpt{httpClient: httpClient}
}

type httpClientOpt struct {
	httpClient *http.Client
}

func (o *httpClientOpt) Apply(c *Client) {
	c.options.HTTPClient = o.httpClient
}

func (o *httpClientOpt) NewClientOptionName() string {
	return optionNameHTTPClient
}

// WithLogger sets a structured logger for request-level debug output.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) options.NewClientOption[Client] {
	return &loggerOpt{logger: logger}
}

type loggerOpt struct {
	logger *zap.Logger
}

func (o *loggerOpt) Apply(c *Client) {
	c.options.Logger = o.logger
}

func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}

// WithAccessToken seeds the v4 bearer token pair, e.g. from a token cache.
func WithAccessToken(accessToken, refreshToken string) options.NewClientOption[Client] {
	return &accessTokenOpt{accessToken: accessToken, refreshToken: refreshToken}
}

type accessTokenOpt struct {
	accessToken  string
	refreshToken string
}

func (o *accessTokenOpt) Apply(c *Client) {
	c.options.AccessToken = o.accessToken
	c.options.RefreshToken = o.refreshToken
}

func (o *accessTokenOpt) NewClientOptionName() string {
	return optionNameAccessToken
}

// WithSessionCookie seeds the v3 session cookie, e.g. from a token cache.
func WithSessionCookie(session string) options.NewClientOption[Client] {
	return &sessionOpt{session: session}
}

type sessionOpt struct {
	session string
}

func (o *sessionOpt) Apply(c *Client) {
	c.options.SessionCookie = o.session
}

func (o *sessionOpt) NewClientOptionName() string {
	return optionNameSession
}
