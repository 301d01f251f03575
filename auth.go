package cloudreve

import (
	"context"

	"github.com/cloudrevehq/cloudreve-go/api"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// Login authenticates against the active protocol. Under v3 the server sets
// a session cookie; under v4 it issues a bearer token pair. Either way the
// credential is held on the client and replayed on subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if c.v4 != nil {
		login, err := c.v4.Login(ctx, username, password)
		if err != nil {
			return nil, utils.WrapLoginError(err)
		}
		return &LoginResponse{v4: login}, nil
	}

	user, err := c.v3.Login(ctx, username, password)
	if err != nil {
		return nil, utils.WrapLoginError(err)
	}
	return &LoginResponse{v3: user}, nil
}

// LoginWith2FA completes a legacy-protocol login that required a two-factor
// code. The current protocol folds the second factor into the token
// endpoint, so this call is v3-only.
func (c *Client) LoginWith2FA(ctx context.Context, code string) (*LoginResponse, error) {
	if c.v3 == nil {
		return nil, c.unsupported("two-factor login")
	}
	user, err := c.v3.Login2FA(ctx, code)
	if err != nil {
		return nil, utils.WrapLoginError(err)
	}
	return &LoginResponse{v3: user}, nil
}

// Logout revokes the held credential server-side and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	if c.v4 != nil {
		return c.v4.Logout(ctx)
	}
	return c.v3.Logout(ctx)
}

// Token returns the held credential for external persistence.
func (c *Client) Token() TokenInfo {
	if c.v4 != nil {
		access, refresh := c.v4.Token()
		return TokenInfo{Version: api.VersionV4, AccessToken: access, RefreshToken: refresh}
	}
	return TokenInfo{Version: api.VersionV3, SessionCookie: c.v3.Session()}
}

// SetToken installs a previously persisted credential. The token's version
// must match the protocol the client is bound to.
func (c *Client) SetToken(token TokenInfo) error {
	if token.Version != api.VersionAuto && token.Version != c.version {
		return &InvalidArgumentError{Reason: "token version " + token.Version.String() + " does not match client version " + c.version.String()}
	}
	if c.v4 != nil {
		c.v4.SetToken(token.AccessToken, token.RefreshToken)
		return nil
	}
	c.v3.SetSession(token.SessionCookie)
	return nil
}

// RefreshToken exchanges the held v4 refresh token for a new pair. The
// facade never refreshes automatically; callers decide when.
func (c *Client) RefreshToken(ctx context.Context) (TokenInfo, error) {
	if c.v4 == nil {
		return TokenInfo{}, c.unsupported("token refresh")
	}
	token, err := c.v4.RefreshToken(ctx)
	if err != nil {
		return TokenInfo{}, err
	}
	return TokenInfo{Version: api.VersionV4, AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}
