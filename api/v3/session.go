package v3

import (
	"context"
	"net/http"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type loginRequest struct {
	UserName    string `json:"userName"`
	Password    string `json:"Password"`
	CaptchaCode string `json:"captchaCode"`
}

type twoFARequest struct {
	Code string `json:"code"`
}

// Login exchanges credentials for a session cookie and stores it on the
// client. Any previously held session is cleared first so a stale cookie is
// never replayed against the login endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	c.SetSession("")

	resp, err := c.send(ctx, http.MethodPost, "user/session", loginRequest{UserName: username, Password: password})
	if err != nil {
		return nil, err
	}
	c.captureSession(resp)

	data, err := api.DecodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	user, err := api.UnmarshalData[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login2FA completes a login that required a two-factor code.
func (c *Client) Login2FA(ctx context.Context, code string) (*User, error) {
	resp, err := c.send(ctx, http.MethodPost, "user/2fa", twoFARequest{Code: code})
	if err != nil {
		return nil, err
	}
	c.captureSession(resp)

	data, err := api.DecodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	user, err := api.UnmarshalData[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the session server-side and clears the held cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "user/session", nil)
	c.SetSession("")
	return err
}

func (c *Client) captureSession(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			c.SetSession(cookie.Value)
			return
		}
	}
}
