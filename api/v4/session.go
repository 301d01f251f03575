package v4

import (
	"context"
	"net/http"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginData, error) {
	data, err := c.do(ctx, http.MethodPost, "session/token", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	login, err := api.UnmarshalData[LoginData](data)
	if err != nil {
		return nil, err
	}
	c.SetToken(login.Token.AccessToken, login.Token.RefreshToken)
	return &login, nil
}

// RefreshToken exchanges the held refresh token for a new pair and stores it.
func (c *Client) RefreshToken(ctx context.Context) (*Token, error) {
	_, refresh := c.Token()
	if refresh == "" {
		return nil, api.ErrNotAuthenticated
	}
	data, err := c.do(ctx, http.MethodPost, "session/token/refresh", nil, refreshRequest{RefreshToken: refresh})
	if err != nil {
		return nil, err
	}
	token, err := api.UnmarshalData[Token](data)
	if err != nil {
		return nil, err
	}
	c.SetToken(token.AccessToken, token.RefreshToken)
	return &token, nil
}

// Logout revokes the session server-side and clears the held token pair.
func (c *Client) Logout(ctx context.Context) error {
	access, refresh := c.Token()
	if access == "" && refresh == "" {
		return nil
	}
	_, err := c.do(ctx, http.MethodDelete, "session/token", nil, refreshRequest{RefreshToken: refresh})
	c.SetToken("", "")
	return err
}
