package v4

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// Capacity fetches the account storage quota.
func (c *Client) Capacity(ctx context.Context) (*Quota, error) {
	data, err := c.do(ctx, http.MethodGet, "user/capacity", nil, nil)
	if err != nil {
		return nil, err
	}
	quota, err := api.UnmarshalData[Quota](data)
	if err != nil {
		return nil, err
	}
	return &quota, nil
}

// Me fetches the current account record.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "user/me", nil, nil)
	if err != nil {
		return nil, err
	}
	user, err := api.UnmarshalData[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserInfo fetches the public profile of a user by ID.
func (c *Client) UserInfo(ctx context.Context, userID string) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "user/info/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}
	user, err := api.UnmarshalData[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
