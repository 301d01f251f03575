package v3

import (
	"context"
	"net/http"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// Me fetches the current account record.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "user/me", nil)
	if err != nil {
		return nil, err
	}
	user, err := api.UnmarshalData[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Storage fetches the account storage quota.
func (c *Client) Storage(ctx context.Context) (*Storage, error) {
	data, err := c.do(ctx, http.MethodGet, "user/storage", nil)
	if err != nil {
		return nil, err
	}
	storage, err := api.UnmarshalData[Storage](data)
	if err != nil {
		return nil, err
	}
	return &storage, nil
}

// WebdavAccounts lists the account's WebDAV credentials. This protocol only
// exposes reads; credential mutations do not exist under it.
func (c *Client) WebdavAccounts(ctx context.Context) (*WebdavAccountList, error) {
	data, err := c.do(ctx, http.MethodGet, "webdav/accounts", nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[WebdavAccountList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
