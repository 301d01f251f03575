package v4

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// DavAccountRequest describes a WebDAV credential to create or replace.
type DavAccountRequest struct {
	Name     string          `json:"name"`
	URI      string          `json:"uri"`
	Readonly bool            `json:"readonly,omitempty"`
	Proxy    bool            `json:"proxy,omitempty"`
	Options  json.RawMessage `json:"options,omitempty"`
}

// ListDavAccounts fetches one page of WebDAV credentials.
func (c *Client) ListDavAccounts(ctx context.Context, pageSize int, nextToken string) (*DavAccountList, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if nextToken != "" {
		query.Set("next_page_token", nextToken)
	}
	data, err := c.do(ctx, http.MethodGet, "devices/dav", query, nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[DavAccountList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateDavAccount creates a WebDAV credential.
func (c *Client) CreateDavAccount(ctx context.Context, req DavAccountRequest) (*DavAccount, error) {
	data, err := c.do(ctx, http.MethodPut, "devices/dav", nil, req)
	if err != nil {
		return nil, err
	}
	account, err := api.UnmarshalData[DavAccount](data)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateDavAccount replaces an existing WebDAV credential. All fields of req
// are sent, so callers must fill unchanged fields from the current record.
func (c *Client) UpdateDavAccount(ctx context.Context, accountID string, req DavAccountRequest) (*DavAccount, error) {
	data, err := c.do(ctx, http.MethodPatch, "devices/dav/"+url.PathEscape(accountID), nil, req)
	if err != nil {
		return nil, err
	}
	account, err := api.UnmarshalData[DavAccount](data)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteDavAccount revokes a WebDAV credential.
func (c *Client) DeleteDavAccount(ctx context.Context, accountID string) error {
	_, err := c.do(ctx, http.MethodDelete, "devices/dav/"+url.PathEscape(accountID), nil, nil)
	return err
}
