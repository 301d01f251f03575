package v4

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// CreateShareRequest describes a new or updated share link.
type CreateShareRequest struct {
	URI             string `json:"uri"`
	IsPrivate       bool   `json:"is_private,omitempty"`
	Password        string `json:"password,omitempty"`
	RemainDownloads int    `json:"remain_downloads,omitempty"`
	Expire          int64  `json:"expire,omitempty"`
	ShareView       bool   `json:"share_view,omitempty"`
	ShowReadme      bool   `json:"show_readme,omitempty"`
}

// CreateShare creates a share link; the payload is the share URL.
func (c *Client) CreateShare(ctx context.Context, req CreateShareRequest) (string, error) {
	data, err := c.do(ctx, http.MethodPut, "share", nil, req)
	if err != nil {
		return "", err
	}
	return api.UnmarshalData[string](data)
}

// UpdateShare replaces the settings of an existing share link.
func (c *Client) UpdateShare(ctx context.Context, shareID string, req CreateShareRequest) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "share/"+url.PathEscape(shareID), nil, req)
	if err != nil {
		return "", err
	}
	return api.UnmarshalData[string](data)
}

// DeleteShare revokes a share link.
func (c *Client) DeleteShare(ctx context.Context, shareID string) error {
	_, err := c.do(ctx, http.MethodDelete, "share/"+url.PathEscape(shareID), nil, nil)
	return err
}

// ListShares fetches one page of the caller's share links.
func (c *Client) ListShares(ctx context.Context, pageSize int, nextToken string) (*ShareLinkList, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if nextToken != "" {
		query.Set("next_page_token", nextToken)
	}
	data, err := c.do(ctx, http.MethodGet, "share", query, nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[ShareLinkList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ShareInfo fetches a single share record.
func (c *Client) ShareInfo(ctx context.Context, shareID string) (*ShareLink, error) {
	data, err := c.do(ctx, http.MethodGet, "share/info/"+url.PathEscape(shareID), nil, nil)
	if err != nil {
		return nil, err
	}
	share, err := api.UnmarshalData[ShareLink](data)
	if err != nil {
		return nil, err
	}
	return &share, nil
}
