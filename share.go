package cloudreve

import (
	"context"

	v3 "github.com/cloudrevehq/cloudreve-go/api/v3"
	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// ShareOptions controls share link creation and updates. Zero values mean a
// public, non-expiring link with unlimited downloads.
type ShareOptions struct {
	Password  string
	Expire    int64 // seconds until expiry
	Downloads int   // remaining download count
	Preview   bool  // allow in-browser preview under the legacy protocol
}

// CreateShare publishes the object at path as a share link.
func (c *Client) CreateShare(ctx context.Context, path string, opts ShareOptions) (*ShareItem, error) {
	path = utils.NormalizePath(path)

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, path)
		if err != nil {
			return nil, err
		}
		link, err := c.v3.CreateShare(ctx, v3.CreateShareRequest{
			ID:        obj.ID,
			IsDir:     obj.IsFolder(),
			Password:  opts.Password,
			Downloads: opts.Downloads,
			Expire:    opts.Expire,
			Preview:   opts.Preview,
		})
		if err != nil {
			return nil, err
		}
		return &ShareItem{url: link}, nil
	}

	link, err := c.v4.CreateShare(ctx, v4.CreateShareRequest{
		URI:             v4.PathToURI(path),
		IsPrivate:       opts.Password != "",
		Password:        opts.Password,
		RemainDownloads: opts.Downloads,
		Expire:          opts.Expire,
	})
	if err != nil {
		return nil, err
	}
	return &ShareItem{url: link}, nil
}

// ListShares returns every share link of the account. The legacy protocol
// exposes no listing endpoint for the account's shares, so the result is
// empty there rather than an error.
func (c *Client) ListShares(ctx context.Context) ([]ShareItem, error) {
	if c.v3 != nil {
		return nil, nil
	}

	var shares []ShareItem
	nextToken := ""
	for {
		page, err := c.v4.ListShares(ctx, 0, nextToken)
		if err != nil {
			return nil, err
		}
		for i := range page.Shares {
			shares = append(shares, ShareItem{v4: &page.Shares[i]})
		}
		if page.Pagination == nil || page.Pagination.NextToken == "" {
			break
		}
		nextToken = page.Pagination.NextToken
	}
	return shares, nil
}

// GetShareInfo fetches a single share record by ID.
func (c *Client) GetShareInfo(ctx context.Context, shareID string) (*ShareItem, error) {
	if c.v4 == nil {
		return nil, c.unsupported("share lookup")
	}
	share, err := c.v4.ShareInfo(ctx, shareID)
	if err != nil {
		return nil, err
	}
	return &ShareItem{v4: share}, nil
}

// UpdateShare replaces the settings of an existing share link. Requires the
// shared path because the current protocol treats updates as full rewrites.
func (c *Client) UpdateShare(ctx context.Context, shareID, path string, opts ShareOptions) (*ShareItem, error) {
	if c.v4 == nil {
		return nil, c.unsupported("share update")
	}
	link, err := c.v4.UpdateShare(ctx, shareID, v4.CreateShareRequest{
		URI:             v4.PathToURI(utils.NormalizePath(path)),
		IsPrivate:       opts.Password != "",
		Password:        opts.Password,
		RemainDownloads: opts.Downloads,
		Expire:          opts.Expire,
	})
	if err != nil {
		return nil, err
	}
	return &ShareItem{url: link}, nil
}

// DeleteShare revokes a share link.
func (c *Client) DeleteShare(ctx context.Context, shareID string) error {
	if c.v4 == nil {
		return c.unsupported("share deletion")
	}
	return c.v4.DeleteShare(ctx, shareID)
}
