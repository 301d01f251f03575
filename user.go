package cloudreve

import (
	"context"
)

// GetStorageQuota returns the account storage quota. The current protocol
// reports only used and total, so free space is derived.
func (c *Client) GetStorageQuota(ctx context.Context) (*Quota, error) {
	if c.v3 != nil {
		storage, err := c.v3.Storage(ctx)
		if err != nil {
			return nil, err
		}
		return &Quota{Used: storage.Used, Free: storage.Free, Total: storage.Total}, nil
	}

	capacity, err := c.v4.Capacity(ctx)
	if err != nil {
		return nil, err
	}
	free := uint64(0)
	if capacity.Total > capacity.Used {
		free = capacity.Total - capacity.Used
	}
	return &Quota{Used: capacity.Used, Free: free, Total: capacity.Total}, nil
}

// GetUserInfo returns the current account record.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	if c.v3 != nil {
		user, err := c.v3.Me(ctx)
		if err != nil {
			return nil, err
		}
		return &UserInfo{v3: user}, nil
	}

	user, err := c.v4.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &UserInfo{v4: user}, nil
}

// GetSiteConfig returns the public site configuration. The current protocol
// serves it per section ("basic", "login", ...) as raw JSON; the legacy
// protocol serves one typed document and ignores the section argument.
func (c *Client) GetSiteConfig(ctx context.Context, section string) (*SiteConfig, error) {
	if c.v3 != nil {
		config, err := c.v3.SiteConfig(ctx)
		if err != nil {
			return nil, err
		}
		return &SiteConfig{V3: config}, nil
	}

	if section == "" {
		section = "basic"
	}
	raw, err := c.v4.SiteConfig(ctx, section)
	if err != nil {
		return nil, err
	}
	return &SiteConfig{V4: raw}, nil
}
