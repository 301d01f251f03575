package cloudreve

import (
	"context"
	"strconv"

	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// ListDavAccounts returns the account's WebDAV credentials.
func (c *Client) ListDavAccounts(ctx context.Context) ([]DavAccount, error) {
	if c.v3 != nil {
		list, err := c.v3.WebdavAccounts(ctx)
		if err != nil {
			return nil, err
		}
		accounts := make([]DavAccount, len(list.Accounts))
		for i, a := range list.Accounts {
			accounts[i] = DavAccount{
				ID:        strconv.FormatUint(uint64(a.ID), 10),
				Name:      a.Name,
				Root:      a.Root,
				Password:  a.Password,
				CreatedAt: a.CreatedAt,
			}
		}
		return accounts, nil
	}

	var accounts []DavAccount
	nextToken := ""
	for {
		page, err := c.v4.ListDavAccounts(ctx, 0, nextToken)
		if err != nil {
			return nil, err
		}
		for _, a := range page.Accounts {
			root, err := v4.URIToPath(a.URI)
			if err != nil {
				root = a.URI
			}
			accounts = append(accounts, DavAccount{
				ID:        a.ID,
				Name:      a.Name,
				Root:      root,
				Password:  a.Password,
				CreatedAt: a.CreatedAt,
			})
		}
		if page.Pagination == nil || page.Pagination.NextToken == "" {
			break
		}
		nextToken = page.Pagination.NextToken
	}
	return accounts, nil
}

// CreateDavAccount creates a WebDAV credential rooted at the given path.
// The legacy protocol only exposes reads for these.
func (c *Client) CreateDavAccount(ctx context.Context, name, root string) (*DavAccount, error) {
	if c.v4 == nil {
		return nil, c.unsupported("webdav account creation")
	}
	account, err := c.v4.CreateDavAccount(ctx, v4.DavAccountRequest{
		Name: name,
		URI:  v4.PathToURI(utils.NormalizePath(root)),
	})
	if err != nil {
		return nil, err
	}
	return davAccountFromV4(account), nil
}

// UpdateDavAccount renames or re-roots a WebDAV credential. The protocol
// treats updates as full rewrites, so unset fields are filled from the
// current record first.
func (c *Client) UpdateDavAccount(ctx context.Context, accountID, name, root string) (*DavAccount, error) {
	if c.v4 == nil {
		return nil, c.unsupported("webdav account update")
	}

	current, err := c.findDavAccountV4(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}
	uri := current.URI
	if root != "" {
		uri = v4.PathToURI(utils.NormalizePath(root))
	}

	account, err := c.v4.UpdateDavAccount(ctx, accountID, v4.DavAccountRequest{
		Name:    name,
		URI:     uri,
		Options: current.Options,
	})
	if err != nil {
		return nil, err
	}
	return davAccountFromV4(account), nil
}

// DeleteDavAccount revokes a WebDAV credential.
func (c *Client) DeleteDavAccount(ctx context.Context, accountID string) error {
	if c.v4 == nil {
		return c.unsupported("webdav account deletion")
	}
	return c.v4.DeleteDavAccount(ctx, accountID)
}

func (c *Client) findDavAccountV4(ctx context.Context, accountID string) (*v4.DavAccount, error) {
	nextToken := ""
	for {
		page, err := c.v4.ListDavAccounts(ctx, 0, nextToken)
		if err != nil {
			return nil, err
		}
		for i := range page.Accounts {
			if page.Accounts[i].ID == accountID {
				return &page.Accounts[i], nil
			}
		}
		if page.Pagination == nil || page.Pagination.NextToken == "" {
			return nil, &NotFoundError{Path: "webdav account " + accountID}
		}
		nextToken = page.Pagination.NextToken
	}
}

func davAccountFromV4(a *v4.DavAccount) *DavAccount {
	root, err := v4.URIToPath(a.URI)
	if err != nil {
		root = a.URI
	}
	return &DavAccount{
		ID:        a.ID,
		Name:      a.Name,
		Root:      root,
		Password:  a.Password,
		CreatedAt: a.CreatedAt,
	}
}
