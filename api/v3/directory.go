package v3

import (
	"context"
	"net/http"

	"github.com/cloudrevehq/cloudreve-go/api"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// ListDirectory lists the contents of the directory at the given absolute
// path. This is the only read that resolves paths server-side; everything
// mutating needs object IDs taken from the listing it returns.
func (c *Client) ListDirectory(ctx context.Context, path string) (*DirectoryList, error) {
	path = utils.NormalizePath(path)
	endpoint := "directory" + escapePath(path)
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[DirectoryList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

type createDirectoryRequest struct {
	Path string `json:"path"`
}

// CreateDirectory creates a folder at the given absolute path. Parent
// directories must already exist.
func (c *Client) CreateDirectory(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodPut, "directory", createDirectoryRequest{Path: utils.NormalizePath(path)})
	return err
}
