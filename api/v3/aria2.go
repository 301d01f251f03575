package v3

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type aria2URLRequest struct {
	URL string `json:"url"`
	Dst string `json:"dst"`
}

// CreateRemoteDownload submits a URL for server-side download into the
// destination directory path.
func (c *Client) CreateRemoteDownload(ctx context.Context, downloadURL, dst string) error {
	_, err := c.do(ctx, http.MethodPost, "aria2/url", aria2URLRequest{URL: downloadURL, Dst: dst})
	return err
}

// DownloadingTasks lists remote downloads still in flight.
func (c *Client) DownloadingTasks(ctx context.Context) ([]Aria2Task, error) {
	data, err := c.do(ctx, http.MethodGet, "aria2/downloading", nil)
	if err != nil {
		return nil, err
	}
	if api.IsEmptyData(data) {
		return nil, nil
	}
	return api.UnmarshalData[[]Aria2Task](data)
}

// FinishedTasks lists remote downloads that have completed or failed.
func (c *Client) FinishedTasks(ctx context.Context) ([]Aria2Task, error) {
	data, err := c.do(ctx, http.MethodGet, "aria2/finished", nil)
	if err != nil {
		return nil, err
	}
	if api.IsEmptyData(data) {
		return nil, nil
	}
	return api.UnmarshalData[[]Aria2Task](data)
}

// CancelRemoteDownload cancels an in-flight remote download.
func (c *Client) CancelRemoteDownload(ctx context.Context, gid string) error {
	_, err := c.do(ctx, http.MethodDelete, "aria2/task/"+url.PathEscape(gid), nil)
	return err
}
