package v4

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// ListTasks fetches one page of background tasks. Category filters by task
// group, e.g. "general" or "downloading"; empty means all.
func (c *Client) ListTasks(ctx context.Context, pageSize int, category, nextToken string) (*TaskList, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if category != "" {
		query.Set("category", category)
	}
	if nextToken != "" {
		query.Set("next_page_token", nextToken)
	}
	data, err := c.do(ctx, http.MethodGet, "workflow", query, nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[TaskList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// TaskProgress fetches the completion counters for one task. Callers poll
// this themselves; the client never waits on task completion.
func (c *Client) TaskProgress(ctx context.Context, taskID string) (*TaskProgress, error) {
	data, err := c.do(ctx, http.MethodGet, "workflow/progress/"+url.PathEscape(taskID), nil, nil)
	if err != nil {
		return nil, err
	}
	progress, err := api.UnmarshalData[TaskProgress](data)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

type remoteDownloadRequest struct {
	Src []string `json:"src,omitempty"`
	Dst string   `json:"dst"`
}

// CreateRemoteDownload submits URLs for server-side download into the
// destination directory URI and returns the created tasks.
func (c *Client) CreateRemoteDownload(ctx context.Context, urls []string, dstDirURI string) ([]Task, error) {
	data, err := c.do(ctx, http.MethodPost, "workflow/download", nil, remoteDownloadRequest{Src: urls, Dst: dstDirURI})
	if err != nil {
		return nil, err
	}
	return api.UnmarshalData[[]Task](data)
}

type selectFilesRequest struct {
	Files []string `json:"files"`
}

// SelectDownloadFiles narrows a torrent download task to the given file
// indexes.
func (c *Client) SelectDownloadFiles(ctx context.Context, taskID string, files []string) error {
	_, err := c.do(ctx, http.MethodPatch, "workflow/download/"+url.PathEscape(taskID), nil, selectFilesRequest{Files: files})
	return err
}

// CancelRemoteDownload cancels an in-flight remote download task.
func (c *Client) CancelRemoteDownload(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodDelete, "workflow/download/"+url.PathEscape(taskID), nil, nil)
	return err
}

type archiveRequest struct {
	Src []string `json:"src"`
	Dst string   `json:"dst"`
}

// CreateArchive asks the server to compress the given resources into an
// archive at the destination URI and returns the task.
func (c *Client) CreateArchive(ctx context.Context, srcURIs []string, dstURI string) (*Task, error) {
	data, err := c.do(ctx, http.MethodPost, "workflow/archive", nil, archiveRequest{Src: srcURIs, Dst: dstURI})
	if err != nil {
		return nil, err
	}
	task, err := api.UnmarshalData[Task](data)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ExtractArchive asks the server to extract an archive into the destination
// directory URI and returns the task.
func (c *Client) ExtractArchive(ctx context.Context, srcURI, dstDirURI string) (*Task, error) {
	data, err := c.do(ctx, http.MethodPost, "workflow/extract", nil, archiveRequest{Src: []string{srcURI}, Dst: dstDirURI})
	if err != nil {
		return nil, err
	}
	task, err := api.UnmarshalData[Task](data)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
