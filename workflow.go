package cloudreve

import (
	"context"

	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// CreateRemoteDownload asks the server to download the given URLs into the
// destination directory. The current protocol returns the created tasks;
// the legacy protocol acknowledges without task records, so the result may
// be empty even on success.
func (c *Client) CreateRemoteDownload(ctx context.Context, urls []string, destDir string) ([]Task, error) {
	destDir = utils.NormalizePath(destDir)

	if c.v3 != nil {
		for _, u := range urls {
			if err := c.v3.CreateRemoteDownload(ctx, u, destDir); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	created, err := c.v4.CreateRemoteDownload(ctx, urls, v4.PathToURI(destDir))
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, len(created))
	for i := range created {
		tasks[i] = Task{v4: &created[i]}
	}
	return tasks, nil
}

// ListTasks returns the account's background tasks. Category filters the
// current protocol's queue ("general", "downloading", ...); the legacy
// protocol only has remote downloads, reported as in-flight plus finished.
func (c *Client) ListTasks(ctx context.Context, category string) ([]Task, error) {
	if c.v3 != nil {
		downloading, err := c.v3.DownloadingTasks(ctx)
		if err != nil {
			return nil, err
		}
		finished, err := c.v3.FinishedTasks(ctx)
		if err != nil {
			return nil, err
		}
		tasks := make([]Task, 0, len(downloading)+len(finished))
		for i := range downloading {
			tasks = append(tasks, Task{v3: &downloading[i]})
		}
		for i := range finished {
			tasks = append(tasks, Task{v3: &finished[i]})
		}
		return tasks, nil
	}

	var tasks []Task
	nextToken := ""
	for {
		page, err := c.v4.ListTasks(ctx, 0, category, nextToken)
		if err != nil {
			return nil, err
		}
		for i := range page.Tasks {
			tasks = append(tasks, Task{v4: &page.Tasks[i]})
		}
		if page.Pagination == nil || page.Pagination.NextToken == "" {
			break
		}
		nextToken = page.Pagination.NextToken
	}
	return tasks, nil
}

// GetTaskProgress returns the completion counters for one task. The facade
// never polls; callers decide whether and how often to ask.
func (c *Client) GetTaskProgress(ctx context.Context, taskID string) (*v4.TaskProgress, error) {
	if c.v4 == nil {
		return nil, c.unsupported("task progress lookup")
	}
	return c.v4.TaskProgress(ctx, taskID)
}

// CancelRemoteDownload cancels an in-flight remote download task.
func (c *Client) CancelRemoteDownload(ctx context.Context, taskID string) error {
	if c.v3 != nil {
		return c.v3.CancelRemoteDownload(ctx, taskID)
	}
	return c.v4.CancelRemoteDownload(ctx, taskID)
}

// SelectDownloadFiles narrows a torrent download task to the given files.
func (c *Client) SelectDownloadFiles(ctx context.Context, taskID string, files []string) error {
	if c.v4 == nil {
		return c.unsupported("download file selection")
	}
	return c.v4.SelectDownloadFiles(ctx, taskID, files)
}

// CreateArchive asks the server to compress the given paths into an archive
// file at destPath.
func (c *Client) CreateArchive(ctx context.Context, paths []string, destPath string) (*Task, error) {
	if c.v4 == nil {
		return nil, c.unsupported("server-side archiving")
	}
	normalized := make([]string, len(paths))
	for i, p := range paths {
		normalized[i] = utils.NormalizePath(p)
	}
	task, err := c.v4.CreateArchive(ctx, v4.PathsToURIs(normalized), v4.PathToURI(utils.NormalizePath(destPath)))
	if err != nil {
		return nil, err
	}
	return &Task{v4: task}, nil
}

// ExtractArchive asks the server to extract the archive at srcPath into the
// destination directory.
func (c *Client) ExtractArchive(ctx context.Context, srcPath, destDir string) (*Task, error) {
	if c.v4 == nil {
		return nil, c.unsupported("server-side extraction")
	}
	task, err := c.v4.ExtractArchive(ctx, v4.PathToURI(utils.NormalizePath(srcPath)), v4.PathToURI(utils.NormalizePath(destDir)))
	if err != nil {
		return nil, err
	}
	return &Task{v4: task}, nil
}
