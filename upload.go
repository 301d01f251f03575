package cloudreve

import (
	"context"
	"time"

	"go.uber.org/zap"

	v3 "github.com/cloudrevehq/cloudreve-go/api/v3"
	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// Upload writes content to the given absolute path, creating or replacing
// the file. policyID selects a storage policy; when empty, the policy of
// the destination directory is used.
func (c *Client) Upload(ctx context.Context, path string, content []byte, policyID string) error {
	path = utils.NormalizePath(path)
	if utils.IsRoot(path) {
		return &InvalidArgumentError{Reason: "upload target must be a file path"}
	}

	if c.v3 != nil {
		if err := c.uploadV3(ctx, path, content, policyID); err != nil {
			return utils.WrapUploadError(err)
		}
		return nil
	}
	if err := c.uploadV4(ctx, path, content, policyID); err != nil {
		return utils.WrapUploadError(err)
	}
	return nil
}

func (c *Client) uploadV3(ctx context.Context, path string, content []byte, policyID string) error {
	dir, leaf := utils.SplitPath(path)

	if policyID == "" {
		list, err := c.v3.ListDirectory(ctx, dir)
		if err != nil {
			return err
		}
		if list.Policy != nil {
			policyID = list.Policy.ID
		}
	}

	session, err := c.v3.CreateUploadSession(ctx, v3.CreateUploadSessionRequest{
		Path:         dir,
		Size:         uint64(len(content)),
		Name:         leaf,
		PolicyID:     policyID,
		LastModified: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	// the legacy protocol takes the whole payload as chunk zero
	if err := c.v3.UploadChunk(ctx, session.SessionID, 0, content); err != nil {
		return err
	}

	// only some storage policies expose the finish callback; its absence
	// is not a failed upload
	if err := c.v3.FinishUpload(ctx, session.SessionID); err != nil {
		c.options.Logger.Debug("finish-upload callback declined", zap.Error(err))
	}
	return nil
}

func (c *Client) uploadV4(ctx context.Context, path string, content []byte, policyID string) error {
	dir, _ := utils.SplitPath(path)
	uri := v4.PathToURI(path)

	if policyID == "" {
		list, err := c.v4.List(ctx, v4.PathToURI(dir), v4.ListOptions{PageSize: 1})
		if err != nil {
			return err
		}
		if list.StoragePolicy != nil {
			policyID = list.StoragePolicy.ID
		}
	}

	session, err := c.v4.CreateUploadSession(ctx, v4.CreateUploadSessionRequest{
		URI:          uri,
		Size:         uint64(len(content)),
		PolicyID:     policyID,
		LastModified: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	chunks := session.TotalChunks(uint64(len(content)))
	for i := 0; i < chunks; i++ {
		start := uint64(i) * session.ChunkSize
		end := uint64(len(content))
		if session.ChunkSize > 0 && start+session.ChunkSize < end {
			end = start + session.ChunkSize
		}
		if err := c.v4.UploadChunk(ctx, session.SessionID, i, content[start:end]); err != nil {
			// the session is dead at this point, abandon it server-side
			if delErr := c.v4.DeleteUploadSession(ctx, session.SessionID, uri); delErr != nil {
				c.options.Logger.Debug("upload session cleanup failed", zap.Error(delErr))
			}
			return err
		}
	}
	return nil
}

// Download resolves a direct download URL for the file at path. The URL is
// short-lived; fetching the bytes is left to the caller.
func (c *Client) Download(ctx context.Context, path string) (string, error) {
	path = utils.NormalizePath(path)

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, path)
		if err != nil {
			return "", utils.WrapDownloadError(err)
		}
		if obj.IsFolder() {
			return "", utils.WrapDownloadError(&InvalidArgumentError{Reason: "cannot download a directory"})
		}
		link, err := c.v3.DownloadURL(ctx, obj.ID)
		if err != nil {
			return "", utils.WrapDownloadError(err)
		}
		return link, nil
	}

	list, err := c.v4.DownloadURLs(ctx, []string{v4.PathToURI(path)})
	if err != nil {
		return "", utils.WrapDownloadError(err)
	}
	if len(list.URLs) == 0 || list.URLs[0].URL == "" {
		return "", utils.WrapDownloadError(ErrNoDownloadURL)
	}
	return list.URLs[0].URL, nil
}
