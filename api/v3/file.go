package v3

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// CreateUploadSessionRequest describes the upload about to happen.
type CreateUploadSessionRequest struct {
	Path         string `json:"path"`
	Size         uint64 `json:"size"`
	Name         string `json:"name"`
	PolicyID     string `json:"policy_id"`
	LastModified int64  `json:"last_modified,omitempty"`
}

// CreateUploadSession opens an upload session.
func (c *Client) CreateUploadSession(ctx context.Context, req CreateUploadSessionRequest) (*UploadSession, error) {
	data, err := c.do(ctx, http.MethodPut, "file/upload", req)
	if err != nil {
		return nil, err
	}
	session, err := api.UnmarshalData[UploadSession](data)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UploadChunk sends one chunk of session data. Chunks are zero-indexed.
func (c *Client) UploadChunk(ctx context.Context, sessionID string, index int, chunk []byte) error {
	endpoint := "file/upload/" + url.PathEscape(sessionID) + "/" + strconv.Itoa(index)
	_, err := c.doRaw(ctx, http.MethodPost, endpoint, chunk)
	return err
}

// FinishUpload signals upload completion. Only some storage policies expose
// this callback, so callers treat failures as best-effort.
func (c *Client) FinishUpload(ctx context.Context, sessionID string) error {
	_, err := c.do(ctx, http.MethodPost, "callback/onedrive/finish/"+url.PathEscape(sessionID), struct{}{})
	return err
}

// DownloadURL resolves a temporary direct download link for a file ID.
// Relative links are made absolute against the server base URL.
func (c *Client) DownloadURL(ctx context.Context, id string) (string, error) {
	data, err := c.do(ctx, http.MethodPut, "file/download/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	link, err := api.UnmarshalData[string](data)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(link, "/") {
		link = c.baseURL + link
	}
	return link, nil
}
