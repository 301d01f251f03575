package v4

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// ListOptions selects a listing page. Exactly one of Page or NextToken is
// meaningful depending on the pagination mode the server reports.
type ListOptions struct {
	Page           int
	PageSize       int
	OrderBy        string
	OrderDirection string
	NextToken      string
}

// List fetches one page of a directory listing.
func (c *Client) List(ctx context.Context, uri string, opts ListOptions) (*ListResponse, error) {
	query := url.Values{}
	query.Set("uri", uri)
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.NextToken != "" {
		query.Set("next_page_token", opts.NextToken)
	} else if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.OrderBy != "" {
		query.Set("order_by", opts.OrderBy)
	}
	if opts.OrderDirection != "" {
		query.Set("order_direction", opts.OrderDirection)
	}

	data, err := c.do(ctx, http.MethodGet, "file", query, nil)
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[ListResponse](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// FileInfo fetches the record for a single file or folder.
func (c *Client) FileInfo(ctx context.Context, uri string, extended bool) (*File, error) {
	query := url.Values{}
	query.Set("uri", uri)
	if extended {
		query.Set("extended", "true")
	}
	data, err := c.do(ctx, http.MethodGet, "file/info", query, nil)
	if err != nil {
		return nil, err
	}
	f, err := api.UnmarshalData[File](data)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

type createFileRequest struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

// CreateDirectory creates a folder at the given URI.
func (c *Client) CreateDirectory(ctx context.Context, uri string) (*File, error) {
	data, err := c.do(ctx, http.MethodPost, "file/create", nil, createFileRequest{URI: uri, Type: "folder"})
	if err != nil {
		return nil, err
	}
	// some server builds return the created record, some return nothing
	if api.IsEmptyData(data) {
		return nil, nil
	}
	f, err := api.UnmarshalData[File](data)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

type moveRequest struct {
	URIs []string `json:"uris"`
	Dst  string   `json:"dst"`
	Copy bool     `json:"copy,omitempty"`
}

// Move relocates resources into the destination directory URI.
func (c *Client) Move(ctx context.Context, uris []string, dstDirURI string) error {
	_, err := c.do(ctx, http.MethodPost, "file/move", nil, moveRequest{URIs: uris, Dst: dstDirURI})
	return err
}

// Copy duplicates resources into the destination directory URI, keeping
// their names. Copy-and-rename in one call is not supported by the server.
func (c *Client) Copy(ctx context.Context, uris []string, dstDirURI string) error {
	_, err := c.do(ctx, http.MethodPost, "file/move", nil, moveRequest{URIs: uris, Dst: dstDirURI, Copy: true})
	return err
}

type renameRequest struct {
	URIs  []string `json:"uris"`
	Names []string `json:"names"`
}

// Rename gives a resource a new leaf name within its directory.
func (c *Client) Rename(ctx context.Context, uri, newName string) (*File, error) {
	data, err := c.do(ctx, http.MethodPost, "file/rename", nil, renameRequest{URIs: []string{uri}, Names: []string{newName}})
	if err != nil {
		return nil, err
	}
	if api.IsEmptyData(data) {
		return nil, nil
	}
	f, err := api.UnmarshalData[File](data)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

type deleteRequest struct {
	URIs           []string `json:"uris"`
	UnlinkOnly     bool     `json:"unlink,omitempty"`
	SkipSoftDelete bool     `json:"skip_soft_delete,omitempty"`
}

// Delete removes one resource.
func (c *Client) Delete(ctx context.Context, uri string) error {
	return c.BatchDelete(ctx, []string{uri})
}

// BatchDelete removes several resources in one call.
func (c *Client) BatchDelete(ctx context.Context, uris []string) error {
	_, err := c.do(ctx, http.MethodDelete, "file", nil, deleteRequest{URIs: uris, SkipSoftDelete: true})
	return err
}

type restoreRequest struct {
	URIs []string `json:"uris"`
}

// Restore brings soft-deleted resources back from the trash.
func (c *Client) Restore(ctx context.Context, uris []string) error {
	_, err := c.do(ctx, http.MethodPost, "file/restore", nil, restoreRequest{URIs: uris})
	return err
}

type downloadURLRequest struct {
	URIs     []string `json:"uris"`
	Download bool     `json:"download"`
	Redirect bool     `json:"redirect,omitempty"`
	Archive  bool     `json:"archive,omitempty"`
	NoCache  bool     `json:"no_cache,omitempty"`
}

// DownloadURLs resolves direct download links for the given resources.
func (c *Client) DownloadURLs(ctx context.Context, uris []string) (*DownloadURLList, error) {
	data, err := c.do(ctx, http.MethodPost, "file/url", nil, downloadURLRequest{URIs: uris, Download: true})
	if err != nil {
		return nil, err
	}
	list, err := api.UnmarshalData[DownloadURLList](data)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateUploadSessionRequest describes the upload about to happen.
type CreateUploadSessionRequest struct {
	URI          string `json:"uri"`
	Size         uint64 `json:"size"`
	PolicyID     string `json:"policy_id,omitempty"`
	LastModified int64  `json:"last_modified,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
}

// CreateUploadSession opens a chunked upload session.
func (c *Client) CreateUploadSession(ctx context.Context, req CreateUploadSessionRequest) (*UploadSession, error) {
	data, err := c.do(ctx, http.MethodPut, "file/upload", nil, req)
	if err != nil {
		return nil, err
	}
	session, err := api.UnmarshalData[UploadSession](data)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UploadChunk sends one chunk of session data. Chunks are zero-indexed and
// must be sent sequentially.
func (c *Client) UploadChunk(ctx context.Context, sessionID string, index int, chunk []byte) error {
	endpoint := "file/upload/" + url.PathEscape(sessionID) + "/" + strconv.Itoa(index)
	_, err := c.doRaw(ctx, http.MethodPost, endpoint, chunk)
	return err
}

type deleteUploadSessionRequest struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}

// DeleteUploadSession abandons an open upload session.
func (c *Client) DeleteUploadSession(ctx context.Context, sessionID, uri string) error {
	_, err := c.do(ctx, http.MethodDelete, "file/upload", nil, deleteUploadSessionRequest{ID: sessionID, URI: uri})
	return err
}
