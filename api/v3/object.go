package v3

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// ObjectRef partitions mutation targets the way the protocol requires:
// folder IDs and file IDs travel in disjoint lists.
type ObjectRef struct {
	Dirs  []string `json:"dirs"`
	Items []string `json:"items"`
}

// NewObjectRef returns a ref whose partitions serialize as empty arrays
// rather than null, which some server builds reject.
func NewObjectRef() ObjectRef {
	return ObjectRef{Dirs: []string{}, Items: []string{}}
}

// Add appends an ID to the matching partition.
func (r *ObjectRef) Add(id string, isFolder bool) {
	if isFolder {
		r.Dirs = append(r.Dirs, id)
	} else {
		r.Items = append(r.Items, id)
	}
}

// Empty reports whether the ref holds no IDs at all.
func (r *ObjectRef) Empty() bool {
	return len(r.Dirs) == 0 && len(r.Items) == 0
}

// ObjectProperty fetches extended metadata for one object.
func (c *Client) ObjectProperty(ctx context.Context, id string, isFolder, traceRoot bool) (*Object, error) {
	query := url.Values{}
	query.Set("is_folder", strconv.FormatBool(isFolder))
	query.Set("trace_root", strconv.FormatBool(traceRoot))
	data, err := c.do(ctx, http.MethodGet, "object/property/"+url.PathEscape(id)+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	obj, err := api.UnmarshalData[Object](data)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

type renameRequest struct {
	Action  string    `json:"action"`
	Src     ObjectRef `json:"src"`
	NewName string    `json:"new_name"`
}

// Rename gives one object a new name.
func (c *Client) Rename(ctx context.Context, src ObjectRef, newName string) error {
	_, err := c.do(ctx, http.MethodPost, "object/rename", renameRequest{Action: "rename", Src: src, NewName: newName})
	return err
}

type moveRequest struct {
	Action string    `json:"action"`
	SrcDir string    `json:"src_dir"`
	Src    ObjectRef `json:"src"`
	Dst    string    `json:"dst"`
}

// Move relocates objects from srcDir into the destination directory path.
func (c *Client) Move(ctx context.Context, srcDir string, src ObjectRef, dst string) error {
	_, err := c.do(ctx, http.MethodPatch, "object", moveRequest{Action: "move", SrcDir: srcDir, Src: src, Dst: dst})
	return err
}

type copyRequest struct {
	SrcDir string    `json:"src_dir"`
	Src    ObjectRef `json:"src"`
	Dst    string    `json:"dst"`
}

// Copy duplicates objects from srcDir into the destination directory path.
func (c *Client) Copy(ctx context.Context, srcDir string, src ObjectRef, dst string) error {
	_, err := c.do(ctx, http.MethodPost, "object/copy", copyRequest{SrcDir: srcDir, Src: src, Dst: dst})
	return err
}

type deleteRequest struct {
	Items  []string `json:"items"`
	Dirs   []string `json:"dirs"`
	Force  bool     `json:"force"`
	Unlink bool     `json:"unlink"`
}

// Delete removes objects. Force bypasses the trash; Unlink removes only the
// reference while keeping the stored blob.
func (c *Client) Delete(ctx context.Context, src ObjectRef, force, unlink bool) error {
	req := deleteRequest{Items: src.Items, Dirs: src.Dirs, Force: force, Unlink: unlink}
	if req.Items == nil {
		req.Items = []string{}
	}
	if req.Dirs == nil {
		req.Dirs = []string{}
	}
	_, err := c.do(ctx, http.MethodDelete, "object", req)
	return err
}
