package cloudreve

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	v3 "github.com/cloudrevehq/cloudreve-go/api/v3"
	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
	"github.com/cloudrevehq/cloudreve-go/utils"
)

// ListOptions selects a listing page. Zero values mean the server defaults.
// The legacy protocol has no pagination, so both fields are ignored there.
type ListOptions struct {
	Page     int
	PageSize int
}

// maxNameSample caps the sibling-name sample carried by NotFoundError.
const maxNameSample = 10

// ListFiles lists one page of a directory.
//
// Under v4 the pagination discipline is whatever the server signals on the
// first page: cursor mode means page N is reachable only by replaying the
// token chain sequentially, offset mode allows direct access.
func (c *Client) ListFiles(ctx context.Context, path string, opts ListOptions) (*FileList, error) {
	path = utils.NormalizePath(path)

	if c.v3 != nil {
		list, err := c.v3.ListDirectory(ctx, path)
		if err != nil {
			return nil, utils.WrapListError(err)
		}
		return newFileListV3(path, list), nil
	}

	list, err := c.listV4Page(ctx, path, opts)
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	return newFileListV4(path, list, list.Files), nil
}

func (c *Client) listV4Page(ctx context.Context, path string, opts ListOptions) (*v4.ListResponse, error) {
	uri := v4.PathToURI(path)

	first, err := c.v4.List(ctx, uri, v4.ListOptions{Page: 1, PageSize: opts.PageSize})
	if err != nil {
		return nil, err
	}
	if opts.Page <= 1 || first.Pagination == nil {
		return first, nil
	}

	if !first.Pagination.IsCursor {
		return c.v4.List(ctx, uri, v4.ListOptions{Page: opts.Page, PageSize: opts.PageSize})
	}

	// cursor mode: no random access, replay the token chain
	current := first
	for page := 2; page <= opts.Page; page++ {
		if current.Pagination == nil || current.Pagination.NextToken == "" {
			return &v4.ListResponse{Files: []v4.File{}, Pagination: current.Pagination}, nil
		}
		current, err = c.v4.List(ctx, uri, v4.ListOptions{PageSize: opts.PageSize, NextToken: current.Pagination.NextToken})
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// ListFilesAll lists a directory to completion, following the cursor or
// offset chain and accumulating every entry. Parent and policy metadata is
// taken from the first page. Under v3 a listing is always complete.
func (c *Client) ListFilesAll(ctx context.Context, path string) (*FileList, error) {
	path = utils.NormalizePath(path)

	if c.v3 != nil {
		list, err := c.v3.ListDirectory(ctx, path)
		if err != nil {
			return nil, utils.WrapListError(err)
		}
		return newFileListV3(path, list), nil
	}

	uri := v4.PathToURI(path)
	first, err := c.v4.List(ctx, uri, v4.ListOptions{Page: 1})
	if err != nil {
		return nil, utils.WrapListError(err)
	}

	files := append([]v4.File{}, first.Files...)
	current := first
	for page := 2; current.Pagination != nil; page++ {
		if current.Pagination.IsCursor {
			if current.Pagination.NextToken == "" {
				break
			}
			current, err = c.v4.List(ctx, uri, v4.ListOptions{NextToken: current.Pagination.NextToken})
		} else {
			if current.Pagination.TotalItems > 0 && len(files) >= current.Pagination.TotalItems {
				break
			}
			if len(current.Files) == 0 {
				break
			}
			current, err = c.v4.List(ctx, uri, v4.ListOptions{Page: page})
		}
		if err != nil {
			return nil, utils.WrapListError(err)
		}
		if len(current.Files) == 0 && (current.Pagination == nil || current.Pagination.NextToken == "") {
			break
		}
		files = append(files, current.Files...)
	}

	return newFileListV4(path, first, files), nil
}

func newFileListV3(path string, list *v3.DirectoryList) *FileList {
	files := make([]FileInfo, len(list.Objects))
	for i := range list.Objects {
		obj := &list.Objects[i]
		files[i] = newFileInfoV3(utils.JoinPath(path, obj.Name), obj)
	}
	return &FileList{path: path, files: files, v3: list}
}

func newFileListV4(path string, first *v4.ListResponse, entries []v4.File) *FileList {
	files := make([]FileInfo, len(entries))
	for i := range entries {
		f := &entries[i]
		files[i] = newFileInfoV4(utils.JoinPath(path, f.Name), f)
	}
	return &FileList{path: path, files: files, v4: first}
}

// resolveV3 resolves a path into its legacy-protocol directory entry by
// listing the parent and scanning for the leaf name. Resolution is repeated
// on every mutating call by design: entry IDs are not stable across
// listings, so caching them would trade a listing round-trip for stale-ID
// races.
func (c *Client) resolveV3(ctx context.Context, path string) (*v3.Object, *v3.DirectoryList, error) {
	dir, leaf := utils.SplitPath(path)
	if leaf == "" {
		return nil, nil, &InvalidArgumentError{Reason: "cannot resolve the root directory to an object"}
	}

	list, err := c.v3.ListDirectory(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	for i := range list.Objects {
		if list.Objects[i].Name == leaf {
			return &list.Objects[i], list, nil
		}
	}

	sample := make([]string, 0, maxNameSample)
	for i := range list.Objects {
		if i == maxNameSample {
			break
		}
		sample = append(sample, list.Objects[i].Name)
	}
	return nil, list, &NotFoundError{Path: path, Available: sample}
}

// GetFileInfo fetches the record for one file or folder.
func (c *Client) GetFileInfo(ctx context.Context, path string) (*FileInfo, error) {
	path = utils.NormalizePath(path)

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, path)
		if err != nil {
			return nil, err
		}
		info := newFileInfoV3(path, obj)
		return &info, nil
	}

	f, err := c.v4.FileInfo(ctx, v4.PathToURI(path), false)
	if err != nil {
		return nil, err
	}
	info := newFileInfoV4(path, f)
	return &info, nil
}

// CreateDirectory creates a folder at the given absolute path.
func (c *Client) CreateDirectory(ctx context.Context, path string) error {
	path = utils.NormalizePath(path)
	if utils.IsRoot(path) {
		return &InvalidArgumentError{Reason: "root directory already exists"}
	}

	if c.v3 != nil {
		return c.v3.CreateDirectory(ctx, path)
	}
	_, err := c.v4.CreateDirectory(ctx, v4.PathToURI(path))
	return err
}

// Rename gives the object at path a new leaf name.
func (c *Client) Rename(ctx context.Context, path, newName string) error {
	path = utils.NormalizePath(path)
	if utils.IsRoot(path) {
		return ErrRootImmutable
	}
	if err := utils.ValidateName(newName); err != nil {
		return &InvalidArgumentError{Reason: err.Error()}
	}

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, path)
		if err != nil {
			return utils.WrapRenameError(err)
		}
		ref := v3.NewObjectRef()
		ref.Add(obj.ID, obj.IsFolder())
		if err := c.v3.Rename(ctx, ref, newName); err != nil {
			return utils.WrapRenameError(err)
		}
		return nil
	}

	if _, err := c.v4.Rename(ctx, v4.PathToURI(path), newName); err != nil {
		return utils.WrapRenameError(err)
	}
	return nil
}

// Move relocates src to dest. When dest names a different leaf in the same
// directory the call is really a rename and is issued as one; otherwise
// dest is treated as the target directory of a cross-directory move.
func (c *Client) Move(ctx context.Context, src, dest string) error {
	src = utils.NormalizePath(src)
	dest = utils.NormalizePath(dest)
	if utils.IsRoot(src) {
		return ErrRootImmutable
	}

	srcDir, srcLeaf := utils.SplitPath(src)
	destDir, destLeaf := utils.SplitPath(dest)

	if srcDir == destDir && destLeaf != "" && destLeaf != srcLeaf {
		return c.Rename(ctx, src, destLeaf)
	}

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, src)
		if err != nil {
			return utils.WrapMoveError(err)
		}
		ref := v3.NewObjectRef()
		ref.Add(obj.ID, obj.IsFolder())
		if err := c.v3.Move(ctx, srcDir, ref, dest); err != nil {
			return utils.WrapMoveError(err)
		}
		return nil
	}

	if err := c.v4.Move(ctx, []string{v4.PathToURI(src)}, v4.PathToURI(dest)); err != nil {
		return utils.WrapMoveError(err)
	}
	return nil
}

// Copy duplicates src. Dest is treated as the target directory, except for
// a same-directory copy under a new name, which the current protocol cannot
// express in one call: that case is emulated with a temporary directory and
// a sequence of copy, rename, and move calls. The sequence has no rollback;
// a mid-sequence failure propagates and may leave the temporary directory
// behind.
func (c *Client) Copy(ctx context.Context, src, dest string) error {
	src = utils.NormalizePath(src)
	dest = utils.NormalizePath(dest)
	if utils.IsRoot(src) {
		return ErrRootImmutable
	}

	srcDir, srcLeaf := utils.SplitPath(src)
	destDir, destLeaf := utils.SplitPath(dest)
	sameDirRename := srcDir == destDir && destLeaf != "" && destLeaf != srcLeaf

	if c.v3 != nil {
		if sameDirRename {
			return c.unsupported("same-directory copy under a new name")
		}
		obj, _, err := c.resolveV3(ctx, src)
		if err != nil {
			return utils.WrapCopyError(err)
		}
		ref := v3.NewObjectRef()
		ref.Add(obj.ID, obj.IsFolder())
		if err := c.v3.Copy(ctx, srcDir, ref, dest); err != nil {
			return utils.WrapCopyError(err)
		}
		return nil
	}

	if !sameDirRename {
		if err := c.v4.Copy(ctx, []string{v4.PathToURI(src)}, v4.PathToURI(dest)); err != nil {
			return utils.WrapCopyError(err)
		}
		return nil
	}

	if err := c.copyWithRenameV4(ctx, srcDir, srcLeaf, destDir, destLeaf); err != nil {
		return utils.WrapCopyError(err)
	}
	return nil
}

// copyWithRenameV4 emulates copy-and-rename within one directory:
//
//  1. delete any existing file at the destination (probe errors mean
//     "does not exist")
//  2. create a uniquely named temporary directory
//  3. copy the source into it, name unchanged
//  4. rename the copy to an intermediate name so the move back cannot
//     collide with the source
//  5. move it into the destination directory
//  6. rename it to the final name
//  7. delete the temporary directory, best-effort
func (c *Client) copyWithRenameV4(ctx context.Context, srcDir, srcLeaf, destDir, destLeaf string) error {
	srcURI := v4.PathToURI(utils.JoinPath(srcDir, srcLeaf))
	destURI := v4.PathToURI(utils.JoinPath(destDir, destLeaf))

	if _, err := c.v4.FileInfo(ctx, destURI, false); err == nil {
		if err := c.v4.BatchDelete(ctx, []string{destURI}); err != nil {
			return err
		}
	}

	suffix := uuid.NewString()[:8]
	tempDir := utils.JoinPath(destDir, ".copy-"+suffix)
	tempDirURI := v4.PathToURI(tempDir)
	if _, err := c.v4.CreateDirectory(ctx, tempDirURI); err != nil {
		return err
	}

	if err := c.v4.Copy(ctx, []string{srcURI}, tempDirURI); err != nil {
		return err
	}

	intermediate := srcLeaf + "." + suffix
	tempCopyURI := v4.PathToURI(utils.JoinPath(tempDir, srcLeaf))
	if _, err := c.v4.Rename(ctx, tempCopyURI, intermediate); err != nil {
		return err
	}

	intermediateURI := v4.PathToURI(utils.JoinPath(tempDir, intermediate))
	if err := c.v4.Move(ctx, []string{intermediateURI}, v4.PathToURI(destDir)); err != nil {
		return err
	}

	movedURI := v4.PathToURI(utils.JoinPath(destDir, intermediate))
	if _, err := c.v4.Rename(ctx, movedURI, destLeaf); err != nil {
		return err
	}

	// cleanup is best-effort; a leaked temp directory is documented behavior
	if err := c.v4.BatchDelete(ctx, []string{tempDirURI}); err != nil {
		c.options.Logger.Debug("temp directory cleanup failed", zap.Error(err))
	}
	return nil
}

// Delete removes the object at path. Folders are removed recursively by the
// server.
func (c *Client) Delete(ctx context.Context, path string) error {
	path = utils.NormalizePath(path)
	if utils.IsRoot(path) {
		return ErrRootImmutable
	}

	if c.v3 != nil {
		obj, _, err := c.resolveV3(ctx, path)
		if err != nil {
			return utils.WrapDeleteError(err)
		}
		ref := v3.NewObjectRef()
		ref.Add(obj.ID, obj.IsFolder())
		if err := c.v3.Delete(ctx, ref, true, false); err != nil {
			return utils.WrapDeleteError(err)
		}
		return nil
	}

	if err := c.v4.Delete(ctx, v4.PathToURI(path)); err != nil {
		return utils.WrapDeleteError(err)
	}
	return nil
}

// BatchDeleteResult is one failed entry of a batch delete.
type BatchDeleteResult struct {
	Path string
	Err  error
}

// BatchDeleteReport summarizes a batch delete. The batch never aborts on a
// per-item failure; callers inspect the report instead.
type BatchDeleteReport struct {
	Succeeded []string
	Failed    []BatchDeleteResult
}

// OK reports whether every target was deleted.
func (r *BatchDeleteReport) OK() bool {
	return len(r.Failed) == 0
}

// BatchDelete removes several paths, collecting per-path failures rather
// than aborting. Under v3 targets are grouped by parent directory so each
// group costs one listing and one delete call; under v4 a single multi-URI
// call is tried first, falling back to one-by-one deletion so partial
// success stays observable.
func (c *Client) BatchDelete(ctx context.Context, paths []string) (*BatchDeleteReport, error) {
	report := &BatchDeleteReport{}

	if c.v3 != nil {
		c.batchDeleteV3(ctx, paths, report)
		return report, nil
	}

	targets := make([]string, 0, len(paths))
	for _, p := range paths {
		p = utils.NormalizePath(p)
		if utils.IsRoot(p) {
			report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: ErrRootImmutable})
			continue
		}
		targets = append(targets, p)
	}
	if len(targets) == 0 {
		return report, nil
	}

	if err := c.v4.BatchDelete(ctx, v4.PathsToURIs(targets)); err == nil {
		report.Succeeded = append(report.Succeeded, targets...)
		return report, nil
	}

	for _, p := range targets {
		if err := c.v4.Delete(ctx, v4.PathToURI(p)); err != nil {
			report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: err})
		} else {
			report.Succeeded = append(report.Succeeded, p)
		}
	}
	return report, nil
}

func (c *Client) batchDeleteV3(ctx context.Context, paths []string, report *BatchDeleteReport) {
	// group by parent so each group costs one listing and one delete
	groups := make(map[string][]string)
	order := make([]string, 0, len(paths))
	for _, p := range paths {
		p = utils.NormalizePath(p)
		if utils.IsRoot(p) {
			report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: ErrRootImmutable})
			continue
		}
		dir, _ := utils.SplitPath(p)
		if _, seen := groups[dir]; !seen {
			order = append(order, dir)
		}
		groups[dir] = append(groups[dir], p)
	}

	for _, dir := range order {
		members := groups[dir]

		list, err := c.v3.ListDirectory(ctx, dir)
		if err != nil {
			for _, p := range members {
				report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: err})
			}
			continue
		}

		byName := make(map[string]*v3.Object, len(list.Objects))
		for i := range list.Objects {
			byName[list.Objects[i].Name] = &list.Objects[i]
		}

		ref := v3.NewObjectRef()
		resolved := make([]string, 0, len(members))
		for _, p := range members {
			_, leaf := utils.SplitPath(p)
			obj, ok := byName[leaf]
			if !ok {
				report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: &NotFoundError{Path: p}})
				continue
			}
			ref.Add(obj.ID, obj.IsFolder())
			resolved = append(resolved, p)
		}
		if ref.Empty() {
			continue
		}

		if err := c.v3.Delete(ctx, ref, true, false); err != nil {
			for _, p := range resolved {
				report.Failed = append(report.Failed, BatchDeleteResult{Path: p, Err: err})
			}
			continue
		}
		report.Succeeded = append(report.Succeeded, resolved...)
	}
}

// Restore brings a soft-deleted object back from the trash. The legacy
// protocol deletes hard and has nothing to restore.
func (c *Client) Restore(ctx context.Context, paths ...string) error {
	if c.v3 != nil {
		return c.unsupported("restore from trash")
	}
	normalized := make([]string, len(paths))
	for i, p := range paths {
		normalized[i] = utils.NormalizePath(p)
	}
	return c.v4.Restore(ctx, v4.PathsToURIs(normalized))
}
