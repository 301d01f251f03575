package cloudreve

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudrevehq/cloudreve-go/api"
	v3 "github.com/cloudrevehq/cloudreve-go/api/v3"
	v4 "github.com/cloudrevehq/cloudreve-go/api/v4"
)

// FileInfo is the unified view of one file or folder. Exactly one of the
// underlying records is set, matching the protocol version the client is
// bound to; the accessors normalize value representation across the two.
type FileInfo struct {
	path string
	v3   *v3.Object
	v4   *v4.File
}

func newFileInfoV3(path string, obj *v3.Object) FileInfo {
	return FileInfo{path: path, v3: obj}
}

func newFileInfoV4(path string, f *v4.File) FileInfo {
	return FileInfo{path: path, v4: f}
}

// Name returns the leaf name.
func (f FileInfo) Name() string {
	if f.v3 != nil {
		return f.v3.Name
	}
	return f.v4.Name
}

// Size returns the byte size.
func (f FileInfo) Size() uint64 {
	if f.v3 != nil {
		return f.v3.Size
	}
	return f.v4.Size
}

// IsFolder reports whether the entry is a folder.
func (f FileInfo) IsFolder() bool {
	if f.v3 != nil {
		return f.v3.IsFolder()
	}
	return f.v4.IsFolder()
}

// ID returns the server-assigned identifier. Under the legacy protocol this
// is the only valid mutation handle and is not stable across listings.
func (f FileInfo) ID() string {
	if f.v3 != nil {
		return f.v3.ID
	}
	return f.v4.ID
}

// Path returns the absolute path the entry was resolved from.
func (f FileInfo) Path() string {
	return f.path
}

// UpdatedAt returns the last-modified timestamp string as reported by the
// server; its format differs between protocol versions.
func (f FileInfo) UpdatedAt() string {
	if f.v3 != nil {
		return f.v3.Date
	}
	return f.v4.UpdatedAt
}

// V3 returns the underlying legacy record, or nil.
func (f FileInfo) V3() *v3.Object { return f.v3 }

// V4 returns the underlying current-protocol record, or nil.
func (f FileInfo) V4() *v4.File { return f.v4 }

// FileList is the unified view of a directory listing.
type FileList struct {
	path  string
	files []FileInfo
	v3    *v3.DirectoryList
	v4    *v4.ListResponse
}

// Path returns the listed directory's absolute path.
func (l *FileList) Path() string { return l.path }

// Files returns the listing entries.
func (l *FileList) Files() []FileInfo { return l.files }

// Pagination returns the pagination block of the underlying page, or nil:
// the legacy protocol has no pagination.
func (l *FileList) Pagination() *v4.Pagination {
	if l.v4 != nil {
		return l.v4.Pagination
	}
	return nil
}

// PolicyID returns the storage policy governing the directory, if reported.
func (l *FileList) PolicyID() string {
	if l.v3 != nil && l.v3.Policy != nil {
		return l.v3.Policy.ID
	}
	if l.v4 != nil && l.v4.StoragePolicy != nil {
		return l.v4.StoragePolicy.ID
	}
	return ""
}

// V3 returns the underlying legacy listing, or nil.
func (l *FileList) V3() *v3.DirectoryList { return l.v3 }

// V4 returns the underlying current-protocol page, or nil. For an
// accumulated fetch-all listing this is the first page, which is the one
// whose parent and policy metadata is retained.
func (l *FileList) V4() *v4.ListResponse { return l.v4 }

// LoginResponse is the unified view of a successful login.
type LoginResponse struct {
	v3 *v3.User
	v4 *v4.LoginData
}

// UserID returns the account identifier.
func (r *LoginResponse) UserID() string {
	if r.v3 != nil {
		return r.v3.ID
	}
	return r.v4.User.ID
}

// Nickname returns the display name.
func (r *LoginResponse) Nickname() string {
	if r.v3 != nil {
		return r.v3.Nickname
	}
	return r.v4.User.Nickname
}

// V3 returns the underlying legacy user record, or nil.
func (r *LoginResponse) V3() *v3.User { return r.v3 }

// V4 returns the underlying current-protocol login payload, or nil.
func (r *LoginResponse) V4() *v4.LoginData { return r.v4 }

// TokenInfo carries the credential in whichever form the active protocol
// uses, for external persistence between runs.
type TokenInfo struct {
	Version       api.Version `json:"version"`
	SessionCookie string      `json:"session_cookie,omitempty"`
	AccessToken   string      `json:"access_token,omitempty"`
	RefreshToken  string      `json:"refresh_token,omitempty"`
}

// ExpiresAt reports when the v4 access token expires, read from the token's
// exp claim without signature verification. The second return is false for
// session cookies and tokens without an expiry claim.
func (t TokenInfo) ExpiresAt() (time.Time, bool) {
	if t.AccessToken == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(t.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ShareItem is the unified view of one share link. The legacy protocol only
// reports the URL at creation time; the current protocol carries a full
// record.
type ShareItem struct {
	url string
	v4  *v4.ShareLink
}

// URL returns the public share URL.
func (s ShareItem) URL() string {
	if s.v4 != nil && s.v4.URL != "" {
		return s.v4.URL
	}
	return s.url
}

// ID returns the share identifier, when the protocol reports one.
func (s ShareItem) ID() string {
	if s.v4 != nil {
		return s.v4.ID
	}
	return ""
}

// Name returns the shared object's name, when the protocol reports one.
func (s ShareItem) Name() string {
	if s.v4 != nil {
		return s.v4.Name
	}
	return ""
}

// V4 returns the underlying current-protocol record, or nil.
func (s ShareItem) V4() *v4.ShareLink { return s.v4 }

// DavAccount is the unified view of one WebDAV credential.
type DavAccount struct {
	ID        string
	Name      string
	Root      string
	Password  string
	CreatedAt string
}

// Quota is the unified storage quota report. Free is computed when the
// protocol reports only used and total.
type Quota struct {
	Used  uint64
	Free  uint64
	Total uint64
}

// UserInfo is the unified view of the current account.
type UserInfo struct {
	v3 *v3.User
	v4 *v4.User
}

// ID returns the account identifier.
func (u *UserInfo) ID() string {
	if u.v3 != nil {
		return u.v3.ID
	}
	return u.v4.ID
}

// Nickname returns the display name.
func (u *UserInfo) Nickname() string {
	if u.v3 != nil {
		return u.v3.Nickname
	}
	return u.v4.Nickname
}

// V3 returns the underlying legacy record, or nil.
func (u *UserInfo) V3() *v3.User { return u.v3 }

// V4 returns the underlying current-protocol record, or nil.
func (u *UserInfo) V4() *v4.User { return u.v4 }

// Task is the unified view of one background task. The legacy protocol only
// models aria2 remote downloads; the current protocol has a general
// workflow queue.
type Task struct {
	v3 *v3.Aria2Task
	v4 *v4.Task
}

// ID returns the task identifier (the aria2 gid under the legacy protocol).
func (t Task) ID() string {
	if t.v3 != nil {
		return t.v3.GID
	}
	return t.v4.ID
}

// Status returns the normalized task status label.
func (t Task) Status() string {
	if t.v4 != nil {
		return string(t.v4.Status)
	}
	switch t.v3.Status {
	case 1:
		return string(v4.TaskStatusProcessing)
	case 2:
		return string(v4.TaskStatusSuspending)
	case 3:
		return string(v4.TaskStatusError)
	case 4:
		return string(v4.TaskStatusCompleted)
	case 5:
		return string(v4.TaskStatusCanceled)
	default:
		return string(v4.TaskStatusQueued)
	}
}

// V3 returns the underlying aria2 record, or nil.
func (t Task) V3() *v3.Aria2Task { return t.v3 }

// V4 returns the underlying workflow record, or nil.
func (t Task) V4() *v4.Task { return t.v4 }

// SiteConfig is the unified view of the public site configuration. The
// current protocol reports it per section as raw JSON.
type SiteConfig struct {
	V3 *v3.SiteConfig
	V4 []byte
}
