package v4

import "encoding/json"

// FileType discriminates files from folders in listing and info payloads.
type FileType int

const (
	FileTypeFile   FileType = 0
	FileTypeFolder FileType = 1
)

// File is a single file or folder record.
type File struct {
	Type          FileType          `json:"type"`
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Permission    json.RawMessage   `json:"permission,omitempty"`
	CreatedAt     string            `json:"created_at,omitempty"`
	UpdatedAt     string            `json:"updated_at,omitempty"`
	Size          uint64            `json:"size"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Path          string            `json:"path,omitempty"`
	Capability    string            `json:"capability,omitempty"`
	Owned         bool              `json:"owned,omitempty"`
	PrimaryEntity string            `json:"primary_entity,omitempty"`
}

// IsFolder reports whether the record is a folder.
func (f *File) IsFolder() bool {
	return f.Type == FileTypeFolder
}

// Pagination is the pagination block of a listing response. IsCursor
// selects between cursor mode (opaque NextToken replay) and offset mode
// (direct page access).
type Pagination struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items,omitempty"`
	NextToken  string `json:"next_token,omitempty"`
	IsCursor   bool   `json:"is_cursor,omitempty"`
}

// ListResponse is one page of a directory listing.
type ListResponse struct {
	Files         []File          `json:"files"`
	Parent        *File           `json:"parent,omitempty"`
	Pagination    *Pagination     `json:"pagination,omitempty"`
	Props         json.RawMessage `json:"props,omitempty"`
	ContextHint   string          `json:"context_hint,omitempty"`
	MixedType     bool            `json:"mixed_type,omitempty"`
	StoragePolicy *StoragePolicy  `json:"storage_policy,omitempty"`
	View          json.RawMessage `json:"view,omitempty"`
}

// StoragePolicy describes the storage policy governing a directory.
type StoragePolicy struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	MaxSize       uint64   `json:"max_size,omitempty"`
	Relay         bool     `json:"relay,omitempty"`
	AllowedSuffix []string `json:"allowed_suffix,omitempty"`
}

// Token is the bearer token pair issued at login and refresh.
type Token struct {
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	AccessExpires  string `json:"access_expires,omitempty"`
	RefreshExpires string `json:"refresh_expires,omitempty"`
}

// User is the account record returned at login.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
	Group     *Group `json:"group,omitempty"`
	Language  string `json:"language,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// Group is the permission group a user belongs to.
type Group struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Permission json.RawMessage `json:"permission,omitempty"`
}

// LoginData is the payload of a successful password login.
type LoginData struct {
	User  User  `json:"user"`
	Token Token `json:"token"`
}

// Quota is the account storage capacity report.
type Quota struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// DavAccount is one WebDAV access credential.
type DavAccount struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at,omitempty"`
	Name      string          `json:"name"`
	URI       string          `json:"uri"`
	Password  string          `json:"password,omitempty"`
	Options   json.RawMessage `json:"options,omitempty"`
}

// DavAccountList is a page of WebDAV credentials.
type DavAccountList struct {
	Accounts   []DavAccount `json:"accounts"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// ShareLink is one share record.
type ShareLink struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	URL             string `json:"url,omitempty"`
	RemainDownloads int    `json:"remain_downloads,omitempty"`
	VisitCount      int    `json:"visit_count,omitempty"`
	Expires         string `json:"expires,omitempty"`
	Expired         bool   `json:"expired,omitempty"`
	Unlocked        bool   `json:"unlocked,omitempty"`
	SourceType      int    `json:"source_type,omitempty"`
	Owner           *User  `json:"owner,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	IsPrivate       bool   `json:"is_private,omitempty"`
	Password        string `json:"password,omitempty"`
}

// ShareLinkList is a page of share records.
type ShareLinkList struct {
	Shares     []ShareLink `json:"shares"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// UploadSession is the server-side state for a chunked upload.
type UploadSession struct {
	SessionID      string         `json:"session_id"`
	UploadID       string         `json:"upload_id,omitempty"`
	ChunkSize      uint64         `json:"chunk_size"`
	Expires        int64          `json:"expires"`
	StoragePolicy  *StoragePolicy `json:"storage_policy,omitempty"`
	URI            string         `json:"uri,omitempty"`
	CallbackSecret string         `json:"callback_secret,omitempty"`
	UploadURLs     []string       `json:"upload_urls,omitempty"`
}

// TotalChunks returns how many chunks a payload of the given size needs
// under this session. A zero chunk size means a single chunk.
func (s *UploadSession) TotalChunks(size uint64) int {
	if s.ChunkSize == 0 || size == 0 {
		return 1
	}
	n := size / s.ChunkSize
	if size%s.ChunkSize != 0 {
		n++
	}
	return int(n)
}

// DownloadURL is one resolved direct download link.
type DownloadURL struct {
	URL string `json:"url"`
}

// DownloadURLList is the payload of a download URL request.
type DownloadURLList struct {
	URLs    []DownloadURL `json:"urls"`
	Expires string        `json:"expires,omitempty"`
}

// TaskStatus enumerates the lifecycle states of a background task.
type TaskStatus string

const (
	TaskStatusQueued     TaskStatus = "queued"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusSuspending TaskStatus = "suspending"
	TaskStatusError      TaskStatus = "error"
	TaskStatusCanceled   TaskStatus = "canceled"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskType enumerates the kinds of background tasks the server runs.
type TaskType string

const (
	TaskTypeCreateArchive  TaskType = "create_archive"
	TaskTypeExtractArchive TaskType = "extract_archive"
	TaskTypeRemoteDownload TaskType = "remote_download"
	TaskTypeRelocate       TaskType = "relocate"
	TaskTypeImport         TaskType = "import"
)

// Task is one background task record. The facade never polls; callers do.
type Task struct {
	ID         string          `json:"id"`
	Status     TaskStatus      `json:"status"`
	Type       TaskType        `json:"type"`
	CreatedAt  string          `json:"created_at,omitempty"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
	Summary    json.RawMessage `json:"summary,omitempty"`
	Duration   int64           `json:"duration,omitempty"`
	ResumeTime int64           `json:"resume_time,omitempty"`
	Error      string          `json:"error,omitempty"`
	RetryCount int             `json:"retry_count,omitempty"`
	Node       string          `json:"node,omitempty"`
}

// TaskList is a page of background tasks.
type TaskList struct {
	Tasks      []Task      `json:"tasks"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// TaskProgress reports completion counters for one task.
type TaskProgress struct {
	Total    int64 `json:"total"`
	Current  int64 `json:"current"`
	Finished bool  `json:"finished,omitempty"`
}
