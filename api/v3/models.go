package v3

import "encoding/json"

// Object is a single file or folder record from a directory listing. ID is
// the only valid handle for mutating operations under this protocol, and is
// not guaranteed stable across listings.
type Object struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path,omitempty"`
	Thumb         bool   `json:"thumb,omitempty"`
	Size          uint64 `json:"size"`
	Type          string `json:"type"`
	Date          string `json:"date,omitempty"`
	CreateDate    string `json:"create_date,omitempty"`
	SourceEnabled bool   `json:"source_enabled,omitempty"`
}

// IsFolder reports whether the record is a folder. Server builds disagree on
// the discriminant literal, so both known values are accepted.
func (o *Object) IsFolder() bool {
	return o.Type == "dir" || o.Type == "folder"
}

// Policy describes the storage policy of a directory.
type Policy struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	MaxSize  uint64   `json:"max_size,omitempty"`
	FileType []string `json:"file_type,omitempty"`
}

// DirectoryList is the payload of a directory listing.
type DirectoryList struct {
	Parent  string   `json:"parent,omitempty"`
	Objects []Object `json:"objects"`
	Policy  *Policy  `json:"policy,omitempty"`
}

// User is the account record returned at login.
type User struct {
	ID             string          `json:"id"`
	UserName       string          `json:"user_name"`
	Nickname       string          `json:"nickname,omitempty"`
	Status         int             `json:"status,omitempty"`
	Avatar         string          `json:"avatar,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	PreferredTheme string          `json:"preferred_theme,omitempty"`
	Anonymous      bool            `json:"anonymous,omitempty"`
	Group          json.RawMessage `json:"group,omitempty"`
	Tags           json.RawMessage `json:"tags,omitempty"`
}

// Storage is the account storage quota report.
type Storage struct {
	Used  uint64 `json:"used"`
	Free  uint64 `json:"free"`
	Total uint64 `json:"total"`
}

// UploadSession is the server-side state for an upload.
type UploadSession struct {
	SessionID string `json:"sessionID"`
	ChunkSize uint64 `json:"chunkSize"`
	Expires   int64  `json:"expires"`
}

// WebdavAccount is one WebDAV credential. This protocol generation uses
// capitalized JSON keys for these records.
type WebdavAccount struct {
	ID        uint   `json:"ID"`
	Name      string `json:"Name"`
	Root      string `json:"Root"`
	Password  string `json:"Password"`
	CreatedAt string `json:"CreatedAt"`
}

// WebdavAccountList is the payload of the WebDAV account listing.
type WebdavAccountList struct {
	Accounts []WebdavAccount `json:"accounts"`
}

// SiteConfig is the public site configuration.
type SiteConfig struct {
	Title           string `json:"title,omitempty"`
	SiteNotice      string `json:"siteNotice,omitempty"`
	LoginCaptcha    bool   `json:"loginCaptcha,omitempty"`
	RegisterCaptcha bool   `json:"regCaptcha,omitempty"`
	EmailActive     bool   `json:"emailActive,omitempty"`
	DefaultTheme    string `json:"defaultTheme,omitempty"`
	User            *User  `json:"user,omitempty"`
}

// Aria2Task is one remote download task record.
type Aria2Task struct {
	GID        string          `json:"gid,omitempty"`
	Name       string          `json:"name,omitempty"`
	Status     int             `json:"status,omitempty"`
	Dst        string          `json:"dst,omitempty"`
	Total      uint64          `json:"total,omitempty"`
	Downloaded uint64          `json:"downloaded,omitempty"`
	Speed      int64           `json:"speed,omitempty"`
	Info       json.RawMessage `json:"info,omitempty"`
	CreateTime string          `json:"create,omitempty"`
	UpdateTime string          `json:"update,omitempty"`
}
