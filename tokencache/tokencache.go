// Package tokencache persists client credentials between runs, so CLI-style
// embedders do not have to log in on every invocation.
package tokencache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/cloudrevehq/cloudreve-go"
)

const (
	defaultDirName  = ".cloudreve"
	defaultFileName = "credentials.json"
)

// ErrNotCached - no credential has been stored yet
var ErrNotCached = errors.New("no cached credential")

// Cache is a file-based credential store. Credentials are keyed by server
// base URL so one cache file serves several servers.
type Cache struct {
	path string
}

// New returns a cache backed by the given file. An empty path selects
// ~/.cloudreve/credentials.json.
func New(path string) (*Cache, error) {
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, defaultDirName, defaultFileName)
	}
	return &Cache{path: path}, nil
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// Store saves the credential for a server, creating the cache file and its
// directory as needed. The file is written with owner-only permissions
// since it holds live credentials.
func (c *Cache) Store(baseURL string, token cloudreve.TokenInfo) error {
	entries, err := c.read()
	if err != nil {
		return err
	}
	entries[baseURL] = token

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, encoded, 0o600); err != nil {
		return fmt.Errorf("write credential cache: %w", err)
	}
	return nil
}

// Load returns the credential stored for a server, or ErrNotCached.
func (c *Cache) Load(baseURL string) (cloudreve.TokenInfo, error) {
	entries, err := c.read()
	if err != nil {
		return cloudreve.TokenInfo{}, err
	}
	token, ok := entries[baseURL]
	if !ok {
		return cloudreve.TokenInfo{}, ErrNotCached
	}
	return token, nil
}

// Delete removes the credential stored for a server, if any.
func (c *Cache) Delete(baseURL string) error {
	entries, err := c.read()
	if err != nil {
		return err
	}
	if _, ok := entries[baseURL]; !ok {
		return nil
	}
	delete(entries, baseURL)

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential cache: %w", err)
	}
	if err := os.WriteFile(c.path, encoded, 0o600); err != nil {
		return fmt.Errorf("write credential cache: %w", err)
	}
	return nil
}

func (c *Cache) read() (map[string]cloudreve.TokenInfo, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]cloudreve.TokenInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential cache: %w", err)
	}

	entries := map[string]cloudreve.TokenInfo{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode credential cache: %w", err)
	}
	return entries, nil
}
