// Package utils provides path-normalization helpers shared by the protocol
// clients and the unified facade.
package utils

import (
	"errors"
	"path"
	"strings"
)

const (
	// ErrBadAbsPath constant is returned when a path is not absolute
	ErrBadAbsPath = "absolute path is invalid - must include leading slash"
	// ErrBadName constant is returned when a name is empty or contains a slash
	ErrBadName = "name is invalid - may not be empty or contain slashes"
)

// EnsureLeadingSlash adds a leading slash if needed.
func EnsureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// EnsureTrailingSlash adds a trailing slash if needed.
func EnsureTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// RemoveTrailingSlash removes trailing slashes, if any.
func RemoveTrailingSlash(p string) string {
	return strings.TrimRight(p, "/")
}

// RemoveLeadingSlash removes leading slashes, if any.
func RemoveLeadingSlash(p string) string {
	return strings.TrimLeft(p, "/")
}

// NormalizePath cleans a filesystem-style path and guarantees a single
// leading slash. The root path is returned as "/".
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean(EnsureLeadingSlash(p))
}

// SplitPath splits an absolute path into its parent directory and leaf name.
// The parent is itself an absolute path. Splitting the root yields ("/", "").
//
//	/docs/a.txt : ("/docs", "a.txt")
//	/a.txt      : ("/", "a.txt")
//	/           : ("/", "")
func SplitPath(p string) (dir, leaf string) {
	p = NormalizePath(p)
	if p == "/" {
		return "/", ""
	}
	dir, leaf = path.Split(p)
	if dir != "/" {
		dir = RemoveTrailingSlash(dir)
	}
	return dir, leaf
}

// IsRoot reports whether the path refers to the root directory.
func IsRoot(p string) bool {
	return NormalizePath(p) == "/"
}

// ValidateAbsolutePath ensures that a path has a leading slash.
func ValidateAbsolutePath(p string) error {
	if !strings.HasPrefix(p, "/") {
		return errors.New(ErrBadAbsPath)
	}
	return nil
}

// ValidateName ensures that a leaf name is non-empty and contains no slash.
func ValidateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "/") {
		return errors.New(ErrBadName)
	}
	return nil
}

// JoinPath joins a parent directory and a leaf name into an absolute path.
func JoinPath(dir, leaf string) string {
	return NormalizePath(path.Join(dir, leaf))
}

// Ptr returns a pointer to the given value.
func Ptr[T any](value T) *T {
	return &value
}
