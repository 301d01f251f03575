package cloudreve

import (
	"fmt"
	"strings"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrRootImmutable - the root directory cannot be renamed, moved, copied,
	// or deleted; such calls are rejected before any network traffic
	ErrRootImmutable = Error("root directory cannot be mutated")

	// ErrVersionDetection - neither protocol generation answered the probe
	ErrVersionDetection = Error("could not detect API version: neither v3 nor v4 endpoints responded")

	// ErrNoDownloadURL - the server acknowledged the download request but
	// returned no link
	ErrNoDownloadURL = Error("server returned no download url")
)

// NotFoundError reports that a path did not resolve to any directory entry.
// Available carries a sample of sibling names when the lookup had a listing
// to scan, which makes typos in interactive use easy to spot.
type NotFoundError struct {
	Path      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("file not found: %s (directory contains: %s)", e.Path, strings.Join(e.Available, ", "))
	}
	return "file not found: " + e.Path
}

// UnsupportedError reports that the operation has no equivalent under the
// protocol version the client detected.
type UnsupportedError struct {
	Op      string
	Version api.Version
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported by the %s api", e.Op, e.Version)
}

// InvalidArgumentError reports a call rejected locally, before any network
// traffic.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}
