package v4

import (
	"fmt"
	"strings"
)

// URIPrefix is the scheme-and-scope prefix of the canonical resource URI
// form in which the current protocol addresses every file and folder in the
// caller's own space.
const URIPrefix = "cloudreve://my/"

// PathToURI converts a filesystem-style path into its canonical resource
// URI. The conversion is idempotent: input already carrying the prefix is
// returned unchanged. At most one leading slash is stripped before the
// prefix is applied, so the root path "/" maps to the bare prefix.
func PathToURI(path string) string {
	if strings.HasPrefix(path, URIPrefix) {
		return path
	}
	return URIPrefix + strings.TrimPrefix(path, "/")
}

// PathsToURIs converts a batch of paths, preserving order.
func PathsToURIs(paths []string) []string {
	uris := make([]string, len(paths))
	for i, p := range paths {
		uris[i] = PathToURI(p)
	}
	return uris
}

// URIToPath converts a canonical resource URI back into a filesystem-style
// path with a single leading slash. The bare prefix maps back to "/".
func URIToPath(uri string) (string, error) {
	if !strings.HasPrefix(uri, URIPrefix) {
		return "", fmt.Errorf("invalid resource uri %q: missing %q prefix", uri, URIPrefix)
	}
	return "/" + strings.TrimPrefix(uri, URIPrefix), nil
}

// IsValidURI reports whether the input is in canonical resource URI form.
func IsValidURI(uri string) bool {
	return strings.HasPrefix(uri, URIPrefix)
}
