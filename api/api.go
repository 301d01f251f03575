// Package api holds the wire-level plumbing shared by both Cloudreve
// protocol generations: the API version enumeration, the response envelope
// codec, and the typed errors surfaced by the endpoint clients.
package api

// Version identifies a Cloudreve server protocol generation.
type Version string

const (
	// VersionAuto probes the server to pick a version at construction time.
	VersionAuto Version = ""

	// VersionV3 is the legacy protocol: cookie session auth, object-ID
	// addressing for mutations.
	VersionV3 Version = "v3"

	// VersionV4 is the current protocol: bearer token auth, resource-URI
	// addressing.
	VersionV4 Version = "v4"
)

// String returns the version label, or "auto" when unset.
func (v Version) String() string {
	if v == VersionAuto {
		return "auto"
	}
	return string(v)
}
