/*
Package cloudreve is a client library for the Cloudreve file-storage HTTP
API. Cloudreve servers exist in two incompatible protocol generations: the
legacy v3 API (cookie session authentication, mutations addressed by opaque
object IDs) and the current v4 API (bearer tokens, canonical resource URIs
of the form cloudreve://my/path). This package probes which generation a
server speaks and exposes one path-addressed facade whose methods translate
each operation into whatever the active protocol requires.

# Usage

Construct a client, log in, and address everything by absolute path:

	client, err := cloudreve.NewClient(ctx, "https://drive.example.com")
	if err != nil {
		// neither protocol generation answered
	}

	if _, err := client.Login(ctx, "user@example.com", "password"); err != nil {
		return err
	}

	list, err := client.ListFilesAll(ctx, "/docs")
	if err != nil {
		return err
	}
	for _, f := range list.Files() {
		fmt.Println(f.Name(), f.Size(), f.IsFolder())
	}

	err = client.Move(ctx, "/docs/a.txt", "/archive/a.txt")

Under the legacy protocol, mutating calls resolve paths to object IDs by
listing the parent directory on every call. IDs are never cached: they are
not guaranteed stable across listings, so the extra round-trip buys freedom
from stale-ID races.

Some operations have no equivalent under one generation (share updates,
WebDAV credential mutation and trash restore are v4-only; two-factor login
is v3-only). Those return an UnsupportedError rather than guessing.

A same-directory copy under a new name cannot be expressed in one v4 call;
Copy emulates it with a temporary directory and a sequence of copy, rename
and move calls. The sequence has no rollback: a mid-sequence failure
propagates to the caller and may leave the temporary directory behind.

# Authentication

Login stores the credential on the client and replays it on every request.
For external persistence (a CLI token cache, say) the credential is
exported and restored via Token and SetToken; the tokencache package offers
a file-based store. Credentials can also be seeded at construction through
WithAccessToken or WithSessionCookie, or the CLOUDREVE_ACCESS_TOKEN and
CLOUDREVE_SESSION environment variables.

The facade never refreshes v4 tokens on its own; call RefreshToken when
TokenInfo.ExpiresAt says it is time.

# Versions

NewClient probes /api/v4/site/ping first and falls back to the v3 ping; an
explicit WithVersion skips the probe. The probe runs once, with no retries,
and the detected version is fixed for the life of the client.
*/
package cloudreve
