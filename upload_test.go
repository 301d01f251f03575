package cloudreve

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type uploadSuite struct {
	suite.Suite
	fake *fakeServer
	ctx  context.Context
}

func (s *uploadSuite) SetupTest() {
	s.fake = newFakeServer()
	s.ctx = context.Background()
}

func (s *uploadSuite) TearDownTest() {
	s.fake.Close()
}

func (s *uploadSuite) TestUploadV4Chunked() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v4/file/upload" && r.Method == http.MethodPut {
			writeEnvelope(w, 0, "", map[string]any{"session_id": "S1", "chunk_size": 4, "expires": 9999999999})
			return
		}
		writeEnvelope(w, 0, "", nil)
	})

	content := []byte("0123456789")
	s.Require().NoError(client.Upload(s.ctx, "/docs/a.txt", content, "p1"))

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 4)

	s.Equal("/api/v4/file/upload", reqs[0].Path)
	s.Equal("cloudreve://my/docs/a.txt", reqs[0].Body["uri"])
	s.Equal(float64(10), reqs[0].Body["size"])
	s.Equal("p1", reqs[0].Body["policy_id"])

	s.Equal("/api/v4/file/upload/S1/0", reqs[1].Path)
	s.Equal("0123", string(reqs[1].Raw))
	s.Equal("/api/v4/file/upload/S1/1", reqs[2].Path)
	s.Equal("4567", string(reqs[2].Raw))
	s.Equal("/api/v4/file/upload/S1/2", reqs[3].Path)
	s.Equal("89", string(reqs[3].Raw))
}

func (s *uploadSuite) TestUploadV4ResolvesPolicyFromParent() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v4/file" && r.Method == http.MethodGet:
			writeEnvelope(w, 0, "", map[string]any{
				"files":          []map[string]any{},
				"storage_policy": map[string]any{"id": "p7", "name": "default", "type": "local"},
			})
		case r.URL.Path == "/api/v4/file/upload" && r.Method == http.MethodPut:
			writeEnvelope(w, 0, "", map[string]any{"session_id": "S1", "chunk_size": 0})
		default:
			writeEnvelope(w, 0, "", nil)
		}
	})

	s.Require().NoError(client.Upload(s.ctx, "/docs/a.txt", []byte("hi"), ""))

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 3)
	s.Equal("cloudreve://my/docs", reqs[0].Query.Get("uri"))
	s.Equal("p7", reqs[1].Body["policy_id"])
	// zero chunk size means the whole payload goes as chunk zero
	s.Equal("/api/v4/file/upload/S1/0", reqs[2].Path)
	s.Equal("hi", string(reqs[2].Raw))
}

func (s *uploadSuite) TestUploadV4AbandonsSessionOnChunkFailure() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v4/file/upload" && r.Method == http.MethodPut:
			writeEnvelope(w, 0, "", map[string]any{"session_id": "S1", "chunk_size": 4})
		case strings.HasSuffix(r.URL.Path, "/S1/1"):
			writeEnvelope(w, 50000, "chunk rejected", nil)
		default:
			writeEnvelope(w, 0, "", nil)
		}
	})

	err := client.Upload(s.ctx, "/docs/a.txt", []byte("0123456789"), "p1")
	s.Require().Error(err)
	s.True(api.IsAPIError(err, 50000))

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 4)
	last := reqs[3]
	s.Equal(http.MethodDelete, last.Method)
	s.Equal("/api/v4/file/upload", last.Path)
	s.Equal("S1", last.Body["id"])
	s.Equal("cloudreve://my/docs/a.txt", last.Body["uri"])
}

func (s *uploadSuite) TestUploadV3() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v3/directory"):
			writeEnvelope(w, 0, "", directoryListing(nil, "p9"))
		case r.URL.Path == "/api/v3/file/upload" && r.Method == http.MethodPut:
			writeEnvelope(w, 0, "", map[string]any{"sessionID": "S1", "chunkSize": 0})
		default:
			writeEnvelope(w, 0, "", nil)
		}
	})

	content := []byte("hello")
	s.Require().NoError(client.Upload(s.ctx, "/docs/a.txt", content, ""))

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 4)

	s.Equal("/api/v3/directory/docs", reqs[0].Path)

	s.Equal("/api/v3/file/upload", reqs[1].Path)
	s.Equal("/docs", reqs[1].Body["path"])
	s.Equal("a.txt", reqs[1].Body["name"])
	s.Equal("p9", reqs[1].Body["policy_id"])
	s.Equal(float64(5), reqs[1].Body["size"])

	s.Equal("/api/v3/file/upload/S1/0", reqs[2].Path)
	s.Equal("hello", string(reqs[2].Raw))

	s.Equal("/api/v3/callback/onedrive/finish/S1", reqs[3].Path)
}

func (s *uploadSuite) TestUploadV3ToleratesFinishCallbackFailure() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/file/upload" && r.Method == http.MethodPut:
			writeEnvelope(w, 0, "", map[string]any{"sessionID": "S1", "chunkSize": 0})
		case strings.HasPrefix(r.URL.Path, "/api/v3/callback"):
			http.NotFound(w, r)
		default:
			writeEnvelope(w, 0, "", nil)
		}
	})

	// the callback only exists for some storage policies
	s.Require().NoError(client.Upload(s.ctx, "/docs/a.txt", []byte("hello"), "p1"))
}

func (s *uploadSuite) TestUploadRejectsRoot() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)

	var invalidErr *InvalidArgumentError
	s.Require().ErrorAs(client.Upload(s.ctx, "/", []byte("x"), ""), &invalidErr)
	s.Empty(s.fake.Requests())
}

func (s *uploadSuite) TestDownloadV3() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v3/directory"):
			writeEnvelope(w, 0, "", directoryListing([]map[string]any{
				{"id": "X1", "name": "a.txt", "type": "file"},
			}, ""))
		case strings.HasPrefix(r.URL.Path, "/api/v3/file/download/"):
			writeEnvelope(w, 0, "", "/api/v3/file/get/X1/a.txt")
		default:
			writeEnvelope(w, 0, "", nil)
		}
	})

	link, err := client.Download(s.ctx, "/docs/a.txt")
	s.Require().NoError(err)
	s.Equal(s.fake.URL()+"/api/v3/file/get/X1/a.txt", link)

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 2)
	s.Equal("/api/v3/file/download/X1", reqs[1].Path)
}

func (s *uploadSuite) TestDownloadV3RejectsDirectory() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "", directoryListing([]map[string]any{
			{"id": "X2", "name": "sub", "type": "dir"},
		}, ""))
	})

	_, err := client.Download(s.ctx, "/docs/sub")
	var invalidErr *InvalidArgumentError
	s.Require().ErrorAs(err, &invalidErr)
}

func (s *uploadSuite) TestDownloadV4() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "", map[string]any{
			"urls": []map[string]any{{"url": "https://cdn.example.com/a.txt?sig=x"}},
		})
	})

	link, err := client.Download(s.ctx, "/docs/a.txt")
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/a.txt?sig=x", link)

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 1)
	s.Equal("/api/v4/file/url", reqs[0].Path)
	s.Equal([]any{"cloudreve://my/docs/a.txt"}, reqs[0].Body["uris"])
	s.Equal(true, reqs[0].Body["download"])
}

func (s *uploadSuite) TestDownloadV4NoURL() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "", map[string]any{"urls": []map[string]any{}})
	})

	_, err := client.Download(s.ctx, "/docs/a.txt")
	s.Require().ErrorIs(err, ErrNoDownloadURL)
}

func TestUpload(t *testing.T) {
	suite.Run(t, new(uploadSuite))
}
