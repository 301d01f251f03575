package v4

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// recordedRequest captures what the fake server saw for assertions.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
}

type clientSuite struct {
	suite.Suite

	server   *httptest.Server
	client   *Client
	requests []recordedRequest
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (s *clientSuite) SetupTest() {
	s.requests = nil
	s.respond = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"msg":""}`))
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		query := map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		s.requests = append(s.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.respond(w, r)
	}))
	s.client = NewClient(s.server.URL+"/", nil, nil)
}

func (s *clientSuite) TearDownTest() {
	s.server.Close()
}

func (s *clientSuite) respondWith(body string) {
	s.respond = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func (s *clientSuite) lastRequest() recordedRequest {
	s.Require().NotEmpty(s.requests)
	return s.requests[len(s.requests)-1]
}

func (s *clientSuite) TestBaseURLTrimmed() {
	s.Equal(s.server.URL, s.client.BaseURL())
}

func (s *clientSuite) TestPing() {
	s.respondWith(`{"code":0,"msg":"","data":"pong"}`)

	msg, err := s.client.Ping(context.Background())
	s.Require().NoError(err)
	s.Equal("pong", msg)

	req := s.lastRequest()
	s.Equal(http.MethodGet, req.Method)
	s.Equal("/api/v4/site/ping", req.Path)
	s.Empty(req.Header.Get("Authorization"))
}

func (s *clientSuite) TestBearerAuthHeader() {
	s.client.SetToken("jwt-abc", "refresh-abc")
	s.respondWith(`{"code":0,"msg":"","data":{"used":1,"total":2}}`)

	_, err := s.client.Capacity(context.Background())
	s.Require().NoError(err)
	s.Equal("Bearer jwt-abc", s.lastRequest().Header.Get("Authorization"))
}

func (s *clientSuite) TestLoginStoresTokenPair() {
	s.respondWith(`{"code":0,"msg":"","data":{"user":{"id":"u1","email":"e@x"},"token":{"access_token":"at","refresh_token":"rt"}}}`)

	login, err := s.client.Login(context.Background(), "e@x", "pw")
	s.Require().NoError(err)
	s.Equal("u1", login.User.ID)

	access, refresh := s.client.Token()
	s.Equal("at", access)
	s.Equal("rt", refresh)

	req := s.lastRequest()
	s.Equal("/api/v4/session/token", req.Path)
	s.JSONEq(`{"email":"e@x","password":"pw"}`, string(req.Body))
}

func (s *clientSuite) TestRefreshTokenRequiresCredential() {
	_, err := s.client.RefreshToken(context.Background())
	s.Require().ErrorIs(err, api.ErrNotAuthenticated)
	s.Empty(s.requests)
}

func (s *clientSuite) TestLogoutClearsTokens() {
	s.client.SetToken("at", "rt")

	err := s.client.Logout(context.Background())
	s.Require().NoError(err)

	access, refresh := s.client.Token()
	s.Empty(access)
	s.Empty(refresh)
	s.Equal(http.MethodDelete, s.lastRequest().Method)
}

func (s *clientSuite) TestListQueryParameters() {
	s.respondWith(`{"code":0,"msg":"","data":{"files":[]}}`)

	tests := []struct {
		name          string
		opts          ListOptions
		expectedQuery map[string]string
		absentKeys    []string
	}{
		{
			name:          "offset mode",
			opts:          ListOptions{Page: 2, PageSize: 50},
			expectedQuery: map[string]string{"page": "2", "page_size": "50"},
			absentKeys:    []string{"next_page_token"},
		},
		{
			name:          "cursor mode wins over page",
			opts:          ListOptions{Page: 2, NextToken: "T1"},
			expectedQuery: map[string]string{"next_page_token": "T1"},
			absentKeys:    []string{"page"},
		},
		{
			name:          "ordering",
			opts:          ListOptions{OrderBy: "name", OrderDirection: "asc"},
			expectedQuery: map[string]string{"order_by": "name", "order_direction": "asc"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.client.List(context.Background(), "cloudreve://my/docs", tt.opts)
			s.Require().NoError(err)

			req := s.lastRequest()
			s.Equal("cloudreve://my/docs", req.Query["uri"])
			for k, v := range tt.expectedQuery {
				s.Equal(v, req.Query[k])
			}
			for _, k := range tt.absentKeys {
				s.NotContains(req.Query, k)
			}
		})
	}
}

func (s *clientSuite) TestBatchDeleteSendsBody() {
	err := s.client.BatchDelete(context.Background(), []string{"cloudreve://my/a", "cloudreve://my/b"})
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal(http.MethodDelete, req.Method)
	s.Equal("/api/v4/file", req.Path)

	var body deleteRequest
	s.Require().NoError(json.Unmarshal(req.Body, &body))
	s.Equal([]string{"cloudreve://my/a", "cloudreve://my/b"}, body.URIs)
}

func (s *clientSuite) TestRenamePairsURIAndName() {
	_, err := s.client.Rename(context.Background(), "cloudreve://my/docs/a.txt", "b.txt")
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("/api/v4/file/rename", req.Path)
	s.JSONEq(`{"uris":["cloudreve://my/docs/a.txt"],"names":["b.txt"]}`, string(req.Body))
}

func (s *clientSuite) TestCopySetsFlagOnMoveEndpoint() {
	err := s.client.Copy(context.Background(), []string{"cloudreve://my/a"}, "cloudreve://my/dst")
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("/api/v4/file/move", req.Path)
	s.JSONEq(`{"uris":["cloudreve://my/a"],"dst":"cloudreve://my/dst","copy":true}`, string(req.Body))
}

func (s *clientSuite) TestUploadChunkIsRaw() {
	s.respondWith(`{"code":0,"msg":""}`)

	err := s.client.UploadChunk(context.Background(), "sess-1", 0, []byte{0x1, 0x2})
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("/api/v4/file/upload/sess-1/0", req.Path)
	s.Equal("application/octet-stream", req.Header.Get("Content-Type"))
	s.Equal([]byte{0x1, 0x2}, req.Body)
}

func (s *clientSuite) TestServerErrorSurfacesCode() {
	s.respond = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code":40004,"msg":"not found"}`))
	}

	_, err := s.client.FileInfo(context.Background(), "cloudreve://my/missing", false)
	s.Require().Error(err)
	s.True(api.IsAPIError(err, 40004))
}

func TestClient(t *testing.T) {
	suite.Run(t, new(clientSuite))
}
