package cloudreve

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type shareSuite struct {
	suite.Suite
	fake *fakeServer
	ctx  context.Context
}

func (s *shareSuite) SetupTest() {
	s.fake = newFakeServer()
	s.ctx = context.Background()
}

func (s *shareSuite) TearDownTest() {
	s.fake.Close()
}

func (s *shareSuite) TestCreateShareV3() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v3/directory") {
			writeEnvelope(w, 0, "", directoryListing([]map[string]any{
				{"id": "X1", "name": "a.txt", "type": "file"},
			}, ""))
			return
		}
		writeEnvelope(w, 0, "", "https://drive.example.com/s/abc")
	})

	share, err := client.CreateShare(s.ctx, "/docs/a.txt", ShareOptions{Password: "pw", Expire: 3600})
	s.Require().NoError(err)
	s.Equal("https://drive.example.com/s/abc", share.URL())

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 2)
	s.Equal("/api/v3/share", reqs[1].Path)
	s.Equal("X1", reqs[1].Body["id"])
	s.Equal(false, reqs[1].Body["is_dir"])
	s.Equal("pw", reqs[1].Body["password"])
	s.Equal(float64(3600), reqs[1].Body["expire"])
}

func (s *shareSuite) TestCreateShareV4() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "", "https://drive.example.com/s/xyz")
	})

	share, err := client.CreateShare(s.ctx, "/docs/a.txt", ShareOptions{Password: "pw"})
	s.Require().NoError(err)
	s.Equal("https://drive.example.com/s/xyz", share.URL())

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 1)
	s.Equal(http.MethodPut, reqs[0].Method)
	s.Equal("/api/v4/share", reqs[0].Path)
	s.Equal("cloudreve://my/docs/a.txt", reqs[0].Body["uri"])
	// a password implies a private link
	s.Equal(true, reqs[0].Body["is_private"])
}

func (s *shareSuite) TestListSharesV3IsEmpty() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)

	shares, err := client.ListShares(s.ctx)
	s.Require().NoError(err)
	s.Empty(shares)
	s.Empty(s.fake.Requests())
}

func (s *shareSuite) TestListSharesV4FollowsCursor() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("next_page_token") == "T1" {
			writeEnvelope(w, 0, "", map[string]any{
				"shares": []map[string]any{{"id": "S2", "name": "b.txt"}},
			})
			return
		}
		writeEnvelope(w, 0, "", map[string]any{
			"shares":     []map[string]any{{"id": "S1", "name": "a.txt"}},
			"pagination": map[string]any{"page": 1, "is_cursor": true, "next_token": "T1"},
		})
	})

	shares, err := client.ListShares(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(shares, 2)
	s.Equal("S1", shares[0].ID())
	s.Equal("S2", shares[1].ID())
	s.Len(s.fake.Requests(), 2)
}

func (s *shareSuite) TestShareMutationsUnsupportedV3() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)

	var unsupportedErr *UnsupportedError
	_, err := client.UpdateShare(s.ctx, "S1", "/docs/a.txt", ShareOptions{})
	s.Require().ErrorAs(err, &unsupportedErr)
	s.Require().ErrorAs(client.DeleteShare(s.ctx, "S1"), &unsupportedErr)
	_, err = client.GetShareInfo(s.ctx, "S1")
	s.Require().ErrorAs(err, &unsupportedErr)
	s.Empty(s.fake.Requests())
}

func TestShares(t *testing.T) {
	suite.Run(t, new(shareSuite))
}
