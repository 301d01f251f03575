package cloudreve

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/cloudrevehq/cloudreve-go/api"
)

type authSuite struct {
	suite.Suite
	fake *fakeServer
	ctx  context.Context
}

func (s *authSuite) SetupTest() {
	s.fake = newFakeServer()
	s.ctx = context.Background()
}

func (s *authSuite) TearDownTest() {
	s.fake.Close()
}

func (s *authSuite) TestLoginV4StoresTokenPair() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v4/session/token" {
			writeEnvelope(w, 0, "", map[string]any{
				"user":  map[string]any{"id": "U1", "nickname": "alice"},
				"token": map[string]any{"access_token": "at", "refresh_token": "rt"},
			})
			return
		}
		writeEnvelope(w, 0, "", "pong")
	})

	login, err := client.Login(s.ctx, "alice@example.com", "pw")
	s.Require().NoError(err)
	s.Equal("U1", login.UserID())
	s.Equal("alice", login.Nickname())

	token := client.Token()
	s.Equal(api.VersionV4, token.Version)
	s.Equal("at", token.AccessToken)
	s.Equal("rt", token.RefreshToken)

	// the stored token rides on the next request
	_, err = client.Ping(s.ctx)
	s.Require().NoError(err)
	reqs := s.fake.Requests()
	s.Require().Len(reqs, 2)
	s.Equal("alice@example.com", reqs[0].Body["email"])
	s.Equal("pw", reqs[0].Body["password"])
}

func (s *authSuite) TestLoginV3CapturesSessionCookie() {
	client := newTestClient(s.T(), s.fake, api.VersionV3)
	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v3/user/session" {
			http.SetCookie(w, &http.Cookie{Name: "cloudreve-session", Value: "sess-1"})
			writeEnvelope(w, 0, "", map[string]any{"id": "U1", "user_name": "alice", "nickname": "alice"})
			return
		}
		writeEnvelope(w, 0, "", "pong")
	})

	login, err := client.Login(s.ctx, "alice", "pw")
	s.Require().NoError(err)
	s.Equal("U1", login.UserID())

	token := client.Token()
	s.Equal(api.VersionV3, token.Version)
	s.Equal("sess-1", token.SessionCookie)
}

func (s *authSuite) TestSetTokenRoundTrip() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)

	seed := TokenInfo{Version: api.VersionV4, AccessToken: "at2", RefreshToken: "rt2"}
	s.Require().NoError(client.SetToken(seed))
	s.Equal(seed, client.Token())
}

func (s *authSuite) TestSetTokenVersionMismatch() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)

	err := client.SetToken(TokenInfo{Version: api.VersionV3, SessionCookie: "sess"})
	var invalidErr *InvalidArgumentError
	s.Require().ErrorAs(err, &invalidErr)
}

func (s *authSuite) TestSetTokenVersionAutoAccepted() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)

	s.Require().NoError(client.SetToken(TokenInfo{AccessToken: "at3"}))
	s.Equal("at3", client.Token().AccessToken)
}

func (s *authSuite) TestRefreshTokenV4() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.Require().NoError(client.SetToken(TokenInfo{Version: api.VersionV4, AccessToken: "old", RefreshToken: "rt"}))

	s.fake.Respond(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "", map[string]any{"access_token": "new-at", "refresh_token": "new-rt"})
	})

	token, err := client.RefreshToken(s.ctx)
	s.Require().NoError(err)
	s.Equal("new-at", token.AccessToken)
	s.Equal("new-at", client.Token().AccessToken)

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 1)
	s.Equal("/api/v4/session/token/refresh", reqs[0].Path)
	s.Equal("rt", reqs[0].Body["refresh_token"])
}

func (s *authSuite) TestLogoutClearsCredential() {
	client := newTestClient(s.T(), s.fake, api.VersionV4)
	s.Require().NoError(client.SetToken(TokenInfo{Version: api.VersionV4, AccessToken: "at", RefreshToken: "rt"}))

	s.Require().NoError(client.Logout(s.ctx))
	s.Empty(client.Token().AccessToken)
	s.Empty(client.Token().RefreshToken)
}

func (s *authSuite) TestTokenExpiresAt() {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := jwt.MapClaims{"exp": exp.Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	s.Require().NoError(err)

	token := TokenInfo{Version: api.VersionV4, AccessToken: signed}
	got, ok := token.ExpiresAt()
	s.Require().True(ok)
	s.Equal(exp.Unix(), got.Unix())
}

func (s *authSuite) TestTokenExpiresAtAbsent() {
	tests := []struct {
		name  string
		token TokenInfo
	}{
		{name: "session cookie", token: TokenInfo{Version: api.VersionV3, SessionCookie: "sess"}},
		{name: "opaque token", token: TokenInfo{Version: api.VersionV4, AccessToken: "not-a-jwt"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, ok := tt.token.ExpiresAt()
			s.False(ok)
		})
	}
}

func TestAuth(t *testing.T) {
	suite.Run(t, new(authSuite))
}
