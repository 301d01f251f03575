package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type utilsSuite struct {
	suite.Suite
}

func (s *utilsSuite) TestEnsureLeadingSlash() {
	tests := []struct {
		path     string
		expected string
	}{
		{"docs/a.txt", "/docs/a.txt"},
		{"/docs/a.txt", "/docs/a.txt"},
		{"", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		s.Run(tt.path, func() {
			s.Equal(tt.expected, EnsureLeadingSlash(tt.path))
		})
	}
}

func (s *utilsSuite) TestEnsureTrailingSlash() {
	s.Equal("/docs/", EnsureTrailingSlash("/docs"))
	s.Equal("/docs/", EnsureTrailingSlash("/docs/"))
}

func (s *utilsSuite) TestRemoveSlashes() {
	s.Equal("/docs", RemoveTrailingSlash("/docs/"))
	s.Equal("/docs", RemoveTrailingSlash("/docs//"))
	s.Equal("docs/", RemoveLeadingSlash("/docs/"))
	s.Equal("", RemoveTrailingSlash("/"))
}

func (s *utilsSuite) TestNormalizePath() {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty is root", "", "/"},
		{"root", "/", "/"},
		{"relative gains slash", "docs/a.txt", "/docs/a.txt"},
		{"trailing slash dropped", "/docs/", "/docs"},
		{"double slashes collapsed", "//docs//a.txt", "/docs/a.txt"},
		{"dot segments cleaned", "/docs/./sub/../a.txt", "/docs/a.txt"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, NormalizePath(tt.path))
		})
	}
}

func (s *utilsSuite) TestSplitPath() {
	tests := []struct {
		name         string
		path         string
		expectedDir  string
		expectedLeaf string
	}{
		{"nested file", "/docs/a.txt", "/docs", "a.txt"},
		{"top-level file", "/a.txt", "/", "a.txt"},
		{"root", "/", "/", ""},
		{"deep path", "/a/b/c", "/a/b", "c"},
		{"trailing slash", "/docs/sub/", "/docs", "sub"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			dir, leaf := SplitPath(tt.path)
			s.Equal(tt.expectedDir, dir)
			s.Equal(tt.expectedLeaf, leaf)
		})
	}
}

func (s *utilsSuite) TestIsRoot() {
	s.True(IsRoot("/"))
	s.True(IsRoot(""))
	s.True(IsRoot("//"))
	s.False(IsRoot("/docs"))
}

func (s *utilsSuite) TestValidateAbsolutePath() {
	s.NoError(ValidateAbsolutePath("/docs/a.txt"))
	s.Error(ValidateAbsolutePath("docs/a.txt"))
	s.Error(ValidateAbsolutePath(""))
}

func (s *utilsSuite) TestValidateName() {
	s.NoError(ValidateName("a.txt"))
	s.Error(ValidateName(""))
	s.Error(ValidateName("."))
	s.Error(ValidateName("a/b"))
}

func (s *utilsSuite) TestJoinPath() {
	s.Equal("/docs/a.txt", JoinPath("/docs", "a.txt"))
	s.Equal("/a.txt", JoinPath("/", "a.txt"))
	s.Equal("/docs", JoinPath("/docs", ""))
}

func TestUtils(t *testing.T) {
	suite.Run(t, new(utilsSuite))
}
