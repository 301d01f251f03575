package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type envelopeSuite struct {
	suite.Suite
}

func (s *envelopeSuite) TestDecodeEnvelope() {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedData string
		expectedCode int
		expectedMsg  string
		decodeErr    bool
	}{
		{
			name:         "success with data",
			status:       200,
			body:         `{"code":0,"msg":"","data":{"name":"a.txt"}}`,
			expectedData: `{"name":"a.txt"}`,
		},
		{
			name:   "success without data",
			status: 200,
			body:   `{"code":0,"msg":""}`,
		},
		{
			name:         "2xx with non-zero code",
			status:       200,
			body:         `{"code":40004,"msg":"not found"}`,
			expectedCode: 40004,
			expectedMsg:  "not found",
		},
		{
			name:         "non-2xx with structured body",
			status:       500,
			body:         `{"code":50001,"msg":"db down"}`,
			expectedCode: 50001,
			expectedMsg:  "db down",
		},
		{
			name:         "non-2xx with raw body",
			status:       404,
			body:         "  404 page not found\n",
			expectedCode: 404,
			expectedMsg:  "404 page not found",
		},
		{
			name:      "2xx with malformed body",
			status:    200,
			body:      "<html>",
			decodeErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			data, err := DecodeEnvelope(response(tt.status, tt.body))

			switch {
			case tt.decodeErr:
				var decErr *DecodeError
				s.Require().Error(err)
				s.ErrorAs(err, &decErr)
			case tt.expectedCode != 0:
				var apiErr *APIError
				s.Require().Error(err)
				s.Require().ErrorAs(err, &apiErr)
				s.Equal(tt.expectedCode, apiErr.Code)
				s.Equal(tt.expectedMsg, apiErr.Message)
			default:
				s.Require().NoError(err)
				if tt.expectedData == "" {
					s.True(IsEmptyData(data))
				} else {
					s.JSONEq(tt.expectedData, string(data))
				}
			}
		})
	}
}

func (s *envelopeSuite) TestUnmarshalData() {
	type payload struct {
		Name string `json:"name"`
	}

	s.Run("decodes expected payload", func() {
		v, err := UnmarshalData[payload](json.RawMessage(`{"name":"a.txt"}`))
		s.Require().NoError(err)
		s.Equal("a.txt", v.Name)
	})

	s.Run("absent payload is an error", func() {
		_, err := UnmarshalData[payload](nil)
		s.Require().ErrorIs(err, ErrEmptyResponse)
	})

	s.Run("null payload is an error", func() {
		_, err := UnmarshalData[payload](json.RawMessage("null"))
		s.Require().ErrorIs(err, ErrEmptyResponse)
	})

	s.Run("schema mismatch is a decode error", func() {
		var decErr *DecodeError
		_, err := UnmarshalData[payload](json.RawMessage(`[1,2]`))
		s.Require().Error(err)
		s.ErrorAs(err, &decErr)
	})
}

func (s *envelopeSuite) TestIsAPIError() {
	err := &APIError{Code: 40004, Message: "not found"}
	s.True(IsAPIError(err, 40004))
	s.False(IsAPIError(err, 40005))
	s.False(IsAPIError(ErrEmptyResponse, 40004))
}

func TestEnvelope(t *testing.T) {
	suite.Run(t, new(envelopeSuite))
}
