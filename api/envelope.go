package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Envelope is the uniform response wrapper used by both protocol
// generations. Code zero signals success; Data holds the call-specific
// payload, if any.
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope reads an HTTP response and returns the envelope's raw data
// payload, classifying failures per the rules shared by both protocol
// generations:
//
//   - non-2xx status: the body is still tried as an envelope, since servers
//     report structured errors with error statuses too; when that fails, an
//     APIError is synthesized from the HTTP status and the trimmed body.
//   - 2xx with a non-zero envelope code: APIError with that code.
//
// The response body is always consumed and closed.
func DecodeEnvelope(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close() //nolint:errcheck // read side only

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env Envelope
		if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && (env.Code != 0 || env.Msg != "") {
			return nil, &APIError{Code: env.Code, Message: env.Msg}
		}
		return nil, &APIError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env.Code != 0 {
		return nil, &APIError{Code: env.Code, Message: env.Msg}
	}
	return env.Data, nil
}

// UnmarshalData decodes an envelope data payload into T. An absent or null
// payload yields ErrEmptyResponse, since the caller declared it expects one.
func UnmarshalData[T any](data json.RawMessage) (T, error) {
	var v T
	if IsEmptyData(data) {
		return v, ErrEmptyResponse
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, &DecodeError{Err: err}
	}
	return v, nil
}

// IsEmptyData reports whether an envelope data payload is absent or null.
func IsEmptyData(data json.RawMessage) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
