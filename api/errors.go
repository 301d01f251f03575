package api

import (
	"errors"
	"fmt"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrEmptyResponse - the envelope reported success but carried no data
	// where a payload was expected
	ErrEmptyResponse = Error("empty response: expected payload is missing")

	// ErrNotAuthenticated - a credential-requiring call was made before login
	ErrNotAuthenticated = Error("not authenticated: login or set a token first")
)

// APIError is a failure reported by the server itself: a non-zero envelope
// code, or a non-2xx HTTP status whose body carried no envelope. Code is
// preserved so callers can branch on it.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// TransportError wraps a network-level failure from the HTTP client.
// Transport failures are never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps malformed JSON or a schema mismatch on an expected
// payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode error: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsAPIError reports whether err is an APIError with the given code.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
