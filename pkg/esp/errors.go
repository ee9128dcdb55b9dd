package esp

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationMissing is returned when neither a per-request token
	// nor a client default token is set.
	ErrAuthenticationMissing = errors.New("esp: no auth token")
	// ErrMissingParameter is returned when a required argument is empty.
	ErrMissingParameter = errors.New("esp: missing required parameter")
	// ErrInvalidJSON is wrapped by ResponseError when a 2xx body is not JSON.
	ErrInvalidJSON = errors.New("esp: response body is not valid JSON")
	// ErrMissingField is wrapped by DecodeError when a required key is absent.
	ErrMissingField = errors.New("missing required field")
)

// TransportError reports a network-level failure talking to the API.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("esp: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a response the client refuses to decode: a non-2xx
// status, or a 2xx body that is not JSON.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the API's "error" field when the body carried one,
	// otherwise the (truncated) raw body.
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("esp: %s %s returned %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("esp: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// DecodeError reports a payload that does not match its type contract.
// Field is the dotted path of the offending key, e.g. "schedule.days[2].date".
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("esp: decode: %v", e.Err)
	}
	return fmt.Sprintf("esp: decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
