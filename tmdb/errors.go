package tmdb

import "fmt"

// ErrorKind classifies what went wrong with an API request so callers can
// tell transport failures apart from bad status codes and malformed payloads.
// All kinds are treated as "no data for this request" by the pipeline today.
type ErrorKind int

const (
	// ErrKindTransport covers DNS, connection and timeout failures
	ErrKindTransport ErrorKind = iota
	// ErrKindStatus covers non-2xx responses
	ErrKindStatus
	// ErrKindDecode covers unreadable or malformed response bodies
	ErrKindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindTransport:
		return "transport"
	case ErrKindStatus:
		return "status"
	case ErrKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by all Client methods.
type APIError struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int // set only for ErrKindStatus
	Err        error
}

func (e *APIError) Error() string {
	if e.Kind == ErrKindStatus {
		return fmt.Sprintf("tmdb %s: %s error: status %d", e.Endpoint, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("tmdb %s: %s error: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
