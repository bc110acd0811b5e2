package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the server could not be reached or did not answer.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden covers 403 responses.
	ErrForbidden = errors.New("forbidden")
)

// TransportError wraps a failure where no HTTP response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// HTTPError is a non-2xx response. Message carries the best-effort
// server-provided text, if any.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	}
	return false
}

// BusinessError is an HTTP 200 whose envelope reported success=false.
// The message is taken verbatim from the server payload.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// MalformedResponseError is a 2xx response that is missing a field the
// contract requires (e.g. a login response without a token). Transport
// succeeded, but the call still failed.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}
