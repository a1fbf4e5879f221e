package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for failures that occur before any request is made.
var (
	// ErrInvalidURL indicates the request URL could not be constructed.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrMissingToken indicates an operation that requires authentication
	// was attempted without a session token.
	ErrMissingToken = errors.New("authentication required")
	// ErrAuthorizationDenied indicates the active role is not permitted to
	// perform the operation. Raised before any network call.
	ErrAuthorizationDenied = errors.New("authorization denied for active role")
)

// HTTPError is a non-2xx response from the backend, carrying the raw body
// for diagnosis.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned status code %d", e.Status)
}

// DecodeError is a 2xx response whose body failed to parse into the
// expected shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps an underlying network failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message derives the human-readable text shown to the user for an error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "Failed to decode response"
	}
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "Invalid URL"
	case errors.Is(err, ErrMissingToken):
		return "Authentication required"
	case errors.Is(err, ErrAuthorizationDenied):
		return "This action is not available for your current role"
	}
	return err.Error()
}
