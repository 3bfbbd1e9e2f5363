package apikit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrNoBaseURL is returned when a client is constructed without a base URL.
	ErrNoBaseURL = errors.New("apikit: base url required")

	// ErrSessionOpen is returned when Open is called on an already-open session.
	ErrSessionOpen = errors.New("apikit: session already open")

	// ErrUnsetValue is returned when an unset Optional is marshaled directly.
	// Strip unset values with Encode before handing models to an encoder.
	ErrUnsetValue = errors.New("apikit: value is unset")
)

// Error type identifiers used in ClientError.Type.
const (
	ErrorTypeValidation = "Validation"
	ErrorTypeEncode     = "Encode"
)

// ClientError represents a configuration or encoding error from this layer.
// Transport-level failures are never wrapped; they propagate unmodified from
// net/http.
type ClientError struct {
	Type    string
	Message string
	Cause   error
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// UnexpectedStatusError reports a response status code not documented for the
// endpoint. It is only produced when the client was constructed with
// WithRaiseOnUnexpectedStatus.
type UnexpectedStatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements error interface.
func (e *UnexpectedStatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("apikit: unexpected status code %d (body %d bytes)", e.StatusCode, len(e.Body))
}
