package apikit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClientErrorMessage(t *testing.T) {
	err := &ClientError{Type: ErrorTypeValidation, Message: "configuration validation failed"}
	if err.Error() != "Validation: configuration validation failed" {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	cause := errors.New("boom")
	withCause := &ClientError{Type: ErrorTypeEncode, Message: "cannot encode", Cause: cause}
	if !strings.Contains(withCause.Error(), "boom") {
		t.Errorf("Expected cause in message, got %s", withCause.Error())
	}
}

func TestClientErrorNil(t *testing.T) {
	var err *ClientError
	if err.Error() != "<nil>" {
		t.Errorf("Expected <nil>, got %s", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Expected nil unwrap")
	}
	if err.Is(&ClientError{Type: ErrorTypeEncode}) {
		t.Error("Expected nil receiver to match nothing")
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &ClientError{Type: ErrorTypeEncode, Message: "wrap", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestClientErrorIsMatchesType(t *testing.T) {
	err := fmt.Errorf("outer: %w", &ClientError{Type: ErrorTypeValidation, Message: "bad config"})

	if !errors.Is(err, &ClientError{Type: ErrorTypeValidation}) {
		t.Error("Expected type match via errors.Is")
	}
	if errors.Is(err, &ClientError{Type: ErrorTypeEncode}) {
		t.Error("Expected mismatching type not to match")
	}
}

func TestUnexpectedStatusErrorMessage(t *testing.T) {
	err := &UnexpectedStatusError{StatusCode: 503, Body: []byte("overloaded")}

	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Expected status code in message, got %s", err.Error())
	}

	var nilErr *UnexpectedStatusError
	if nilErr.Error() != "<nil>" {
		t.Errorf("Expected <nil>, got %s", nilErr.Error())
	}
}

func TestSentinelErrorPrefix(t *testing.T) {
	for _, err := range []error{ErrNoBaseURL, ErrSessionOpen, ErrUnsetValue} {
		if !strings.HasPrefix(err.Error(), "apikit: ") {
			t.Errorf("Expected apikit prefix, got %s", err.Error())
		}
	}
}
