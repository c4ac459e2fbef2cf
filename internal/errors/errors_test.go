package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	internal := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(ErrParserUnavailable, internal)

	if err.Code != "PARSER_UNAVAILABLE" {
		t.Errorf("expected code preserved, got %q", err.Code)
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", err.StatusCode)
	}
	// The client-facing message must not leak the internal error.
	if err.Message != ErrParserUnavailable.Message {
		t.Errorf("expected sentinel message, got %q", err.Message)
	}
	if !errors.Is(err, internal) {
		t.Error("expected the internal error to unwrap")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "transfer requires a destination account")
	if err.Code != "INVALID_INPUT" {
		t.Errorf("expected code preserved, got %q", err.Code)
	}
	if err.Message != "transfer requires a destination account" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.StatusCode)
	}
}
