package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("remove product: %w", ErrProductNotFound)
	if !errors.Is(err, ErrProductNotFound) {
		t.Error("wrapped sentinel must match")
	}
	if errors.Is(err, ErrProductExists) {
		t.Error("different sentinel must not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewPersistenceError(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected AppError via errors.As")
	}
	if appErr.Type != ErrorTypePersistence {
		t.Errorf("expected persistence type, got %q", appErr.Type)
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeValidation, "CODE", "bad input")
	if got := err.Error(); got != "validation: bad input" {
		t.Errorf("unexpected message: %q", got)
	}

	wrapped := Wrap(errors.New("boom"), ErrorTypeInternal, "CODE", "failed")
	if got := wrapped.Error(); got != "internal: failed (internal: boom)" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestLogFieldsIncludeInternal(t *testing.T) {
	err := NewTransportError(errors.New("timeout"))
	fields := err.LogFields()

	found := false
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] == "internal_error" && fields[i+1] == "timeout" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected internal_error field, got %v", fields)
	}
}
