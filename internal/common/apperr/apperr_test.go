package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindAndCode(t *testing.T) {
	err := Conflictf(CodeDuplicateVin, "vin %s already exists", "1234567890123456")
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict kind, got %v", KindOf(err))
	}
	if CodeOf(err) != CodeDuplicateVin {
		t.Fatalf("expected code %s, got %s", CodeDuplicateVin, CodeOf(err))
	}
	if !IsCode(err, CodeDuplicateVin) {
		t.Fatalf("expected IsCode to match")
	}
}

func TestWrappedError(t *testing.T) {
	inner := Validationf(CodeInvalidBill, "bill must be positive")
	wrapped := fmt.Errorf("close request: %w", inner)
	if KindOf(wrapped) != KindValidation {
		t.Fatalf("expected validation kind through wrapping, got %v", KindOf(wrapped))
	}
	if CodeOf(wrapped) != CodeInvalidBill {
		t.Fatalf("expected code through wrapping, got %s", CodeOf(wrapped))
	}
}

func TestUnknownKind(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected unknown kind for plain error")
	}
	if CodeOf(nil) != "" {
		t.Fatalf("expected empty code for nil error")
	}
}

func TestIntegrityUnwrap(t *testing.T) {
	inner := errors.New("fk violation")
	err := Integrity(CodeUnknownCustomer, inner)
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error to be reachable")
	}
	if KindOf(err) != KindIntegrity {
		t.Fatalf("expected integrity kind")
	}
}
