package request

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusOpen, StatusClosed) {
		t.Fatalf("expected open -> closed allowed")
	}
	if CanTransition(StatusClosed, StatusOpen) {
		t.Fatalf("expected closed -> open not allowed")
	}
	if CanTransition(StatusClosed, StatusClosed) {
		t.Fatalf("expected closed -> closed not allowed (terminal state)")
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(false) != StatusOpen {
		t.Fatalf("expected open without a closed row")
	}
	if StatusOf(true) != StatusClosed {
		t.Fatalf("expected closed with a closed row")
	}
}
