package deverr

import (
	"errors"
	"testing"
)

func TestOpErrorUnwrap(t *testing.T) {
	err := New("qa7.ReplaceCoreMask", ErrInvalidParam, "core 4")

	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Expected errors.Is(err, ErrInvalidParam)")
	}
	if errors.Is(err, ErrBadState) {
		t.Errorf("OpError matched the wrong sentinel")
	}

	want := "qa7.ReplaceCoreMask: invalid parameter (core 4)"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestOpErrorWithoutDetail(t *testing.T) {
	err := New("timer.TickIn", ErrBadState, "")
	if err.Error() != "timer.TickIn: bad internal state" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	var op *OpError
	if !errors.As(error(err), &op) || op.Op != "timer.TickIn" {
		t.Errorf("errors.As failed to recover the OpError")
	}
}
