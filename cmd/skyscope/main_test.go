package main

import (
	"errors"
	"fmt"
	"testing"

	"skyscope/internal/obscontext"
)

func TestExitCodeNilIsZero(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestExitCodeInitFailureIsOne(t *testing.T) {
	err := fmt.Errorf("wrap: %w", obscontext.ErrInitFailure)
	if got := exitCode(err); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestExitCodeOtherErrorIsTwo(t *testing.T) {
	if got := exitCode(errors.New("disk full")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
