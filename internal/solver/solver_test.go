package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyscope/internal/obscontext"
)

func TestFakeSolveReturnsConfiguredResult(t *testing.T) {
	want := obscontext.SolveResult{RA: 279.2437, Dec: 38.7861, Roll: 0, Probability: 0.99}
	f := NewFake(want)

	got, err := f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RA != want.RA || got.Dec != want.Dec || got.Roll != want.Roll {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("expected a timestamp to be stamped")
	}
}

func TestFakeScriptCyclesOutcomes(t *testing.T) {
	f := NewFake(obscontext.SolveResult{RA: 1, Dec: 2})
	f.Script = []bool{false, false, false, false, false, true}

	fails := 0
	for i := 0; i < 5; i++ {
		_, err := f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil)
		if errors.Is(err, ErrNoSolution) {
			fails++
		}
	}
	if fails != 5 {
		t.Fatalf("expected 5 scripted failures, got %d", fails)
	}

	if _, err := f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil); err != nil {
		t.Fatalf("sixth call should succeed per script, got %v", err)
	}

	// Script cycles: the 7th call replays index 0 (failure).
	if _, err := f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected script to cycle back to a failure, got %v", err)
	}
}

func TestFakeCallsCounter(t *testing.T) {
	f := NewFake(obscontext.SolveResult{})
	for i := 0; i < 3; i++ {
		f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil)
	}
	if f.Calls() != 3 {
		t.Fatalf("expected 3 calls, got %d", f.Calls())
	}
}

func TestFakeUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(obscontext.SolveResult{RA: 10, Dec: 20})
	f.Now = func() time.Time { return fixed }

	got, err := f.Solve(context.Background(), obscontext.Frame{}, 21.0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Timestamp.Equal(fixed) {
		t.Fatalf("expected injected clock timestamp, got %v", got.Timestamp)
	}
}
