package obscontext

import (
	"testing"
	"time"

	"skyscope/internal/transform"
)

func TestCameraExposureClamp(t *testing.T) {
	c := NewCameraState(10, 1.0)
	if got := c.Exposure(); got != MinExposureMicros {
		t.Errorf("construction below min: got %d want %d", got, MinExposureMicros)
	}

	c.SetExposure(10_000_000)
	if got := c.Exposure(); got != MaxExposureMicros {
		t.Errorf("set above max: got %d want %d", got, MaxExposureMicros)
	}

	c.SetExposure(1_000_000)
	if got := c.AdjustExposure(MaxExposureMicros); got != MaxExposureMicros {
		t.Errorf("adjust overflow: got %d want %d", got, MaxExposureMicros)
	}
}

func TestApplySolveResultFirstSolve(t *testing.T) {
	ts := NewTelescopeState()
	conv := transform.StandardAltAz{}
	loc := Location{LatDeg: 43.1566, LonDeg: -77.6088}

	result := SolveResult{RA: 279.2437, Dec: 38.7861, Roll: 0, Timestamp: time.Unix(100, 0)}
	ra, dec, applied := ts.ApplySolveResult(result, nil, nil, conv, loc)
	if !applied {
		t.Fatalf("expected first solve to apply")
	}
	if ra != 279.2437 || dec != 38.7861 {
		t.Errorf("unexpected corrected position: %v, %v", ra, dec)
	}
	if ts.Speed() != 0 {
		t.Errorf("speed after first solve should be 0, got %v", ts.Speed())
	}
}

func TestApplySolveResultDiscardsStale(t *testing.T) {
	ts := NewTelescopeState()
	conv := transform.StandardAltAz{}
	loc := Location{LatDeg: 43.1566, LonDeg: -77.6088}

	first := SolveResult{RA: 279.2437, Dec: 38.7861, Timestamp: time.Unix(100, 0)}
	ts.ApplySolveResult(first, nil, nil, conv, loc)

	stale := SolveResult{RA: 0, Dec: 0, Timestamp: time.Unix(99, 0)}
	_, _, applied := ts.ApplySolveResult(stale, nil, nil, conv, loc)
	if applied {
		t.Fatalf("stale result should not apply")
	}

	ra, dec, ok := ts.Position()
	if !ok || ra != 279.2437 || dec != 38.7861 {
		t.Errorf("position changed by stale result: %v %v %v", ra, dec, ok)
	}
	if _, _, ok := ts.LastPosition(); ok {
		t.Errorf("last position should be unchanged (unset) after a discarded stale result")
	}
}

func TestApplySolveResultComputesSpeed(t *testing.T) {
	ts := NewTelescopeState()
	conv := transform.StandardAltAz{}
	loc := Location{LatDeg: 43.1566, LonDeg: -77.6088}

	ts.ApplySolveResult(SolveResult{RA: 10, Dec: 10, Timestamp: time.Unix(100, 0)}, nil, nil, conv, loc)
	ts.ApplySolveResult(SolveResult{RA: 10, Dec: 11, Timestamp: time.Unix(101, 0)}, nil, nil, conv, loc)

	if ts.Speed() <= 0 {
		t.Errorf("expected nonzero speed after second distinct solve, got %v", ts.Speed())
	}
	lra, ldec, ok := ts.LastPosition()
	if !ok || lra != 10 || ldec != 10 {
		t.Errorf("expected last position to be prior solve: %v %v %v", lra, ldec, ok)
	}
}

func TestOpticsDerivedFields(t *testing.T) {
	o := DefaultOptics()
	if o.Magnification() != 48 {
		t.Errorf("magnification: got %v want 48", o.Magnification())
	}
	if got := o.TrueFOV(); got <= 0 {
		t.Errorf("true fov should be positive, got %v", got)
	}
}

func TestTargetStateAbsentByDefault(t *testing.T) {
	ts := NewTargetState()
	if ts.HasTarget() {
		t.Errorf("fresh target state should be absent")
	}
	ts.SetTarget("Vega", 279.23, 38.78)
	if !ts.HasTarget() {
		t.Errorf("target should be present after SetTarget")
	}
	ts.Clear()
	if ts.HasTarget() {
		t.Errorf("target should be absent after Clear")
	}
}
