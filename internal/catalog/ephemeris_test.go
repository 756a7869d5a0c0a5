package catalog

import (
	"testing"
	"time"

	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

type fakeSource struct {
	calls int
	objs  []obscontext.CelestialObject
}

func (f *fakeSource) Positions(t time.Time) ([]obscontext.CelestialObject, error) {
	f.calls++
	return f.objs, nil
}

func TestEphemerisCacheReusesWithinTTL(t *testing.T) {
	src := &fakeSource{objs: []obscontext.CelestialObject{{Name: "Mars"}}}
	cache := NewEphemerisCache(src, time.Second)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := cache.Positions(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Positions(base.Add(500 * time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected cache hit within TTL, got %d source calls", src.calls)
	}
}

func TestEphemerisCacheExpiresPastTTL(t *testing.T) {
	src := &fakeSource{objs: []obscontext.CelestialObject{{Name: "Mars"}}}
	cache := NewEphemerisCache(src, time.Second)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.Positions(base)
	cache.Positions(base.Add(2 * time.Second))

	if src.calls != 2 {
		t.Fatalf("expected recompute past TTL, got %d source calls", src.calls)
	}
}

func TestEphemerisCacheInvalidatesOnTimeJumpBackward(t *testing.T) {
	src := &fakeSource{objs: []obscontext.CelestialObject{{Name: "Mars"}}}
	cache := NewEphemerisCache(src, time.Second)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.Positions(base)
	cache.Positions(base.Add(-time.Minute))

	if src.calls != 2 {
		t.Fatalf("expected recompute on backward time jump, got %d source calls", src.calls)
	}
}

func TestVisibleObjectsFiltersBelowFloor(t *testing.T) {
	objs := []obscontext.CelestialObject{
		{Name: "Zenith Star", RA: 0, Dec: 40}, // about 12 degrees up for lat 40 at this time
		{Name: "Below Horizon", RA: 180, Dec: -85},
	}
	loc := obscontext.Location{LatDeg: 40, LonDeg: 0}
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	visible := VisibleObjects(objs, transform.StandardAltAz{}, now, loc, 10.0)
	if len(visible) == 0 {
		t.Fatalf("expected at least one visible object")
	}
	for _, v := range visible {
		if v.Name == "Below Horizon" {
			t.Fatalf("expected below-horizon object to be filtered out")
		}
	}
}
