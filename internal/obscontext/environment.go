package obscontext

import (
	"sync"
	"time"

	"skyscope/internal/transform"
)

// Environment holds the observer's fixed location and the clock the rest
// of the system advances. Location is set once at construction; only Time
// advances, on each pipeline tick.
type Environment struct {
	mu sync.Mutex

	location           Location
	minVisibleAltitude float64
	t                  time.Time
}

// NewEnvironment builds an Environment fixed to loc, with the given
// visibility floor in degrees.
func NewEnvironment(loc Location, minVisibleAltitude float64) *Environment {
	return &Environment{
		location:           loc,
		minVisibleAltitude: minVisibleAltitude,
		t:                  time.Now(),
	}
}

// Location returns the immutable observer location.
func (e *Environment) Location() Location {
	return e.location
}

// MinVisibleAltitude returns the visibility floor in degrees.
func (e *Environment) MinVisibleAltitude() float64 {
	return e.minVisibleAltitude
}

// Now returns the environment's current logical time.
func (e *Environment) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t
}

// Advance sets the environment's logical time forward to t. Callers
// driving the sky-drift ticker call this once per tick.
func (e *Environment) Advance(t time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.t = t
}

// IsVisible reports whether (ra, dec) is above the visibility floor at the
// environment's current time, using conv to resolve altitude.
func (e *Environment) IsVisible(conv transform.AltAzConverter, raDeg, decDeg float64) bool {
	now := e.Now()
	alt, _ := conv.RadecToAltAz(raDeg, decDeg, now, e.location.LatDeg, e.location.LonDeg)
	return alt > e.minVisibleAltitude
}
