package catalog

import (
	"sync"
	"time"

	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

// EphemerisTTL bounds how long a cached solar-system position lookup is
// reused before it is recomputed.
const EphemerisTTL = 3 * time.Second

// EphemerisSource computes solar-system body positions for a given time.
// The concrete algorithm is out of scope; implementations range from a
// fixed lookup table to a full VSOP87 series.
type EphemerisSource interface {
	Positions(t time.Time) ([]obscontext.CelestialObject, error)
}

// EphemerisCache memoizes EphemerisSource.Positions for up to TTL and
// invalidates itself whenever the requested time jumps backward or more
// than TTL forward of the cached entry, so a clock change or pipeline
// time-advance never serves stale positions silently.
type EphemerisCache struct {
	mu     sync.Mutex
	source EphemerisSource
	ttl    time.Duration

	cachedAt  time.Time
	cachedFor time.Time
	positions []obscontext.CelestialObject
}

// NewEphemerisCache wraps source with a TTL cache. A non-positive ttl
// falls back to EphemerisTTL.
func NewEphemerisCache(source EphemerisSource, ttl time.Duration) *EphemerisCache {
	if ttl <= 0 {
		ttl = EphemerisTTL
	}
	return &EphemerisCache{source: source, ttl: ttl}
}

// Positions returns solar-system body positions for t, recomputing only
// when the cache is empty, expired, or t has jumped outside the cached
// window.
func (c *EphemerisCache) Positions(t time.Time) ([]obscontext.CelestialObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cachedFor.IsZero() && !c.invalidated(t) {
		return c.positions, nil
	}

	positions, err := c.source.Positions(t)
	if err != nil {
		return nil, err
	}
	c.positions = positions
	c.cachedFor = t
	c.cachedAt = time.Now()
	return positions, nil
}

func (c *EphemerisCache) invalidated(t time.Time) bool {
	if t.Before(c.cachedFor) {
		return true
	}
	return t.Sub(c.cachedFor) > c.ttl
}

// VisibleObjects filters objects down to those above minAltitudeDeg at
// time t from the given location, per the environment's visibility floor.
func VisibleObjects(objs []obscontext.CelestialObject, conv transform.AltAzConverter, t time.Time, loc obscontext.Location, minAltitudeDeg float64) []obscontext.CelestialObject {
	var visible []obscontext.CelestialObject
	for _, o := range objs {
		alt, _ := conv.RadecToAltAz(o.RA, o.Dec, t, loc.LatDeg, loc.LonDeg)
		if alt > minAltitudeDeg {
			visible = append(visible, o)
		}
	}
	return visible
}
