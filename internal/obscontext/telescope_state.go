package obscontext

import (
	"sync"
	"time"

	"skyscope/internal/transform"
)

// CameraOffset is a fixed alt/az correction applied between the solver's
// reported pointing and the telescope's true mechanical pointing (alt/az
// is the current path; ra/dec is legacy and not implemented here).
type CameraOffset struct {
	DeltaAltDeg float64
	DeltaAzDeg  float64
}

type radec struct {
	ra, dec float64
}

// TelescopeState is the canonical mount position: where the solver last
// put us, corrected by an optional rotation calibration and camera offset.
// TelescopeState.position is updated only by the solve-result applier.
type TelescopeState struct {
	mu sync.Mutex

	position     *radec
	lastPosition *radec
	mountRA      float64
	mountDec     float64
	roll         float64
	speedDeg     float64
	lastSolved   time.Time
	logging      bool
}

// NewTelescopeState returns an unsolved TelescopeState.
func NewTelescopeState() *TelescopeState {
	return &TelescopeState{}
}

// Position returns the current (ra, dec), or ok=false if not yet solved.
func (t *TelescopeState) Position() (ra, dec float64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.position == nil {
		return 0, 0, false
	}
	return t.position.ra, t.position.dec, true
}

// LastPosition returns the previous (ra, dec) before the most recent
// update, or ok=false if there has been no prior solve.
func (t *TelescopeState) LastPosition() (ra, dec float64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastPosition == nil {
		return 0, 0, false
	}
	return t.lastPosition.ra, t.lastPosition.dec, true
}

// Roll returns the telescope's last reported roll in degrees.
func (t *TelescopeState) Roll() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roll
}

// MountPosition returns the raw, uncorrected solver output.
func (t *TelescopeState) MountPosition() (ra, dec float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mountRA, t.mountDec
}

// Speed returns the great-circle delta, in degrees, between the two most
// recent distinct positions.
func (t *TelescopeState) Speed() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.speedDeg
}

// LastSolved returns the timestamp of the most recently applied result.
func (t *TelescopeState) LastSolved() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSolved
}

// SetLogging toggles coordinate-log writing for subsequent applied solves.
func (t *TelescopeState) SetLogging(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logging = enabled
}

// Logging reports whether the coordinate log is active.
func (t *TelescopeState) Logging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logging
}

// ApplySolveResult is the state-update applier: stale results (timestamp
// <= last solved) are discarded; otherwise the mount position is
// recorded, an optional rotation calibration and camera offset are
// applied, and speed is recomputed against the prior position.
// It returns the corrected (ra, dec) and whether the result was applied.
func (t *TelescopeState) ApplySolveResult(
	result SolveResult,
	rotation *transform.Matrix3,
	offset *CameraOffset,
	conv transform.AltAzConverter,
	loc Location,
) (ra, dec float64, applied bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastSolved.IsZero() && !result.Timestamp.After(t.lastSolved) {
		return 0, 0, false
	}

	t.mountRA, t.mountDec = result.RA, result.Dec
	t.roll = normalizeRoll(result.Roll)
	t.lastSolved = result.Timestamp

	ra, dec = result.RA, result.Dec

	if rotation != nil {
		ra, dec = transform.ApplyRotation(*rotation, ra, dec, t.roll)
	}

	if offset != nil {
		alt, az := conv.RadecToAltAz(ra, dec, result.Timestamp, loc.LatDeg, loc.LonDeg)
		alt += offset.DeltaAltDeg
		az += offset.DeltaAzDeg
		ra, dec = conv.AltAzToRadec(alt, az, result.Timestamp, loc.LatDeg, loc.LonDeg)
	}

	if t.position != nil {
		t.speedDeg = transform.HaversineDist(t.position.ra, t.position.dec, ra, dec)
		prev := *t.position
		t.lastPosition = &prev
	} else {
		t.speedDeg = 0
	}

	t.position = &radec{ra: ra, dec: dec}

	return ra, dec, true
}

// Drift advances the current position by the sidereal rate over
// deltaSeconds. It is a no-op if no position has been solved yet.
func (t *TelescopeState) Drift(deltaSeconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.position == nil {
		return
	}
	t.position.ra = transform.SkyDrift(t.position.ra, t.position.dec, deltaSeconds)
}

func normalizeRoll(rollDeg float64) float64 {
	r := rollDeg
	for r >= 360 {
		r -= 360
	}
	for r < 0 {
		r += 360
	}
	return r
}
