package obscontext

import (
	"sync"
	"time"

	"skyscope/internal/transform"
)

// PixelCoord names a pixel within a captured frame, using the (row=y,
// col=x) axis convention adopted for the Alignment screen.
type PixelCoord struct {
	Row int // y
	Col int // x
}

// SolverState holds the solver's own tuning knobs: the field-of-view
// estimate handed to the solver as a hint, an optional target pixel (the
// solver reports frame-center when unset), the last time any solve was
// produced (used for "last solve Ns ago" UI messaging, independent of the
// applier's own staleness bookkeeping in TelescopeState), and an optional
// rotation-matrix calibration.
type SolverState struct {
	mu sync.Mutex

	fovEstimate float64
	targetPixel *PixelCoord
	lastSolved  time.Time
	rotation    *transform.Matrix3
}

// NewSolverState returns a SolverState seeded with the given FOV hint.
func NewSolverState(fovEstimate float64) *SolverState {
	return &SolverState{fovEstimate: fovEstimate}
}

// FOVEstimate returns the field-of-view hint passed to the solver.
func (s *SolverState) FOVEstimate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fovEstimate
}

// SetFOVEstimate updates the field-of-view hint.
func (s *SolverState) SetFOVEstimate(fov float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fovEstimate = fov
}

// TargetPixel returns the pixel whose sky coordinate the solver should
// report, or ok=false to mean "frame center".
func (s *SolverState) TargetPixel() (p PixelCoord, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.targetPixel == nil {
		return PixelCoord{}, false
	}
	return *s.targetPixel, true
}

// SetTargetPixel records a new target pixel; callers are expected to
// persist it to disk on change (see internal/persistence).
func (s *SolverState) SetTargetPixel(p PixelCoord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetPixel = &p
}

// ClearTargetPixel reverts to reporting frame-center.
func (s *SolverState) ClearTargetPixel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetPixel = nil
}

// RecordSolveAttempt timestamps the most recent solve. The pipeline calls
// it only for successful solves.
func (s *SolverState) RecordSolveAttempt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSolved = t
}

// LastSolved returns the time passed to the most recent RecordSolveAttempt.
func (s *SolverState) LastSolved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSolved
}

// Rotation returns the active calibration rotation, or ok=false if none
// has been set.
func (s *SolverState) Rotation() (m transform.Matrix3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rotation == nil {
		return transform.Matrix3{}, false
	}
	return *s.rotation, true
}

// SetRotation installs a new calibration rotation; callers are expected to
// persist it to disk on change (see internal/persistence).
func (s *SolverState) SetRotation(m transform.Matrix3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotation = &m
}

// ClearRotation removes the calibration rotation.
func (s *SolverState) ClearRotation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotation = nil
}
