package obscontext

import "sync"

// Context is the canonical shared observation model: one instance is
// created at start-up and lives for process lifetime. Every field owns its
// own mutex (or, for Optics, a mutex held at this level since optics
// changes are rare and come only from the settings/alignment screens); no
// single global lock ever guards more than one of these at a time.
type Context struct {
	Environment *Environment
	Camera      *CameraState
	Telescope   *TelescopeState
	Solver      *SolverState
	Target      *TargetState

	opticsMu sync.Mutex
	optics   TelescopeOptics

	offsetMu sync.Mutex
	offset   *CameraOffset
}

// New builds a Context with the given environment and optics, and fresh
// zero-value camera/telescope/solver/target state.
func New(env *Environment, optics TelescopeOptics) *Context {
	return &Context{
		Environment: env,
		Camera:      NewCameraState(1_000_000, 8.0),
		Telescope:   NewTelescopeState(),
		Solver:      NewSolverState(21.0),
		Target:      NewTargetState(),
		optics:      optics,
	}
}

// Optics returns a copy of the current optics configuration.
func (c *Context) Optics() TelescopeOptics {
	c.opticsMu.Lock()
	defer c.opticsMu.Unlock()
	return c.optics
}

// SetOptics replaces the optics configuration.
func (c *Context) SetOptics(o TelescopeOptics) {
	c.opticsMu.Lock()
	defer c.opticsMu.Unlock()
	c.optics = o
}

// CameraOffset returns the current alt/az pointing correction, or nil if
// none has been calibrated.
func (c *Context) CameraOffset() *CameraOffset {
	c.offsetMu.Lock()
	defer c.offsetMu.Unlock()
	return c.offset
}

// SetCameraOffset replaces the alt/az pointing correction. Passing nil
// clears it.
func (c *Context) SetCameraOffset(o *CameraOffset) {
	c.offsetMu.Lock()
	defer c.offsetMu.Unlock()
	c.offset = o
}
