// Package camera implements the camera-driver contract: start/stop/
// configure/capture, idempotent start/stop, and an adaptive-exposure
// adjuster driven by solver success/failure streaks.
package camera

import (
	"context"
	"errors"
	"sync"
	"time"

	"skyscope/internal/obscontext"
)

// ErrNotRunning is returned by Capture when the driver has not been started.
var ErrNotRunning = errors.New("camera not running")

// Driver is the external camera collaborator, left unspecified beyond
// exposure/gain knobs. Implementations: a real SBC driver
// (platform-specific, not included here) and Fake, used for development
// and the --ui debug render.
type Driver interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Configure(ctx context.Context, exposureMicros int64, gain float64) error
	Capture(ctx context.Context) (obscontext.Frame, error)
}

// state is the driver's Stopped/Running lifecycle.
type state int

const (
	stateStopped state = iota
	stateRunning
)

// verifyRetries bounds Configure's convergence-check retries.
const verifyRetries = 10

// convergenceTolerancePct is the allowed exposure deviation when verifying
// a configure() call with a test capture.
const convergenceTolerancePct = 0.01

// gainTolerance is the allowed gain deviation when verifying configure().
const gainTolerance = 0.1

// baseDriver provides the shared Stopped<->Running bookkeeping that both
// the fake and (future) real drivers build on.
type baseDriver struct {
	mu    sync.Mutex
	st    state
	sleep func(time.Duration)
}

func newBaseDriver() baseDriver {
	return baseDriver{sleep: time.Sleep}
}

// Start transitions Stopped -> Running; idempotent.
func (b *baseDriver) Start(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.st = stateRunning
	return nil
}

// Stop transitions Running -> Stopped; idempotent.
func (b *baseDriver) Stop(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.st = stateStopped
	return nil
}

func (b *baseDriver) running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st == stateRunning
}
