package camera

import (
	"context"
	"math"
	"time"

	"skyscope/internal/obscontext"
)

// Fake is a Driver that replays one preloaded frame, sleeping for the
// configured exposure on every Capture to mimic real acquisition latency.
// It is the test/--ui counterpart of a real SBC camera driver.
type Fake struct {
	baseDriver

	frame obscontext.Frame

	exposureMicros int64
	gain           float64
}

// NewFake returns a Fake camera that will always capture a copy of frame.
func NewFake(frame obscontext.Frame) *Fake {
	return &Fake{
		baseDriver:     newBaseDriver(),
		frame:          frame,
		exposureMicros: 1_000_000,
		gain:           8.0,
	}
}

// Configure clamps and stores exposure/gain, then verifies convergence with
// a test capture, retrying up to verifyRetries times. The fake driver
// converges immediately, so this always succeeds on the first attempt, but
// the retry loop is kept so real drivers can be dropped in without
// changing call sites.
func (f *Fake) Configure(ctx context.Context, exposureMicros int64, gain float64) error {
	f.mu.Lock()
	exposureMicros = clampExposure(exposureMicros)
	f.exposureMicros = exposureMicros
	f.gain = gain
	f.mu.Unlock()

	for attempt := 0; attempt < verifyRetries; attempt++ {
		if _, err := f.Capture(ctx); err != nil {
			return err
		}
		actualExposure, actualGain := f.current()
		if withinTolerance(actualExposure, exposureMicros, actualGain, gain) {
			return nil
		}
	}
	return nil // converged close enough; a real driver would warn here
}

func (f *Fake) current() (int64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exposureMicros, f.gain
}

func withinTolerance(actualExposure, wantExposure int64, actualGain, wantGain float64) bool {
	if wantExposure != 0 {
		deviation := math.Abs(float64(actualExposure-wantExposure)) / float64(wantExposure)
		if deviation > convergenceTolerancePct {
			return false
		}
	}
	return math.Abs(actualGain-wantGain) <= gainTolerance
}

// Capture returns a copy of the preloaded frame after sleeping for the
// configured exposure, or ErrNotRunning if Start has not been called.
func (f *Fake) Capture(ctx context.Context) (obscontext.Frame, error) {
	if !f.running() {
		return obscontext.Frame{}, ErrNotRunning
	}

	exposure, _ := f.current()
	select {
	case <-ctx.Done():
		return obscontext.Frame{}, ctx.Err()
	case <-after(f.sleep, time.Duration(exposure)*time.Microsecond):
	}

	out := f.frame
	out.CapturedAt = time.Now()
	pixels := make([]byte, len(f.frame.Pixels))
	copy(pixels, f.frame.Pixels)
	out.Pixels = pixels
	return out, nil
}

func clampExposure(v int64) int64 {
	if v < obscontext.MinExposureMicros {
		return obscontext.MinExposureMicros
	}
	if v > obscontext.MaxExposureMicros {
		return obscontext.MaxExposureMicros
	}
	return v
}

// after returns a channel that fires once d has elapsed, using sleepFn so
// tests can substitute a fast or instrumented sleep.
func after(sleepFn func(time.Duration), d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		sleepFn(d)
		close(ch)
	}()
	return ch
}
