package camera

import "skyscope/internal/obscontext"

const (
	// AdjustLimit consecutive failures trigger an exposure increase;
	// 2*AdjustLimit consecutive successes trigger a decrease.
	AdjustLimit = 5

	// AdjustSizeMicros is the exposure step applied on each adjustment.
	AdjustSizeMicros = 100_000
)

// Adjuster tracks consecutive solver successes/failures and nudges the
// camera's exposure to compensate. It has a single owner (the solver
// loop) and needs no internal locking; only its target CameraState is
// shared.
type Adjuster struct {
	camera *obscontext.CameraState

	totalFails      int
	recentFails     int
	totalSuccesses  int
	recentSuccesses int
}

// NewAdjuster returns an Adjuster that will mutate cam's exposure.
func NewAdjuster(cam *obscontext.CameraState) *Adjuster {
	return &Adjuster{camera: cam}
}

// Fail ends any success streak, records a failure, and on reaching
// AdjustLimit consecutive failures increases exposure by AdjustSizeMicros
// and resets the fail streak.
func (a *Adjuster) Fail() {
	a.recentSuccesses = 0

	a.totalFails++
	a.recentFails++
	if a.recentFails >= AdjustLimit {
		a.camera.AdjustExposure(AdjustSizeMicros)
		a.recentFails = 0
	}
}

// Success ends any fail streak, records a success, and on reaching
// 2*AdjustLimit consecutive successes decreases exposure by
// AdjustSizeMicros and resets the success streak.
func (a *Adjuster) Success() {
	a.recentFails = 0

	a.totalSuccesses++
	a.recentSuccesses++
	if a.recentSuccesses >= AdjustLimit*2 {
		a.camera.AdjustExposure(-AdjustSizeMicros)
		a.recentSuccesses = 0
	}
}

// RecentFails returns the current consecutive-failure streak.
func (a *Adjuster) RecentFails() int { return a.recentFails }

// RecentSuccesses returns the current consecutive-success streak.
func (a *Adjuster) RecentSuccesses() int { return a.recentSuccesses }

// TotalFails returns the lifetime failure count.
func (a *Adjuster) TotalFails() int { return a.totalFails }

// TotalSuccesses returns the lifetime success count.
func (a *Adjuster) TotalSuccesses() int { return a.totalSuccesses }
