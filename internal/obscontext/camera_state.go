package obscontext

import (
	"sync"
	"sync/atomic"
)

const (
	// MinExposureMicros and MaxExposureMicros bound CameraState.Exposure.
	MinExposureMicros = 100_000
	MaxExposureMicros = 5_000_000
)

func clampExposure(v int64) int64 {
	if v < MinExposureMicros {
		return MinExposureMicros
	}
	if v > MaxExposureMicros {
		return MaxExposureMicros
	}
	return v
}

// CameraState holds the camera's exposure/gain knobs and the latest
// captured frame. LatestImage is publish-only: the capturer replaces the
// atomic pointer and readers never block writers.
type CameraState struct {
	mu sync.Mutex

	exposureMicros int64
	gain           float64
	enabled        bool

	latestImage atomic.Pointer[Frame]
}

// NewCameraState returns a CameraState with exposure clamped into bounds.
func NewCameraState(exposureMicros int64, gain float64) *CameraState {
	return &CameraState{
		exposureMicros: clampExposure(exposureMicros),
		gain:           gain,
	}
}

// Exposure returns the current exposure in microseconds.
func (c *CameraState) Exposure() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exposureMicros
}

// Gain returns the current gain.
func (c *CameraState) Gain() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gain
}

// SetExposure clamps and stores a new exposure value.
func (c *CameraState) SetExposure(microseconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exposureMicros = clampExposure(microseconds)
}

// AdjustExposure adds delta microseconds to the current exposure, clamped
// into bounds, and returns the resulting value.
func (c *CameraState) AdjustExposure(deltaMicroseconds int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exposureMicros = clampExposure(c.exposureMicros + deltaMicroseconds)
	return c.exposureMicros
}

// SetGain stores a new gain value.
func (c *CameraState) SetGain(gain float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gain = gain
}

// SetEnabled marks the camera enabled/disabled.
func (c *CameraState) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the camera is enabled.
func (c *CameraState) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// PublishFrame atomically replaces the latest captured frame.
func (c *CameraState) PublishFrame(f *Frame) {
	c.latestImage.Store(f)
}

// LatestFrame returns the most recently published frame, or nil if none
// has been captured yet.
func (c *CameraState) LatestFrame() *Frame {
	return c.latestImage.Load()
}
