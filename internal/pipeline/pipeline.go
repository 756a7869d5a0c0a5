// Package pipeline orchestrates the capture -> solve -> analyze dataflow:
// three long-lived workers cooperating over bounded, drop-oldest channels
// and a shared observation context, in the spirit of a worker-pool
// dispatcher but with a fixed, small roster of cooperating loops instead of
// a generic job queue.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"skyscope/internal/analyzer"
	"skyscope/internal/camera"
	"skyscope/internal/logging"
	"skyscope/internal/obscontext"
	"skyscope/internal/solver"
	"skyscope/internal/storage"
	"skyscope/internal/transform"
)

// drainTimeout is the time workers are expected to take to observe the
// running flag going false and exit; Stop gives up waiting after ten times
// this value.
const drainTimeout = 200 * time.Millisecond

// loopSleep bounds the capturer's busy-loop interval.
const loopSleep = 10 * time.Millisecond

// PositionUpdate is broadcast to subscribers whenever the applied,
// corrected telescope position changes at 2-decimal resolution.
type PositionUpdate struct {
	RA        float64
	Dec       float64
	Roll      float64
	Timestamp time.Time
}

// Pipeline wires a camera driver and solver to a shared Context, running
// the capturer, solver, and analyzer loops concurrently.
type Pipeline struct {
	log      *slog.Logger
	cam      camera.Driver
	solv     solver.Solver
	ctx      *obscontext.Context
	analyzer *analyzer.Analyzer
	adjuster *camera.Adjuster
	altAz    transform.AltAzConverter
	store    *storage.Store

	captureCh chan obscontext.Frame
	analyzeCh chan obscontext.Frame

	running  atomicBool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu            sync.Mutex
	subs          map[int]chan PositionUpdate
	nextSubID     int
	lastBroadcast *roundedPosition
}

type roundedPosition struct {
	ra, dec float64
}

// atomicBool is a tiny convenience wrapper; the pipeline only ever needs a
// single flag checked at each loop head.
type atomicBool struct {
	mu sync.RWMutex
	v  bool
}

func (a *atomicBool) set(v bool) {
	a.mu.Lock()
	a.v = v
	a.mu.Unlock()
}

func (a *atomicBool) get() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.v
}

// New builds a Pipeline over cam and solv, sharing obsCtx and altAz with
// the rest of the process. analyzerCapacity sizes the analyzer's rolling
// buffers (0 uses analyzer.DefaultCapacity).
func New(
	logger *slog.Logger,
	cam camera.Driver,
	solv solver.Solver,
	obsCtx *obscontext.Context,
	altAz transform.AltAzConverter,
	analyzerCapacity int,
) *Pipeline {
	return &Pipeline{
		log:       logger,
		cam:       cam,
		solv:      solv,
		ctx:       obsCtx,
		analyzer:  analyzer.New(analyzerCapacity),
		adjuster:  camera.NewAdjuster(obsCtx.Camera),
		altAz:     altAz,
		captureCh: make(chan obscontext.Frame, 1),
		analyzeCh: make(chan obscontext.Frame, 1),
		subs:      make(map[int]chan PositionUpdate),
	}
}

// Analyzer exposes the rolling background/noise/FWHM statistics.
func (p *Pipeline) Analyzer() *analyzer.Analyzer { return p.analyzer }

// SetDiagnostics attaches an optional non-authoritative diagnostics store.
// Solve attempts and capture failures are recorded to it as they occur; a
// nil store (the default) disables recording entirely.
func (p *Pipeline) SetDiagnostics(store *storage.Store) { p.store = store }

// Start launches the capturer, solver, and analyzer loops. It is not
// idempotent; call once per Pipeline.
func (p *Pipeline) Start(ctx context.Context) error {
	if err := p.cam.Start(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running.set(true)

	p.wg.Add(3)
	go p.captureLoop(runCtx)
	go p.solveLoop(runCtx)
	go p.analyzeLoop(runCtx)

	return nil
}

// Stop clears the running flag and waits (at most ten times drainTimeout)
// for all three loops to exit, then stops the camera and closes subscriber
// channels. Safe to call multiple times.
func (p *Pipeline) Stop(ctx context.Context) {
	p.stopOnce.Do(func() {
		start := time.Now()
		p.running.set(false)
		if p.cancel != nil {
			p.cancel()
		}

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(drainTimeout * 10):
			// Workers are expected to drain within drainTimeout; this is a
			// generous backstop so Stop never hangs forever.
		}

		_ = p.cam.Stop(ctx)

		p.mu.Lock()
		for id, ch := range p.subs {
			close(ch)
			delete(p.subs, id)
		}
		p.mu.Unlock()

		logging.LogShutdown(p.log, time.Since(start))
	})
}

// Subscribe returns a channel of position updates and an unsubscribe
// function. Slow subscribers never block the pipeline: a full channel
// drops the update and logs a warning.
func (p *Pipeline) Subscribe() (<-chan PositionUpdate, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSubID
	p.nextSubID++
	ch := make(chan PositionUpdate, 8)
	p.subs[id] = ch
	unsub := func() {
		p.mu.Lock()
		if c, ok := p.subs[id]; ok {
			close(c)
			delete(p.subs, id)
		}
		p.mu.Unlock()
	}
	return ch, unsub
}

func (p *Pipeline) broadcast(update PositionUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, ch := range p.subs {
		select {
		case ch <- update:
		default:
			p.log.Warn("position update channel full", "subscriber", id)
		}
	}
}

// captureLoop repeatedly requests a frame from the camera, publishes it to
// CameraState.latest_image, and pushes a copy onto captureCh, dropping the
// oldest pending frame if the channel is already full.
func (p *Pipeline) captureLoop(ctx context.Context) {
	defer p.wg.Done()
	for p.running.get() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := p.cam.Capture(ctx)
		if err != nil {
			logging.LogCaptureFailure(p.log, err)
			p.store.RecordCaptureFailure(storage.CaptureFailureRecord{OccurredAt: time.Now(), Error: err.Error()})
			sleep(ctx, loopSleep)
			continue
		}

		p.ctx.Camera.PublishFrame(&frame)
		pushDropOldest(p.captureCh, frame)

		sleep(ctx, loopSleep)
	}
}

// solveLoop blocking-receives from captureCh, invokes the solver, applies
// successful results to TelescopeState, mirrors the frame to the analyzer,
// and drives the Adjuster on failure.
func (p *Pipeline) solveLoop(ctx context.Context) {
	defer p.wg.Done()
	for p.running.get() {
		var frame obscontext.Frame
		select {
		case <-ctx.Done():
			return
		case frame = <-p.captureCh:
		}

		hintFOV := p.ctx.Solver.FOVEstimate()
		var targetPixel *obscontext.PixelCoord
		if pix, ok := p.ctx.Solver.TargetPixel(); ok {
			targetPixel = &pix
		}

		start := time.Now()
		result, err := p.solv.Solve(ctx, frame, hintFOV, targetPixel)
		duration := time.Since(start)

		if err != nil {
			logging.LogSolveAttempt(p.log, false, duration, err)
			p.adjuster.Fail()
			p.store.RecordSolveAttempt(storage.SolveAttemptRecord{
				AttemptedAt: start, Succeeded: false, DurationMS: duration.Milliseconds(), Error: err.Error(),
			})
			continue
		}
		logging.LogSolveAttempt(p.log, true, duration, nil)
		p.adjuster.Success()
		p.ctx.Solver.RecordSolveAttempt(result.Timestamp)
		p.store.RecordSolveAttempt(storage.SolveAttemptRecord{
			AttemptedAt: start, Succeeded: true, RA: result.RA, Dec: result.Dec,
			Probability: result.Probability, DurationMS: duration.Milliseconds(),
		})

		p.applyResult(result)

		pushDropOldest(p.analyzeCh, frame)
	}
}

// applyResult runs the state-update applier and, only when the rounded
// position changed, broadcasts the new pointing to subscribers.
func (p *Pipeline) applyResult(result obscontext.SolveResult) {
	var rotation *transform.Matrix3
	if m, ok := p.ctx.Solver.Rotation(); ok {
		rotation = &m
	}
	offset := p.ctx.CameraOffset()
	loc := p.ctx.Environment.Location()

	ra, dec, applied := p.ctx.Telescope.ApplySolveResult(result, rotation, offset, p.altAz, loc)
	if !applied {
		logging.LogStateDiscarded(p.log, result.Timestamp, p.ctx.Telescope.LastSolved())
		return
	}
	logging.LogStateApplied(p.log, ra, dec, result.Roll)

	rounded := roundedPosition{ra: roundTo2(ra), dec: roundTo2(dec)}
	p.mu.Lock()
	changed := p.lastBroadcast == nil || *p.lastBroadcast != rounded
	if changed {
		p.lastBroadcast = &rounded
	}
	p.mu.Unlock()

	if changed {
		logging.LogBroadcastUpdate(p.log, ra, dec)
		p.broadcast(PositionUpdate{RA: ra, Dec: dec, Roll: result.Roll, Timestamp: result.Timestamp})
	}
}

// analyzeLoop blocking-receives from analyzeCh and folds each frame into
// the rolling background/noise/FWHM statistics.
func (p *Pipeline) analyzeLoop(ctx context.Context) {
	defer p.wg.Done()
	for p.running.get() {
		var frame obscontext.Frame
		select {
		case <-ctx.Done():
			return
		case frame = <-p.analyzeCh:
		}
		p.analyzer.Observe(frame)
	}
}

// pushDropOldest performs a non-blocking send, discarding the channel's
// current occupant first if it is full so freshness always wins.
func pushDropOldest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func roundTo2(v float64) float64 {
	return float64(int64(v*100+sign(v)*0.5)) / 100
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
