package solver

import (
	"context"
	"sync"
	"time"

	"skyscope/internal/obscontext"
)

// Fake is a Solver that replays a scripted sequence of outcomes, cycling
// back to the first entry once exhausted. An empty Script always succeeds
// with Result. This is the deterministic stand-in used by the pipeline's
// end-to-end tests and by `--ui` debug renders.
type Fake struct {
	mu     sync.Mutex
	Result obscontext.SolveResult
	Script []bool // true = succeed, false = ErrNoSolution
	Now    func() time.Time

	calls int
}

// NewFake returns a Fake that always succeeds with result.
func NewFake(result obscontext.SolveResult) *Fake {
	return &Fake{Result: result, Now: time.Now}
}

// Solve returns Result with a fresh timestamp, or ErrNoSolution according
// to Script.
func (f *Fake) Solve(ctx context.Context, frame obscontext.Frame, hintFOV float64, targetPixel *obscontext.PixelCoord) (obscontext.SolveResult, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	f.mu.Unlock()

	if len(f.Script) > 0 && !f.Script[idx%len(f.Script)] {
		return obscontext.SolveResult{}, ErrNoSolution
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	r := f.Result
	r.Timestamp = now()
	return r, nil
}

// Calls returns the number of times Solve has been invoked.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
