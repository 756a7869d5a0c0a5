package analyzer

import (
	"testing"

	"skyscope/internal/obscontext"
)

func flatFrame(w, h int, value byte) obscontext.Frame {
	pixels := make([]byte, w*h)
	for i := range pixels {
		pixels[i] = value
	}
	return obscontext.Frame{Pixels: pixels, Width: w, Height: h, Channels: 1}
}

func TestRingBufferCapacityEnforced(t *testing.T) {
	a := New(3)
	for i := 0; i < 10; i++ {
		a.Observe(flatFrame(4, 4, byte(i)))
	}
	snap := a.Snapshot()
	if snap.SampleCount != 3 {
		t.Fatalf("expected ring buffer capped at 3 samples, got %d", snap.SampleCount)
	}
}

func TestObserveFlatFrameHasZeroNoise(t *testing.T) {
	a := New(DefaultCapacity)
	a.Observe(flatFrame(8, 8, 100))

	snap := a.Snapshot()
	if snap.Background != 100 {
		t.Fatalf("expected background 100, got %f", snap.Background)
	}
	if snap.Noise != 0 {
		t.Fatalf("expected zero noise for flat frame, got %f", snap.Noise)
	}
}

func TestClassifyWarnsOnDefocus(t *testing.T) {
	snap := Snapshot{SampleCount: 1, FWHM: 20}
	warnings := classify(snap)
	found := false
	for _, w := range warnings {
		if w == "defocused" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected defocused warning, got %v", warnings)
	}
}

func TestClassifyEmptyWhenNoSamples(t *testing.T) {
	snap := Snapshot{SampleCount: 0}
	if warnings := classify(snap); len(warnings) != 0 {
		t.Fatalf("expected no warnings with zero samples, got %v", warnings)
	}
}

func TestEstimateFWHMOnStarLikePeak(t *testing.T) {
	w, h := 16, 1
	pixels := make([]byte, w*h)
	for i := range pixels {
		pixels[i] = 10
	}
	// A narrow bright peak centered in the row.
	pixels[7] = 200
	pixels[8] = 200
	frame := obscontext.Frame{Pixels: pixels, Width: w, Height: h, Channels: 1}

	fwhm := estimateFWHM(frame)
	if fwhm <= 0 {
		t.Fatalf("expected positive FWHM for a star-like peak, got %f", fwhm)
	}
}

func TestSnapshotConcurrentReadSafe(t *testing.T) {
	a := New(DefaultCapacity)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			a.Observe(flatFrame(4, 4, byte(i)))
		}
		close(done)
	}()
	for i := 0; i < 50; i++ {
		a.Snapshot()
	}
	<-done
}
