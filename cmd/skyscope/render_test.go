package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderCommandWritesFrameBytes(t *testing.T) {
	t.Setenv("SKYSCOPE_CONFIG", writeTestConfig(t))
	outPath := filepath.Join(t.TempDir(), "frame.raw")

	cmd := newRenderCmd()
	cmd.SetArgs([]string{"--output", outPath})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != frameWidth*frameHeight*3 {
		t.Fatalf("expected %d bytes of RGB raster output, got %d", frameWidth*frameHeight*3, len(data))
	}
}
