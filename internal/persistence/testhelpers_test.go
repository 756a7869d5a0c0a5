package persistence

import (
	"os"
	"testing"
)

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("not a calibration file"), 0o644)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
