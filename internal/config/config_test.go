package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(envVar, filepath.Join(t.TempDir(), "missing.json"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Network.BroadcastPort != 10001 {
		t.Fatalf("expected default broadcast port 10001, got %d", cfg.Network.BroadcastPort)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadReadsJSONOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{"logging":{"level":"debug","format":"json"},"network":{"broadcast_port":20001}}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("expected overridden logging config, got %+v", cfg.Logging)
	}
	if cfg.Network.BroadcastPort != 20001 {
		t.Fatalf("expected overridden broadcast port, got %d", cfg.Network.BroadcastPort)
	}
	// Fields absent from the override JSON must retain their defaults.
	if cfg.Network.DashboardPort != 8090 {
		t.Fatalf("expected default dashboard port preserved, got %d", cfg.Network.DashboardPort)
	}
}

func TestEphemerisRefreshIntervalDefaultsWhenUnset(t *testing.T) {
	e := Ephemeris{}
	if got := e.RefreshInterval().Seconds(); got != 3 {
		t.Fatalf("expected default 3s refresh interval, got %v", got)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envVar, path)
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for malformed JSON config")
	}
}
