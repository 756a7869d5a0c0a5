// Package config loads the process-wide runtime configuration: logging,
// network ports, catalog/database paths, and ephemeris tuning, from a
// JSON file located by the SKYSCOPE_CONFIG environment variable (falling
// back to a default path), with defaults for everything it omits.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"skyscope/internal/fsutil"
)

const (
	defaultConfigPath = "~/.config/skyscope/config.json"
	envVar             = "SKYSCOPE_CONFIG"
)

// Config holds user-editable runtime settings.
type Config struct {
	Logging   Logging   `json:"logging"`
	Network   Network   `json:"network"`
	Paths     Paths     `json:"paths"`
	Ephemeris Ephemeris `json:"ephemeris"`
	Site      Site      `json:"site"`
}

// Logging controls the slog handler built at start-up.
type Logging struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json, or empty to auto-detect from stdout
}

// Network configures the broadcast and dashboard listeners.
type Network struct {
	BroadcastPort int  `json:"broadcast_port"`
	DashboardPort int  `json:"dashboard_port"`
	EnableBroadcast bool `json:"enable_broadcast"`
	EnableDashboard bool `json:"enable_dashboard"`
}

// Paths locates on-disk artifacts.
type Paths struct {
	CatalogDB      string `json:"catalog_db"`
	DiagnosticsDB  string `json:"diagnostics_db"`
	SettingsFile   string `json:"settings_file"`
	OffsetFile     string `json:"offset_file"`
	CoordLogFile   string `json:"coord_log_file"`

	// FakeFrameBitmap optionally points the fake camera driver at a still
	// image to replay instead of its built-in synthetic starfield.
	FakeFrameBitmap string `json:"fake_frame_bitmap"`
}

// Ephemeris tunes the planet-position cache.
type Ephemeris struct {
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
}

// RefreshInterval converts RefreshIntervalSeconds to a time.Duration,
// falling back to 3 seconds (the catalog package's own default) when unset.
func (e Ephemeris) RefreshInterval() time.Duration {
	if e.RefreshIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(e.RefreshIntervalSeconds) * time.Second
}

// Site describes the observer's fixed location, used at start-up to seed
// the Environment.
type Site struct {
	LatDeg             float64 `json:"lat_deg"`
	LonDeg             float64 `json:"lon_deg"`
	MinVisibleAltitude float64 `json:"min_visible_altitude_deg"`
}

func defaultConfig() *Config {
	return &Config{
		Logging: Logging{Level: "info", Format: ""},
		Network: Network{
			BroadcastPort:   10001,
			DashboardPort:   8090,
			EnableBroadcast: true,
			EnableDashboard: true,
		},
		Paths: Paths{
			CatalogDB:     "./catalog.sqlite",
			DiagnosticsDB: "./diagnostics.sqlite",
			SettingsFile:  "./settings.txt",
			OffsetFile:    "./offset.bin",
			CoordLogFile:  "./coord_log.txt",
		},
		Ephemeris: Ephemeris{RefreshIntervalSeconds: 3},
		Site:      Site{LatDeg: 0, LonDeg: 0, MinVisibleAltitude: 10},
	}
}

// Load reads configuration from the path named by SKYSCOPE_CONFIG (falling
// back to defaultConfigPath), returning defaults unchanged if the file
// does not exist.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := os.Getenv(envVar)
	if configPath == "" {
		configPath = defaultConfigPath
	}

	expanded, err := fsutil.ExpandUser(configPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the directory defaultConfigPath expands to,
// for commands that need to create it on first run.
func DefaultConfigDir() (string, error) {
	expanded, err := fsutil.ExpandUser(defaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(expanded), nil
}
