package main

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"skyscope/internal/screen"
)

// writeTestConfig creates a temp catalog database and a config.json
// pointing at it (and at other tempdir paths), with both network servers
// disabled so building a Root in tests never binds a real port.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "catalog.sqlite")
	db, err := sql.Open("sqlite3", catalogPath)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE objects (name TEXT, ra REAL, dec REAL, magnitude REAL, kind INTEGER, catalog_id TEXT)`); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	db.Close()

	configPath := filepath.Join(dir, "config.json")
	cfg := map[string]any{
		"network": map[string]any{
			"enable_broadcast": false,
			"enable_dashboard": false,
		},
		"paths": map[string]any{
			"catalog_db":     catalogPath,
			"diagnostics_db": filepath.Join(dir, "diagnostics.sqlite"),
			"settings_file":  filepath.Join(dir, "settings.txt"),
			"offset_file":    filepath.Join(dir, "offset.bin"),
			"coord_log_file": filepath.Join(dir, "coord_log.txt"),
		},
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func TestBuildRootWiresCollaborators(t *testing.T) {
	t.Setenv("SKYSCOPE_CONFIG", writeTestConfig(t))

	root, err := buildRoot()
	if err != nil {
		t.Fatalf("build root: %v", err)
	}
	defer root.Close()

	if root.pipe == nil || root.obsCtx == nil || root.cat == nil || root.machine == nil {
		t.Fatal("expected all core collaborators to be constructed")
	}
	if root.machine.Current() != screen.MainMenu {
		t.Fatalf("expected machine to start at MainMenu, got %v", root.machine.Current())
	}
}

func TestMachineAtBuildsIndependentMachine(t *testing.T) {
	t.Setenv("SKYSCOPE_CONFIG", writeTestConfig(t))

	root, err := buildRoot()
	if err != nil {
		t.Fatalf("build root: %v", err)
	}
	defer root.Close()

	nav := root.machineAt(screen.Navigation)
	if nav.Current() != screen.Navigation {
		t.Fatalf("expected Navigation, got %v", nav.Current())
	}
	if root.machine.Current() != screen.MainMenu {
		t.Fatal("expected the original machine's screen to be unaffected")
	}
}
