package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level should be info, got %q", cfg.LogLevel)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Fatalf("unexpected default window size: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "tacmap" {
		t.Fatalf("unexpected default title: %q", cfg.Window.Title)
	}
	if cfg.Map.FootprintsPath != "" {
		t.Fatal("footprints path should default to empty")
	}
	if cfg.Scenario.Seed != 1 || cfg.Scenario.Friendlies != 4 || cfg.Scenario.Hostiles != 8 || cfg.Scenario.Neutrals != 6 {
		t.Fatalf("unexpected default scenario: %+v", cfg.Scenario)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := `{
		"logLevel": "debug",
		"window": { "width": 1920, "title": "night-ops" },
		"map": { "footprintsPath": "maps/town.geojson" },
		"scenario": { "seed": 42, "hostiles": 20 }
	}`
	if err := os.WriteFile(filepath.Join(dir, "tacmap.cfg.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not overridden: %q", cfg.LogLevel)
	}
	if cfg.Window.Width != 1920 {
		t.Fatalf("window width not overridden: %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 800 {
		t.Fatalf("unset height should keep its default, got %d", cfg.Window.Height)
	}
	if cfg.Window.Title != "night-ops" {
		t.Fatalf("title not overridden: %q", cfg.Window.Title)
	}
	if cfg.Map.FootprintsPath != "maps/town.geojson" {
		t.Fatalf("footprints path not overridden: %q", cfg.Map.FootprintsPath)
	}
	if cfg.Scenario.Seed != 42 || cfg.Scenario.Hostiles != 20 {
		t.Fatalf("scenario not overridden: %+v", cfg.Scenario)
	}
	if cfg.Scenario.Friendlies != 4 {
		t.Fatalf("unset friendlies should keep its default, got %d", cfg.Scenario.Friendlies)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tacmap.cfg.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("malformed config file should error")
	}
}
