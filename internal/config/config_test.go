package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UpdateInterval != 5*time.Second {
		t.Errorf("expected 5s interval, got %v", cfg.UpdateInterval)
	}
	if cfg.FadeDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms fade, got %v", cfg.FadeDelay)
	}
	if cfg.Emitters.AC.Count != 2000 || cfg.Emitters.Window.Count != 3000 {
		t.Errorf("unexpected counts %d/%d", cfg.Emitters.AC.Count, cfg.Emitters.Window.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomflow.yaml")
	data := "dataset: https://example.com/data.csv\nupdate_interval: 2s\nemitters:\n  ac:\n    count: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dataset != "https://example.com/data.csv" {
		t.Errorf("dataset = %q", cfg.Dataset)
	}
	if cfg.UpdateInterval != 2*time.Second {
		t.Errorf("interval = %v", cfg.UpdateInterval)
	}
	if cfg.Emitters.AC.Count != 10 {
		t.Errorf("ac count = %d", cfg.Emitters.AC.Count)
	}
	if cfg.Emitters.Window.Count != DefaultWindowCount {
		t.Errorf("window count = %d, want default", cfg.Emitters.Window.Count)
	}
	if cfg.Asset != DefaultAsset {
		t.Errorf("asset = %q, want default", cfg.Asset)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomflow.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOver(GetPreset("fast"), path)
	if err != nil {
		t.Fatalf("LoadOver: %v", err)
	}
	if cfg.UpdateInterval != time.Second || cfg.Seed != 7 {
		t.Errorf("got interval %v seed %d", cfg.UpdateInterval, cfg.Seed)
	}
	if Presets["fast"].Seed != 0 {
		t.Error("preset mutated")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("update_interval: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Window.Title = "lab"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty asset", func(c *Config) { c.Asset = "" }},
		{"empty dataset", func(c *Config) { c.Dataset = "" }},
		{"zero interval", func(c *Config) { c.UpdateInterval = 0 }},
		{"negative fade", func(c *Config) { c.FadeDelay = -time.Second }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero ac count", func(c *Config) { c.Emitters.AC.Count = 0 }},
		{"negative window count", func(c *Config) { c.Emitters.Window.Count = -1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Emitters.AC.Count != 6000 {
		t.Errorf("expected 6000 AC particles, got %d", cfg.Emitters.AC.Count)
	}

	cfg.Emitters.AC.Count = 1
	if Presets["dense"].Emitters.AC.Count != 6000 {
		t.Error("GetPreset returned shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"default", "dense", "fast", "sparse"}
	if len(presets) != len(want) {
		t.Fatalf("presets = %v", presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
