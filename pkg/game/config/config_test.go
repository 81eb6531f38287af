package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Speed != Default().Speed || cfg.Renderer != RendererAuto {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}

	cfg, err = Load("")
	if err != nil || cfg.Label != "DVD" {
		t.Errorf("Load(\"\") = %+v, %v, want defaults", cfg, err)
	}
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load("testdata/badge.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Renderer != RendererTerminal || cfg.Label != "GO" || cfg.Speed != 3.5 || cfg.Seed != 42 {
		t.Errorf("top-level fields = %+v", cfg)
	}
	if len(cfg.Palette) != 3 {
		t.Errorf("palette = %v, want 3 entries", cfg.Palette)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if got := cfg.RetryPolicy(); got.Delay != 50*time.Millisecond || got.MaxRetries != 5 {
		t.Errorf("RetryPolicy() = %+v", got)
	}
	if !cfg.Audio.Enabled || cfg.ChimeDuration() != 40*time.Millisecond {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Keys["quit"] != "x" {
		t.Errorf("keys = %v", cfg.Keys)
	}
	// Unset values keep their defaults.
	if cfg.TerminalSpeed != Default().TerminalSpeed || cfg.Locale != "en_GB" {
		t.Errorf("defaults lost: terminal_speed=%v locale=%q", cfg.TerminalSpeed, cfg.Locale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load("testdata/badge.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Renderer != RendererWindow || cfg.Label != "YAML" || cfg.URL != "https://example.com" {
		t.Errorf("top-level fields = %+v", cfg)
	}
	if cfg.TerminalSpeed != 0.25 || cfg.Speed != Default().Speed {
		t.Errorf("speeds = %v, %v", cfg.Speed, cfg.TerminalSpeed)
	}
	if cfg.Window.Title != "Bouncing" || cfg.Window.Width != 800 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Locale != "de_DE" || cfg.Keys["pause"] != "b" {
		t.Errorf("locale=%q keys=%v", cfg.Locale, cfg.Keys)
	}
	colors, err := cfg.Colors()
	if err != nil || len(colors) != 2 || colors[0].R != 0x12 {
		t.Errorf("Colors() = %v, %v", colors, err)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	ini := filepath.Join(dir, "badge.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ini); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(.ini) error = %v, want ErrUnknownFormat", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("speed = = 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(malformed toml) error = nil")
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "badge.toml")
	want := Default()
	want.Label = "SAVED"
	want.Speed = 1.25
	want.Keys = map[string]string{"open_link": "l"}

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Label != "SAVED" || got.Speed != 1.25 || got.Keys["open_link"] != "l" {
		t.Errorf("Load(Save(cfg)) = %+v", got)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"renderer", func(c *Config) { c.Renderer = "vr" }},
		{"empty label", func(c *Config) { c.Label = "  " }},
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"negative terminal speed", func(c *Config) { c.TerminalSpeed = -1 }},
		{"one colour", func(c *Config) { c.Palette = []string{"#ffffff"} }},
		{"bad colour", func(c *Config) { c.Palette = []string{"#ffffff", "purple"} }},
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"retries", func(c *Config) { c.Placement.MaxRetries = -1 }},
		{"chime", func(c *Config) { c.Audio.Enabled = true; c.Audio.DurationMS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
