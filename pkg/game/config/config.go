// Package config holds the program's settings. Values come from defaults,
// then an optional TOML or YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"badgebounce/pkg/engine/bounce"
)

// Renderer names accepted by the renderer setting.
const (
	RendererAuto     = "auto"
	RendererWindow   = "window"
	RendererTerminal = "terminal"
)

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")
	// ErrUnknownFormat is returned for a config file extension we cannot read.
	ErrUnknownFormat = errors.New("unknown config format")
)

// Config is the complete set of settings.
type Config struct {
	Renderer      string   `toml:"renderer" yaml:"renderer"`
	Label         string   `toml:"label" yaml:"label"`
	URL           string   `toml:"url" yaml:"url"`
	Speed         float64  `toml:"speed" yaml:"speed"`
	TerminalSpeed float64  `toml:"terminal_speed" yaml:"terminal_speed"`
	Seed          int64    `toml:"seed" yaml:"seed"`
	Palette       []string `toml:"palette" yaml:"palette"`
	Locale        string   `toml:"locale" yaml:"locale"`

	Window    WindowConfig      `toml:"window" yaml:"window"`
	Placement PlacementConfig   `toml:"placement" yaml:"placement"`
	Audio     AudioConfig       `toml:"audio" yaml:"audio"`
	Keys      map[string]string `toml:"keys" yaml:"keys"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

// PlacementConfig bounds how long the first placement waits for geometry.
type PlacementConfig struct {
	RetryDelayMS int `toml:"retry_delay_ms" yaml:"retry_delay_ms"`
	MaxRetries   int `toml:"max_retries" yaml:"max_retries"`
}

// AudioConfig controls the contact chime.
type AudioConfig struct {
	Enabled     bool    `toml:"enabled" yaml:"enabled"`
	FrequencyHz float64 `toml:"frequency_hz" yaml:"frequency_hz"`
	DurationMS  int     `toml:"duration_ms" yaml:"duration_ms"`
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Renderer:      RendererAuto,
		Label:         "DVD",
		Speed:         2,
		TerminalSpeed: 0.5,
		Palette:       append([]string(nil), DefaultPalette...),
		Locale:        "en_GB",
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Placement: PlacementConfig{
			RetryDelayMS: int(bounce.DefaultRetryPolicy.Delay / time.Millisecond),
			MaxRetries:   bounce.DefaultRetryPolicy.MaxRetries,
		},
		Audio: AudioConfig{
			FrequencyHz: 880,
			DurationMS:  60,
		},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml, .yaml or .yml. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return cfg, nil
}

// Save writes c to path as TOML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererAuto, RendererWindow, RendererTerminal:
	default:
		return fmt.Errorf("%w: renderer %q (want auto, window or terminal)", ErrInvalid, c.Renderer)
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("%w: label is empty", ErrInvalid)
	}
	if !positive(c.Speed) || !positive(c.TerminalSpeed) {
		return fmt.Errorf("%w: speeds must be positive (got %v and %v)", ErrInvalid, c.Speed, c.TerminalSpeed)
	}
	colors, err := c.Colors()
	if err == nil {
		_, err = bounce.NewSelector(colors, nil)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Placement.RetryDelayMS < 0 || c.Placement.MaxRetries < 0 {
		return fmt.Errorf("%w: placement retries must not be negative", ErrInvalid)
	}
	if c.Audio.Enabled && (!positive(c.Audio.FrequencyHz) || c.Audio.DurationMS <= 0) {
		return fmt.Errorf("%w: chime needs a positive frequency and duration", ErrInvalid)
	}
	return nil
}

// Colors parses the palette.
func (c *Config) Colors() ([]color.RGBA, error) {
	return bounce.ParsePalette(c.Palette)
}

// RetryPolicy converts the placement settings.
func (c *Config) RetryPolicy() bounce.RetryPolicy {
	return bounce.RetryPolicy{
		Delay:      time.Duration(c.Placement.RetryDelayMS) * time.Millisecond,
		MaxRetries: c.Placement.MaxRetries,
	}
}

// ChimeDuration converts the audio duration.
func (c *Config) ChimeDuration() time.Duration {
	return time.Duration(c.Audio.DurationMS) * time.Millisecond
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
