package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAsset          = "assets/room.glb"
	DefaultDataset        = "assets/simulation_dataset.csv"
	DefaultUpdateInterval = 5 * time.Second
	DefaultFadeDelay      = 500 * time.Millisecond
	DefaultWidth          = 1280
	DefaultHeight         = 720
	DefaultFPS            = 60
	DefaultTitle          = "roomflow"
	DefaultACCount        = 2000
	DefaultWindowCount    = 3000
)

var (
	ErrInvalid = errors.New("config: invalid value")
)

type Config struct {
	Asset          string         `yaml:"asset"`
	Dataset        string         `yaml:"dataset"`
	UpdateInterval time.Duration  `yaml:"update_interval"`
	FadeDelay      time.Duration  `yaml:"fade_delay"`
	Seed           int64          `yaml:"seed"`
	LogLevel       string         `yaml:"log_level"`
	Window         WindowConfig   `yaml:"window"`
	Emitters       EmittersConfig `yaml:"emitters"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type EmittersConfig struct {
	AC     EmitterConfig `yaml:"ac"`
	Window EmitterConfig `yaml:"window"`
}

type EmitterConfig struct {
	Count int `yaml:"count"`
}

func DefaultConfig() *Config {
	return &Config{
		Asset:          DefaultAsset,
		Dataset:        DefaultDataset,
		UpdateInterval: DefaultUpdateInterval,
		FadeDelay:      DefaultFadeDelay,
		LogLevel:       "info",
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  DefaultTitle,
		},
		Emitters: EmittersConfig{
			AC:     EmitterConfig{Count: DefaultACCount},
			Window: EmitterConfig{Count: DefaultWindowCount},
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a YAML file over base, which is copied first.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the values a viewer cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Asset == "":
		return fmt.Errorf("%w: asset is empty", ErrInvalid)
	case c.Dataset == "":
		return fmt.Errorf("%w: dataset is empty", ErrInvalid)
	case c.UpdateInterval <= 0:
		return fmt.Errorf("%w: update_interval must be positive, got %v", ErrInvalid, c.UpdateInterval)
	case c.FadeDelay < 0:
		return fmt.Errorf("%w: fade_delay must not be negative, got %v", ErrInvalid, c.FadeDelay)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: window.fps must be positive, got %d", ErrInvalid, c.Window.FPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Emitters.AC.Count <= 0:
		return fmt.Errorf("%w: emitters.ac.count must be positive, got %d", ErrInvalid, c.Emitters.AC.Count)
	case c.Emitters.Window.Count <= 0:
		return fmt.Errorf("%w: emitters.window.count must be positive, got %d", ErrInvalid, c.Emitters.Window.Count)
	}
	return nil
}
