package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config for the engine run.
type Config struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color,flow"` // RGBA

	// GUI assets. Empty paths are skipped.
	StylePath  string  `yaml:"styles"`
	LayoutPath string  `yaml:"layout"`
	FontPath   string  `yaml:"font"`
	FontSize   float32 `yaml:"font_size"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "trellis sandbox",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.08, 0.10, 0.12, 1},
		FontSize:   16,
	}
}

// LoadConfig reads a YAML config over DefaultConfig. A missing file yields
// the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return DefaultConfig(), fmt.Errorf("config %q: invalid window size %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (cfg Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
