// Package config loads the minijavac settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/minijavac/format"
	"github.com/dhamidi/minijavac/java/parser"
)

type Config struct {
	Verbosity    int    `yaml:"verbosity"`
	Format       string `yaml:"format"`
	MaxDepth     int    `yaml:"max_depth"`
	ShowWarnings bool   `yaml:"show_warnings"`
	HistoryFile  string `yaml:"history_file"`
}

func Default() Config {
	return Config{
		Format:       "json",
		MaxDepth:     parser.DefaultMaxDepth,
		ShowWarnings: true,
		HistoryFile:  filepath.Join(xdg.DataHome, "minijavac", ".minijavac_history"),
	}
}

// Path is where Load looks when no file is named on the command line.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "minijavac", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(format.Names, c.Format) {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}
