// Package config loads the YAML configuration of the vidsource command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kmmndr/movement_detector/internal/logger"
	"github.com/kmmndr/movement_detector/internal/paths"
)

type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Video discovery
	ProjectMarker string   `yaml:"project_marker"`
	VideoDir      string   `yaml:"video_dir"`
	Extensions    []string `yaml:"extensions"`

	// Output
	OutputDir string `yaml:"output_dir"`
}

func Defaults() Config {
	return Config{
		LogLevel:      "info",
		ProjectMarker: "movement_detector",
		VideoDir:      "videos",
		Extensions:    append([]string(nil), paths.DefaultExtensions...),
		OutputDir:     ".",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "quiet":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error, quiet", c.LogLevel))
	}
	if c.VideoDir == "" {
		errs = append(errs, errors.New("video_dir must not be empty"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot", ext))
		}
	}

	return errors.Join(errs...)
}

func (c Config) Level() logger.Level {
	return logger.ParseLevel(c.LogLevel)
}
