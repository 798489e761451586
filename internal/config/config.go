// Package config loads optional tool defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bggg/transcriptor/internal/transcript"
)

// DefaultPath is probed when no --config flag is given.
const DefaultPath = "transcriptor.yaml"

type Config struct {
	// paragraph gap threshold in seconds
	GapSeconds float64 `yaml:"gap_seconds"`
	// preferred caption language codes, most preferred first
	Languages []string `yaml:"languages"`
	// directory for --all output files
	OutputDir string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		GapSeconds: transcript.DefaultGapSeconds,
		Languages:  []string{"en"},
		OutputDir:  "Transcripts",
	}
}

// Load reads the config at path, filling unset fields with defaults. A
// missing file is not an error when the path is the probed default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.GapSeconds <= 0 {
		cfg.GapSeconds = transcript.DefaultGapSeconds
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"en"}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "Transcripts"
	}
	return cfg, nil
}
