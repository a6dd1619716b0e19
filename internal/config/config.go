// Package config provides the Config struct and loader for .datakit.yaml
// project-level configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file Load searches for.
const ConfigFileName = ".datakit.yaml"

// Default values for configuration. Load() references them and no
// other code should duplicate them.
const (
	DefaultDetailed = false
	DefaultFormat   = "table"
	DefaultWorkers  = 4

	DefaultBackupKeep     = 5
	DefaultBackupCompress = false
)

// AnalyzeConfig holds default analyze parameters.
type AnalyzeConfig struct {
	Detailed *bool  `yaml:"detailed,omitempty"`
	Format   string `yaml:"format,omitempty"`
}

// RunConfig holds default batch-run parameters.
type RunConfig struct {
	Workers int `yaml:"workers,omitempty"`
}

// BackupConfig holds default backup parameters.
type BackupConfig struct {
	Keep     int   `yaml:"keep,omitempty"`
	Compress *bool `yaml:"compress,omitempty"`
}

// Config is the top-level configuration loaded from .datakit.yaml.
type Config struct {
	Analyze AnalyzeConfig `yaml:"analyze,omitempty"`
	Run     RunConfig     `yaml:"run,omitempty"`
	Backup  BackupConfig  `yaml:"backup,omitempty"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			Detailed: boolPtr(DefaultDetailed),
			Format:   DefaultFormat,
		},
		Run: RunConfig{
			Workers: DefaultWorkers,
		},
		Backup: BackupConfig{
			Keep:     DefaultBackupKeep,
			Compress: boolPtr(DefaultBackupCompress),
		},
	}
}

// Load finds .datakit.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .datakit.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero file values onto the defaults.
func mergeConfig(base, file *Config) {
	if file.Analyze.Detailed != nil {
		base.Analyze.Detailed = file.Analyze.Detailed
	}
	if file.Analyze.Format != "" {
		base.Analyze.Format = file.Analyze.Format
	}
	if file.Run.Workers > 0 {
		base.Run.Workers = file.Run.Workers
	}
	if file.Backup.Keep > 0 {
		base.Backup.Keep = file.Backup.Keep
	}
	if file.Backup.Compress != nil {
		base.Backup.Compress = file.Backup.Compress
	}
}

func boolPtr(b bool) *bool { return &b }
