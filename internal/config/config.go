// Package config holds the file locations and output settings that were once process-wide
// constants, so every component can be pointed at other storage.
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"slices"
)

const (
	DefaultDataPath    = "/etc/aion_data"
	DefaultRuntimeGlob = "/usr/local/aion-*"
)

var ValidFormats = []string{"text", "json", "yaml"}

var ValidLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	// Root of the catalog files (skills, plugins).
	DataPath string `yaml:"data_path"`
	// Glob locating an installed runtime.
	RuntimeGlob string        `yaml:"runtime_glob"`
	Output      OutputConfig  `yaml:"output"`
	Logging     LoggingConfig `yaml:"logging"`
}

type OutputConfig struct {
	Compact bool   `yaml:"compact"`
	Format  string `yaml:"format"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		DataPath:    DefaultDataPath,
		RuntimeGlob: DefaultRuntimeGlob,
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(err, "failed to read config")
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config")
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if env := os.Getenv("AION_DATA_PATH"); env != "" {
		c.DataPath = env
	}
	if env := os.Getenv("AION_RUNTIME_GLOB"); env != "" {
		c.RuntimeGlob = env
	}
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data_path must not be empty")
	}
	if !slices.Contains(ValidFormats, c.Output.Format) {
		return errors.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidFormats)
	}
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return errors.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}
