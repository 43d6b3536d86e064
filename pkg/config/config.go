package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// Config is the top-level engine configuration.
type Config struct {
	Logging  LoggingConfig         `yaml:"logging"`
	Stores   StoresConfig          `yaml:"stores"`
	Modes    map[string]ModeConfig `yaml:"modes,omitempty" validate:"dive"`
	Datasets DatasetsConfig        `yaml:"datasets"`
}

// LoggingConfig controls the engine logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
	// File, when set, adds a JSON-lines output alongside the console.
	File string `yaml:"file,omitempty"`
}

// Duration wraps time.Duration so YAML values like "90s" or "1h" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// StoresConfig bounds the process-wide entity stores. Capacities of zero mean
// unbounded; retention of zero means no age limit.
type StoresConfig struct {
	TaskCapacity        int      `yaml:"task_capacity" validate:"min=0"`
	EventCapacity       int      `yaml:"event_capacity" validate:"min=0"`
	PerformanceCapacity int      `yaml:"performance_capacity" validate:"min=0"`
	Retention           Duration `yaml:"retention"`

	// Persist enables the SQLite-backed run-history journal.
	Persist bool   `yaml:"persist"`
	Path    string `yaml:"path,omitempty" validate:"required_if=Persist true"`
}

// ModeConfig overrides per-mode execution settings.
type ModeConfig struct {
	// EventThreshold overrides the mode's uniform-draw cutoff.
	EventThreshold *float64 `yaml:"event_threshold,omitempty" validate:"omitempty,min=0,max=1"`
	// Seed fixes the mode's random source for reproducible runs.
	Seed *int64 `yaml:"seed,omitempty"`
}

// DatasetsConfig locates experience batch files.
type DatasetsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Default returns the engine defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Stores: StoresConfig{
			TaskCapacity:        10000,
			EventCapacity:       50000,
			PerformanceCapacity: 10000,
		},
	}
}

// Load reads a YAML config file, applies defaults for unset fields, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ConfigurationError, "failed to read config file"),
			errors.Fields{"path": path},
		)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.ConfigurationError, "failed to parse config")
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
}
