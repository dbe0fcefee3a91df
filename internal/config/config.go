// Package config handles ddtstat configuration.
package config

import (
	"os"

	"github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/units"
	"gopkg.in/yaml.v3"
)

// Config represents the optional ddtstat configuration file. Everything
// in it has a working default; the tool runs fine with no file at all.
type Config struct {
	// Zpool overrides the PATH lookup of the zpool binary.
	Zpool string `yaml:"zpool,omitempty"`

	// DefaultUnit is the divisor used when no unit flag is given:
	// one of b, k, m, g, t.
	DefaultUnit string `yaml:"default_unit,omitempty"`

	// LogLevel is the stderr diagnostic threshold: debug, info,
	// warning, error or fatal.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Defaults.
const (
	DefaultUnit     = "b"
	DefaultLogLevel = "warning"
)

// unitDivisors maps the config/flag unit letters to byte divisors.
var unitDivisors = map[string]int64{
	"b": units.Byte,
	"k": units.KiB,
	"m": units.MiB,
	"g": units.GiB,
	"t": units.TiB,
}

// Load reads config from the default location. A missing file is not an
// error; it yields the defaults.
func Load() (*Config, error) {
	return LoadFrom(NewPaths().ConfigFile)
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	if _, ok := unitDivisors[c.DefaultUnit]; !ok {
		return errors.ConfigInvalid("default_unit must be one of b, k, m, g, t")
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error", "fatal":
	default:
		return errors.ConfigInvalid("log_level must be one of debug, info, warning, error, fatal")
	}
	return nil
}

// applyDefaults sets default values for empty fields.
func (c *Config) applyDefaults() {
	if c.DefaultUnit == "" {
		c.DefaultUnit = DefaultUnit
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// UnitDivisor returns the byte divisor for the configured default unit.
func (c *Config) UnitDivisor() int64 {
	if d, ok := unitDivisors[c.DefaultUnit]; ok {
		return d
	}
	return units.Byte
}
