// Package config handles ddtstat configuration.
package config

import (
	"os"
	"path/filepath"
)

// Paths provides the ddtstat-related filesystem paths.
type Paths struct {
	ConfigDir  string // ~/.config/ddtstat
	ConfigFile string // ~/.config/ddtstat/config.yaml
}

// NewPaths creates Paths under ~/.config. We use that path explicitly for
// cross-platform consistency rather than platform-specific defaults.
func NewPaths() *Paths {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "ddtstat")
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewPathsWithOverrides allows overriding the config directory for testing.
func NewPathsWithOverrides(configDir string) *Paths {
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}
}
