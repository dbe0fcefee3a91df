package config

import (
	"os"
	"path/filepath"
	"testing"

	dderrors "github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/units"
)

func TestLoadFromMissingFile(t *testing.T) {
	paths := NewPathsWithOverrides(t.TempDir())

	cfg, err := LoadFrom(paths.ConfigFile)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.DefaultUnit != DefaultUnit {
		t.Errorf("DefaultUnit = %q, want %q", cfg.DefaultUnit, DefaultUnit)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.UnitDivisor() != units.Byte {
		t.Errorf("UnitDivisor() = %d, want %d", cfg.UnitDivisor(), units.Byte)
	}
}

func TestLoadFromValidFile(t *testing.T) {
	paths := NewPathsWithOverrides(t.TempDir())
	content := "zpool: /usr/local/sbin/zpool\ndefault_unit: k\nlog_level: debug\n"
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(paths.ConfigFile)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Zpool != "/usr/local/sbin/zpool" {
		t.Errorf("Zpool = %q", cfg.Zpool)
	}
	if cfg.UnitDivisor() != units.KiB {
		t.Errorf("UnitDivisor() = %d, want %d", cfg.UnitDivisor(), units.KiB)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFromInvalidUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_unit: q\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom() should reject an unknown default_unit")
	}
	de, ok := err.(*dderrors.DdtError)
	if !ok || de.Code != dderrors.ErrConfigInvalid {
		t.Errorf("error = %v, want CONFIG_INVALID", err)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(": not yaml ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() should reject unparseable YAML")
	}
}

func TestUnitDivisors(t *testing.T) {
	cases := map[string]int64{
		"b": units.Byte,
		"k": units.KiB,
		"m": units.MiB,
		"g": units.GiB,
		"t": units.TiB,
	}
	for unit, want := range cases {
		cfg := &Config{DefaultUnit: unit}
		if got := cfg.UnitDivisor(); got != want {
			t.Errorf("UnitDivisor(%q) = %d, want %d", unit, got, want)
		}
	}
}
