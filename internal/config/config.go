// Package config holds the YAML-backed tunables for vetline's detectors:
// values that must stay out of code per each detector's own built-in
// table, supplied by an operator rather than recompiled in.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is vetline's top-level configuration. Every detector entry
// point in internal/scanner accepts a *Config; nil means "use built-in
// defaults", so the underlying detector packages stay pure and
// config-free.
type Config struct {
	SQL   SQLConfig   `yaml:"sql"`
	Shell ShellConfig `yaml:"shell"`
	Route RouteConfig `yaml:"route"`
	Audit AuditConfig `yaml:"audit"`
}

// SQLConfig tunes internal/sqlinjection and internal/sqlsafe.
type SQLConfig struct {
	// ExtraSafeStrings are lowercased literals treated as common,
	// non-dangerous SQL substrings in addition to the built-in list.
	ExtraSafeStrings []string `yaml:"extra_safe_strings"`
}

// ShellConfig tunes internal/shellinjection and internal/shellsyntax.
type ShellConfig struct {
	// ExtraDangerousCommands are command names folded into the
	// boundary-match regex in addition to the built-in list.
	ExtraDangerousCommands []string `yaml:"extra_dangerous_commands"`
}

// RouteConfig tunes internal/route's secret-entropy heuristic.
type RouteConfig struct {
	// SecretMinLength overrides the default length floor (10) a segment
	// must clear before it can be classified ":secret". 0 means default.
	SecretMinLength int `yaml:"secret_min_length"`
	// SecretEntropyThreshold overrides the default average unique-rune
	// ratio (0.75) a segment's sliding windows must exceed. 0 means
	// default.
	SecretEntropyThreshold float64 `yaml:"secret_entropy_threshold"`
}

// AuditConfig controls internal/auditlog.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"` // empty uses DefaultAuditDBPath
}

const (
	defaultSecretMinLength        = 10
	defaultSecretEntropyThreshold = 0.75
)

// Default returns a Config with every tunable at its built-in default
// and auditing disabled.
func Default() *Config {
	return &Config{
		Route: RouteConfig{
			SecretMinLength:        defaultSecretMinLength,
			SecretEntropyThreshold: defaultSecretEntropyThreshold,
		},
	}
}

// Load reads and parses a YAML config file at path, filling in defaults
// for any zero-valued tunable left unset in the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Route.SecretMinLength == 0 {
		c.Route.SecretMinLength = defaultSecretMinLength
	}
	if c.Route.SecretEntropyThreshold == 0 {
		c.Route.SecretEntropyThreshold = defaultSecretEntropyThreshold
	}
}
