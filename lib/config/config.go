// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "ASSETFS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Storage modes accepted by Config.Mode.
const (
	ModeAuto       = "auto"
	ModeEmbedded   = "embedded"
	ModePersistent = "persistent"
)

// Manifest unavailability policies accepted by ManifestConfig.Unavailable.
const (
	// UnavailableEmpty treats a manifest that cannot be loaded as an
	// empty index.
	UnavailableEmpty = "empty"
	// UnavailableError fails startup when the manifest cannot be loaded.
	UnavailableError = "error"
)

// Config is the master configuration for assetfs.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Mode selects the storage backend: auto, embedded, or persistent.
	// auto defers to the build (embedded under js/wasm).
	Mode string `yaml:"mode"`

	// Paths configures the path conventions and the persistent root.
	Paths PathsConfig `yaml:"paths"`

	// Manifest configures the remote asset index.
	Manifest ManifestConfig `yaml:"manifest"`

	// Logging configures the diagnostic logger.
	Logging LoggingConfig `yaml:"logging"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Mode     string          `yaml:"mode,omitempty"`
	Paths    *PathsConfig    `yaml:"paths,omitempty"`
	Manifest *ManifestConfig `yaml:"manifest,omitempty"`
	Logging  *LoggingConfig  `yaml:"logging,omitempty"`
}

// PathsConfig configures path conventions.
type PathsConfig struct {
	// EmbeddedRoot is how callers spell the root of the embedded
	// catalog. No trailing slash.
	// Default: ../data/system
	EmbeddedRoot string `yaml:"embedded_root"`

	// ParentPrefix is stripped from caller paths to form manifest keys.
	// Default: ../
	ParentPrefix string `yaml:"parent_prefix"`

	// PersistentRoot is the directory caller paths resolve against in
	// persistent mode.
	// Default: . (the working directory)
	PersistentRoot string `yaml:"persistent_root"`
}

// ManifestConfig configures the remote asset index.
type ManifestConfig struct {
	// Path is a manifest file to use instead of the one compiled into
	// the binary. Suffixes .zst and .lz4 select decompression.
	Path string `yaml:"path"`

	// Unavailable is the policy when the manifest cannot be loaded:
	// "empty" or "error".
	// Default: error in production, empty elsewhere. Resolved after
	// environment overrides, so only an explicit value changes it.
	Unavailable string `yaml:"unavailable"`
}

// LoggingConfig configures the diagnostic logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is one of auto, text, json. auto picks text for a
	// terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	cfg := defaults()
	cfg.resolveManifestPolicy()
	return cfg
}

// defaults is the base a config file is loaded onto. Policies that
// depend on the environment are left unset until the file and its
// overrides have been applied.
func defaults() *Config {
	return &Config{
		Environment: Development,
		Mode:        ModeAuto,
		Paths: PathsConfig{
			EmbeddedRoot:   "../data/system",
			ParentPrefix:   "../",
			PersistentRoot: ".",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Load loads configuration from the ASSETFS_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// If ASSETFS_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your assetfs.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// Environment variables do not override config values. The only
// expansion performed is ${HOME} and similar path variables.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()
	cfg.resolveManifestPolicy()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Mode != "" {
		c.Mode = overrides.Mode
	}

	if overrides.Paths != nil {
		if overrides.Paths.EmbeddedRoot != "" {
			c.Paths.EmbeddedRoot = overrides.Paths.EmbeddedRoot
		}
		if overrides.Paths.ParentPrefix != "" {
			c.Paths.ParentPrefix = overrides.Paths.ParentPrefix
		}
		if overrides.Paths.PersistentRoot != "" {
			c.Paths.PersistentRoot = overrides.Paths.PersistentRoot
		}
	}

	if overrides.Manifest != nil {
		if overrides.Manifest.Path != "" {
			c.Manifest.Path = overrides.Manifest.Path
		}
		if overrides.Manifest.Unavailable != "" {
			c.Manifest.Unavailable = overrides.Manifest.Unavailable
		}
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.Format != "" {
			c.Logging.Format = overrides.Logging.Format
		}
	}
}

// resolveManifestPolicy fills in the environment default for
// Manifest.Unavailable when neither the base config nor the active
// override set it. A missing manifest is fatal in production.
func (c *Config) resolveManifestPolicy() {
	if c.Manifest.Unavailable != "" {
		return
	}
	if c.Environment == Production {
		c.Manifest.Unavailable = UnavailableError
	} else {
		c.Manifest.Unavailable = UnavailableEmpty
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"ASSETFS_ROOT": c.Paths.PersistentRoot,
		"HOME":         os.Getenv("HOME"),
	}

	c.Paths.PersistentRoot = expandVars(c.Paths.PersistentRoot, vars)
	vars["ASSETFS_ROOT"] = c.Paths.PersistentRoot // Update for dependent paths.

	c.Manifest.Path = expandVars(c.Manifest.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	modes := []string{ModeAuto, ModeEmbedded, ModePersistent}
	if !slices.Contains(modes, c.Mode) {
		errs = append(errs, fmt.Errorf("mode must be one of: %v", modes))
	}

	if c.Paths.EmbeddedRoot == "" {
		errs = append(errs, fmt.Errorf("paths.embedded_root is required"))
	} else if strings.HasSuffix(c.Paths.EmbeddedRoot, "/") {
		errs = append(errs, fmt.Errorf("paths.embedded_root must not end with a slash"))
	}
	if c.Paths.ParentPrefix != "" && !strings.HasSuffix(c.Paths.ParentPrefix, "/") {
		errs = append(errs, fmt.Errorf("paths.parent_prefix must end with a slash"))
	}
	if !strings.HasPrefix(c.Paths.EmbeddedRoot, c.Paths.ParentPrefix) {
		errs = append(errs, fmt.Errorf("paths.embedded_root %q must start with paths.parent_prefix %q",
			c.Paths.EmbeddedRoot, c.Paths.ParentPrefix))
	}
	if c.Mode == ModePersistent && c.Paths.PersistentRoot == "" {
		errs = append(errs, fmt.Errorf("paths.persistent_root is required in persistent mode"))
	}

	policies := []string{UnavailableEmpty, UnavailableError}
	if !slices.Contains(policies, c.Manifest.Unavailable) {
		errs = append(errs, fmt.Errorf("manifest.unavailable must be one of: %v", policies))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging.level must be one of: [debug info warn error], got %q", c.Logging.Level)
	}
}

// StrictManifest reports whether a manifest load failure is fatal.
func (c *Config) StrictManifest() bool {
	return c.Manifest.Unavailable == UnavailableError
}
