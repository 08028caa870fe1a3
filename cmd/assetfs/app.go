// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/assetfs/lib/bundle"
	"github.com/bureau-foundation/assetfs/lib/config"
	"github.com/bureau-foundation/assetfs/lib/manifest"
	"github.com/bureau-foundation/assetfs/lib/vfs"
)

// app carries the process streams and the global flags shared by
// every command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// terminal reports whether stdout is an interactive terminal.
	terminal func() bool

	global globalOptions
}

type globalOptions struct {
	configPath   string
	mode         string
	manifestPath string
	logLevel     string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		terminal: func() bool { return isTerminal(stdout) },
	}
}

// flagSet returns a flag set carrying the global flags.
func (a *app) flagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&a.global.configPath, "config", "", "config file (default: $"+config.EnvVar+", else built-in defaults)")
	flags.StringVar(&a.global.mode, "mode", "", "storage mode: auto, embedded, or persistent (overrides config)")
	flags.StringVar(&a.global.manifestPath, "manifest", "", "manifest file to use instead of the embedded one")
	flags.StringVar(&a.global.logLevel, "log-level", "", "log level: debug, info, warn, or error (overrides config)")
	return flags
}

// loadConfig reads the configuration named by --config or
// ASSETFS_CONFIG, falling back to defaults, and applies flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case a.global.configPath != "":
		cfg, err = config.LoadFile(a.global.configPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if a.global.mode != "" {
		cfg.Mode = a.global.mode
	}
	if a.global.manifestPath != "" {
		cfg.Manifest.Path = a.global.manifestPath
	}
	if a.global.logLevel != "" {
		cfg.Logging.Level = a.global.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	return newLogger(a.stderr, level, cfg.Logging.Format)
}

// backend opens the storage backend the configuration selects.
func (a *app) backend() (vfs.Backend, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return bundle.Open(cfg, a.logger(cfg))
}

// embeddedBundle opens the embedded backend regardless of the configured mode,
// for commands that inspect the compiled-in catalog.
func (a *app) embeddedBundle() (*vfs.Bundle, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Mode = config.ModeEmbedded
	backend, err := bundle.Open(cfg, a.logger(cfg))
	if err != nil {
		return nil, err
	}
	return backend.(*vfs.Bundle), nil
}

// manifestIndex returns the manifest accessor the configuration
// selects: a file given by --manifest or manifest.path, else the
// embedded one.
func (a *app) manifestIndex() (*manifest.Lazy, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Manifest.Path != "" {
		return manifest.NewLazy(manifest.FileLoader(cfg.Manifest.Path)), nil
	}
	return bundle.Index(), nil
}

// writeJSON writes value to stdout as indented JSON. Nil slices are
// written as [].
func (a *app) writeJSON(value any) error {
	if paths, ok := value.([]string); ok && paths == nil {
		value = []string{}
	}
	encoder := json.NewEncoder(a.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, minimum, maximum int, usage string) error {
	if len(args) < minimum || (maximum >= 0 && len(args) > maximum) {
		return usageErrorf("usage: %s", usage)
	}
	return nil
}
