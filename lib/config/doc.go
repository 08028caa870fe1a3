// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for assetfs.
//
// Configuration is loaded from a single file specified by either the
// ASSETFS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. A program run
// without either uses [Default].
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter: a
// manifest that cannot be loaded is a startup error instead of an
// empty remote index, unless manifest.unavailable is set explicitly
// in the base config or the production section.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${ASSETFS_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Mode, Paths, Manifest, Logging
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other assetfs packages.
package config
