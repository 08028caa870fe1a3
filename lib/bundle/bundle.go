// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/bureau-foundation/assetfs/lib/config"
	"github.com/bureau-foundation/assetfs/lib/manifest"
	"github.com/bureau-foundation/assetfs/lib/vfs"
)

// ManifestName is the embedded manifest's file name.
const ManifestName = "MANIFEST.json"

//go:embed system MANIFEST.json
var files embed.FS

var index = manifest.NewLazy(manifest.FSLoader(files, ManifestName))

// FS returns the embedded catalog keyed by store key
// ("seattle/city.bin").
func FS() fs.FS {
	system, err := fs.Sub(files, "system")
	if err != nil {
		panic("bundle: embedded system directory missing: " + err.Error())
	}
	return system
}

// Index returns the process-wide accessor for the embedded manifest.
// The manifest is parsed on first use and shared by every caller.
func Index() *manifest.Lazy {
	return index
}

// ResolveMode maps a configured mode to a concrete one, substituting
// [DefaultMode] for auto.
func ResolveMode(configured string) (vfs.Mode, error) {
	mode, err := vfs.ParseMode(configured)
	if err != nil {
		return "", err
	}
	if mode == vfs.ModeAuto {
		return DefaultMode, nil
	}
	return mode, nil
}

// Open builds the backend described by cfg. A configured manifest path
// replaces the embedded manifest.
func Open(cfg *config.Config, logger *slog.Logger) (vfs.Backend, error) {
	mode, err := ResolveMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	manifestIndex := Index()
	if cfg.Manifest.Path != "" {
		manifestIndex = manifest.NewLazy(manifest.FileLoader(cfg.Manifest.Path))
	}

	backend, err := vfs.Open(vfs.Options{
		Mode: mode,
		Layout: vfs.Layout{
			EmbeddedRoot: cfg.Paths.EmbeddedRoot,
			ParentPrefix: cfg.Paths.ParentPrefix,
		},
		EmbeddedFS:     FS(),
		Index:          manifestIndex,
		StrictManifest: cfg.StrictManifest(),
		PersistentRoot: cfg.Paths.PersistentRoot,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", mode, err)
	}
	return backend, nil
}
