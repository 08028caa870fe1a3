// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"io/fs"
	"log/slog"
)

// Mode selects the storage backend.
type Mode string

const (
	// ModeAuto defers to the build's default mode.
	ModeAuto Mode = "auto"

	// ModeEmbedded serves reads from the compiled-in catalog.
	ModeEmbedded Mode = "embedded"

	// ModePersistent serves everything from the local filesystem.
	ModePersistent Mode = "persistent"
)

// ParseMode converts a configuration string to a Mode. The empty
// string is ModeAuto.
func ParseMode(text string) (Mode, error) {
	switch Mode(text) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeEmbedded, ModePersistent:
		return Mode(text), nil
	default:
		return "", fmt.Errorf("unknown storage mode %q (want auto, embedded, or persistent)", text)
	}
}

// Options configures [Open].
type Options struct {
	// Mode must be resolved: ModeAuto is rejected.
	Mode Mode

	Layout Layout

	// EmbeddedFS and Index feed a [Bundle] in ModeEmbedded.
	EmbeddedFS fs.FS
	Index      Index

	// StrictManifest makes Open load the manifest immediately and
	// fail if it is unavailable, instead of degrading to an empty
	// remote index.
	StrictManifest bool

	// PersistentRoot is the [Disk] root in ModePersistent.
	PersistentRoot string

	Logger *slog.Logger
}

// Open builds the backend for options.Mode. It is called once at
// startup; the returned Backend is used for the life of the process.
func Open(options Options) (Backend, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch options.Mode {
	case ModeEmbedded:
		if options.StrictManifest {
			if options.Index == nil {
				return nil, fmt.Errorf("strict manifest policy requires a manifest index")
			}
			if _, err := options.Index.Load(); err != nil {
				return nil, fmt.Errorf("loading manifest: %w", err)
			}
		}
		bundle, err := NewBundle(BundleOptions{
			FS:     options.EmbeddedFS,
			Index:  options.Index,
			Layout: options.Layout,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("opened embedded backend", "embedded_files", len(bundle.embedded.all))
		return bundle, nil

	case ModePersistent:
		logger.Debug("opened persistent backend", "root", options.PersistentRoot)
		return NewDisk(DiskOptions{Root: options.PersistentRoot, Logger: logger}), nil

	case ModeAuto:
		return nil, fmt.Errorf("storage mode %q must be resolved before opening", ModeAuto)

	default:
		return nil, fmt.Errorf("unknown storage mode %q", options.Mode)
	}
}
