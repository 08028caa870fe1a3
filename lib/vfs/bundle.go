// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/assetfs/lib/manifest"
)

// BundleOptions configures a [Bundle].
type BundleOptions struct {
	// FS holds the embedded catalog, keyed by store key. Required.
	FS fs.FS

	// Index supplies the remote manifest. Nil means no remote assets
	// are known.
	Index Index

	// Layout defaults to [DefaultLayout] when zero.
	Layout Layout

	// Logger receives "may be remote" notices and the manifest
	// unavailability warning. Nil discards them.
	Logger *slog.Logger
}

// Bundle is the embedded-mode [Backend]. Reads are served from the
// compiled-in catalog; existence and listing also consult the remote
// manifest. Writes and deletes are accepted and do nothing.
//
// A Bundle is safe for concurrent use.
type Bundle struct {
	layout   Layout
	embedded *EmbeddedSource
	remote   *IndexedSource
	sources  []Source
	logger   *slog.Logger
}

// NewBundle indexes options.FS and wraps options.Index. The manifest
// is not loaded until first needed.
func NewBundle(options BundleOptions) (*Bundle, error) {
	if options.FS == nil {
		return nil, fmt.Errorf("bundle requires an embedded filesystem")
	}
	layout := options.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	embedded, err := NewEmbeddedSource(options.FS, layout)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		layout:   layout,
		embedded: embedded,
		sources:  []Source{embedded},
		logger:   logger,
	}
	if options.Index != nil {
		bundle.remote = NewIndexedSource(options.Index, layout, logger)
		bundle.sources = append(bundle.sources, bundle.remote)
	}
	return bundle, nil
}

// Layout returns the path conventions in use.
func (b *Bundle) Layout() Layout { return b.layout }

// Exists reports whether path is embedded or listed in the manifest.
// Both the parent-relative and the store-key spelling of an embedded
// file are accepted.
func (b *Bundle) Exists(path string) bool {
	for _, source := range b.sources {
		if source.Contains(path) {
			return true
		}
	}
	return false
}

// List merges the entries below dir from every source. Embedded
// entries are files; manifest entries are the first segment below
// dir, so a remote subdirectory appears once.
func (b *Bundle) List(dir string) []string {
	var merged []string
	for _, source := range b.sources {
		children, found := source.Children(dir)
		if !found && source.Kind() == Embedded {
			b.logger.Info("list: not in embedded store, may be remote", "dir", dir)
		}
		merged = append(merged, children...)
	}
	return sortedUnique(merged)
}

// Slurp returns the embedded bytes for path. Assets only listed in the
// manifest are reported as [ErrNotFound]; the caller decides whether
// to fetch them.
func (b *Bundle) Slurp(path string) ([]byte, error) {
	for _, source := range b.sources {
		reader, ok := source.(ByteSource)
		if !ok || !reader.Contains(path) {
			continue
		}
		return reader.ReadFile(path)
	}
	if b.remote != nil && b.remote.Contains(path) {
		b.logger.Debug("slurp: not embedded, may be remote", "path", path)
	}
	return nil, notFound("slurp", path)
}

// WriteJSON does nothing. Embedded mode has no writable storage.
func (b *Bundle) WriteJSON(path string, value any) error { return nil }

// WriteBinary does nothing. Embedded mode has no writable storage.
func (b *Bundle) WriteBinary(path string, value any) error { return nil }

// Delete does nothing. The embedded catalog is immutable.
func (b *Bundle) Delete(path string) error { return nil }

// Remote returns the manifest entry for path, for callers that fetch
// assets over the network themselves.
func (b *Bundle) Remote(path string) (manifest.Entry, bool) {
	if b.remote == nil {
		return manifest.Entry{}, false
	}
	return b.remote.Lookup(path)
}

// Verify checks the embedded bytes of path against the manifest entry
// the asset is published under.
func (b *Bundle) Verify(path string) error {
	data, err := b.embedded.ReadFile(path)
	if err != nil {
		return err
	}
	key := b.layout.CanonicalManifestKey(path)
	if b.remote == nil {
		return fmt.Errorf("%s: %w", key, manifest.ErrNotIndexed)
	}
	entry, ok := b.remote.manifest().Lookup(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, manifest.ErrNotIndexed)
	}
	return entry.Verify(key, data)
}

// Catalog returns every known asset in caller spelling: embedded files
// under the embedded root and manifest entries under the parent
// prefix. An asset present in both appears once.
func (b *Bundle) Catalog() []string {
	paths := make([]string, 0, len(b.embedded.all))
	for _, key := range b.embedded.all {
		paths = append(paths, b.layout.EmbeddedPath(key))
	}
	if b.remote != nil {
		for _, key := range b.remote.Keys() {
			paths = append(paths, b.layout.RemotePath(key))
		}
	}
	return sortedUnique(paths)
}

// IsEmbedded reports whether path can be read from the embedded
// catalog.
func (b *Bundle) IsEmbedded(path string) bool {
	return b.embedded.Contains(path)
}

// Embedded returns the store keys of every embedded file.
func (b *Bundle) Embedded() []string {
	return b.embedded.Keys()
}

// ManifestErr returns the error the manifest failed to load with, or
// nil. It triggers the load if it has not happened yet.
func (b *Bundle) ManifestErr() error {
	if b.remote == nil {
		return nil
	}
	return b.remote.Err()
}

func sortedUnique(paths []string) []string {
	slices.Sort(paths)
	return slices.Compact(paths)
}
