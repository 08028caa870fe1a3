// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Loader produces a manifest. It is called at most once per [Lazy].
type Loader func() (*Manifest, error)

// Lazy is a load-once manifest accessor.
//
// Thread safety: Load is safe for concurrent use. Callers that arrive
// while the first load is running block until it finishes and then
// observe the same result. A failed load is memoized like a successful
// one; there is no retry.
type Lazy struct {
	load Loader

	once     sync.Once
	manifest *Manifest
	err      error
}

// NewLazy returns an accessor that runs load on first use.
func NewLazy(load Loader) *Lazy {
	return &Lazy{load: load}
}

// Load returns the manifest, running the loader on the first call.
func (l *Lazy) Load() (*Manifest, error) {
	l.once.Do(l.run)
	return l.manifest, l.err
}

// run executes the loader. Called via sync.Once from Load.
func (l *Lazy) run() {
	if l.load == nil {
		l.err = fmt.Errorf("manifest: no loader configured")
		return
	}
	manifest, err := l.load()
	if err != nil {
		l.err = err
		return
	}
	if manifest == nil {
		manifest = New()
	}
	l.manifest = manifest
}

// BytesLoader parses an in-memory manifest, typically one embedded
// in the binary.
func BytesLoader(name string, data []byte) Loader {
	return func() (*Manifest, error) {
		return Parse(name, data)
	}
}

// FileLoader reads and parses the manifest file at path.
func FileLoader(path string) Loader {
	return func() (*Manifest, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading manifest: %w", err)
		}
		return Parse(path, data)
	}
}

// FSLoader reads and parses name from fsys.
func FSLoader(fsys fs.FS, name string) Loader {
	return func() (*Manifest, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading manifest: %w", err)
		}
		return Parse(name, data)
	}
}
