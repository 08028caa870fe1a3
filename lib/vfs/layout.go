// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"strings"
)

// Default path conventions.
const (
	DefaultEmbeddedRoot = "../data/system"
	DefaultParentPrefix = "../"
)

// Layout converts caller paths into the key forms each source uses.
//
// EmbeddedRoot is the caller spelling of the embedded catalog's root
// directory, without a trailing slash. ParentPrefix is the leading
// segment that makes a caller path relative to the repository root;
// stripping it yields a manifest key. EmbeddedRoot must start with
// ParentPrefix so an embedded asset and its manifest entry share one
// caller spelling.
type Layout struct {
	EmbeddedRoot string
	ParentPrefix string
}

// DefaultLayout returns the "../data/system" + "../" layout.
func DefaultLayout() Layout {
	return Layout{
		EmbeddedRoot: DefaultEmbeddedRoot,
		ParentPrefix: DefaultParentPrefix,
	}
}

// Validate checks that the layout can produce unambiguous keys.
func (l Layout) Validate() error {
	if l.EmbeddedRoot == "" {
		return fmt.Errorf("embedded root is required")
	}
	if strings.HasSuffix(l.EmbeddedRoot, "/") {
		return fmt.Errorf("embedded root %q must not end with a slash", l.EmbeddedRoot)
	}
	if l.ParentPrefix != "" && !strings.HasSuffix(l.ParentPrefix, "/") {
		return fmt.Errorf("parent prefix %q must end with a slash", l.ParentPrefix)
	}
	if !strings.HasPrefix(l.EmbeddedRoot, l.ParentPrefix) {
		return fmt.Errorf("embedded root %q is not below parent prefix %q", l.EmbeddedRoot, l.ParentPrefix)
	}
	return nil
}

func (l Layout) embeddedPrefix() string {
	return l.EmbeddedRoot + "/"
}

// EmbeddedKey returns the embedded store key for path. A path that
// does not start with the embedded root is taken to be a store key
// already.
func (l Layout) EmbeddedKey(path string) string {
	return strings.TrimPrefix(path, l.embeddedPrefix())
}

// ManifestKey strips exactly one leading parent prefix.
func (l Layout) ManifestKey(path string) string {
	return strings.TrimPrefix(path, l.ParentPrefix)
}

// IsRootAlias reports whether dir names the embedded root itself,
// spelled exactly as EmbeddedRoot with no trailing slash. Listing the
// alias returns every embedded file, not just the top level.
func (l Layout) IsRootAlias(dir string) bool {
	return dir == l.EmbeddedRoot
}

// ManifestDir returns the manifest key prefix for listing dir: the
// manifest key with a trailing slash.
func (l Layout) ManifestDir(dir string) string {
	prefix := l.ManifestKey(dir)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// EmbeddedPath returns the caller spelling of an embedded store key.
func (l Layout) EmbeddedPath(key string) string {
	return l.embeddedPrefix() + key
}

// RemotePath returns the caller spelling of a manifest key.
func (l Layout) RemotePath(key string) string {
	return l.ParentPrefix + key
}

// CanonicalManifestKey returns the manifest key an embedded asset is
// published under, for either spelling of its path.
func (l Layout) CanonicalManifestKey(path string) string {
	return l.ManifestKey(l.EmbeddedPath(l.EmbeddedKey(path)))
}
