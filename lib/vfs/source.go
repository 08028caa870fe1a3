// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bureau-foundation/assetfs/lib/manifest"
)

// SourceKind distinguishes the two kinds of [Source].
type SourceKind uint8

const (
	// Embedded sources hold bytes compiled into the binary.
	Embedded SourceKind = iota + 1

	// RemoteIndexed sources only know which assets exist remotely.
	RemoteIndexed
)

// String returns the kind name used in logs.
func (kind SourceKind) String() string {
	switch kind {
	case Embedded:
		return "embedded"
	case RemoteIndexed:
		return "remote"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// Source is one place assets can be known from. Paths passed in are
// caller spellings; each source normalizes them with its [Layout].
type Source interface {
	Kind() SourceKind

	// Contains reports whether the source knows the asset.
	Contains(path string) bool

	// Children returns the entries one level below dir in caller
	// spelling, and whether the source knows dir at all.
	Children(dir string) ([]string, bool)
}

// ByteSource is a Source that can also return asset bytes.
type ByteSource interface {
	Source
	ReadFile(path string) ([]byte, error)
}

// EmbeddedSource is the immutable catalog compiled into the binary.
// It indexes the tree once at construction; afterwards every method is
// a map lookup and safe for concurrent use without locking.
type EmbeddedSource struct {
	fsys   fs.FS
	layout Layout

	files map[string]struct{}
	// dirs maps a directory key ("" for the root) to the sorted keys
	// of the files directly inside it.
	dirs map[string][]string
	all  []string
}

// NewEmbeddedSource indexes every regular file in fsys.
func NewEmbeddedSource(fsys fs.FS, layout Layout) (*EmbeddedSource, error) {
	source := &EmbeddedSource{
		fsys:   fsys,
		layout: layout,
		files:  make(map[string]struct{}),
		dirs:   make(map[string][]string),
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			key := name
			if key == "." {
				key = ""
			}
			if _, ok := source.dirs[key]; !ok {
				source.dirs[key] = nil
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		source.files[name] = struct{}{}
		source.all = append(source.all, name)

		parent := path.Dir(name)
		if parent == "." {
			parent = ""
		}
		source.dirs[parent] = append(source.dirs[parent], name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing embedded assets: %w", err)
	}

	// WalkDir visits in lexical order, but keep the invariant explicit.
	slices.Sort(source.all)
	for _, keys := range source.dirs {
		slices.Sort(keys)
	}
	return source, nil
}

// Kind returns Embedded.
func (s *EmbeddedSource) Kind() SourceKind { return Embedded }

// Contains reports whether path is an embedded file.
func (s *EmbeddedSource) Contains(path string) bool {
	_, ok := s.files[s.layout.EmbeddedKey(path)]
	return ok
}

// Children lists embedded files directly inside dir. The root alias
// lists every embedded file.
func (s *EmbeddedSource) Children(dir string) ([]string, bool) {
	if s.layout.IsRootAlias(dir) {
		return s.paths(s.all), true
	}
	keys, ok := s.dirs[strings.TrimSuffix(s.layout.EmbeddedKey(dir), "/")]
	if !ok {
		return nil, false
	}
	return s.paths(keys), true
}

// ReadFile returns a copy of the embedded bytes for path.
func (s *EmbeddedSource) ReadFile(path string) ([]byte, error) {
	key := s.layout.EmbeddedKey(path)
	if _, ok := s.files[key]; !ok {
		return nil, notFound("read", path)
	}
	data, err := fs.ReadFile(s.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", key, err)
	}
	return data, nil
}

// Keys returns every embedded store key, sorted.
func (s *EmbeddedSource) Keys() []string {
	return slices.Clone(s.all)
}

func (s *EmbeddedSource) paths(keys []string) []string {
	paths := make([]string, len(keys))
	for i, key := range keys {
		paths[i] = s.layout.EmbeddedPath(key)
	}
	return paths
}

// Index is the load-once manifest accessor consumed by
// [IndexedSource]. *manifest.Lazy implements it.
type Index interface {
	Load() (*manifest.Manifest, error)
}

// IndexedSource answers existence and listing from the remote
// manifest. A manifest that fails to load behaves as an empty one.
type IndexedSource struct {
	index  Index
	layout Layout
	logger *slog.Logger

	warnOnce sync.Once
}

// NewIndexedSource wraps index. logger receives the single warning
// emitted if the manifest cannot be loaded.
func NewIndexedSource(index Index, layout Layout, logger *slog.Logger) *IndexedSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IndexedSource{index: index, layout: layout, logger: logger}
}

// Kind returns RemoteIndexed.
func (s *IndexedSource) Kind() SourceKind { return RemoteIndexed }

// manifest returns the loaded manifest, or nil (an empty index) if it
// is unavailable.
func (s *IndexedSource) manifest() *manifest.Manifest {
	loaded, err := s.index.Load()
	if err != nil {
		s.warnOnce.Do(func() {
			s.logger.Warn("manifest unavailable, treating remote index as empty", "error", err)
		})
		return nil
	}
	return loaded
}

// Err returns the manifest load error, if any.
func (s *IndexedSource) Err() error {
	_, err := s.index.Load()
	return err
}

// Contains reports whether the manifest has an entry for path.
func (s *IndexedSource) Contains(path string) bool {
	_, ok := s.manifest().Lookup(s.layout.ManifestKey(path))
	return ok
}

// Children returns the distinct first path segments below dir among
// manifest keys. Deeper descendants collapse into their top-level
// directory under dir.
func (s *IndexedSource) Children(dir string) ([]string, bool) {
	loaded := s.manifest()
	if loaded.Len() == 0 {
		return nil, false
	}

	prefix := s.layout.ManifestDir(dir)
	seen := make(map[string]struct{})
	var children []string
	for key := range loaded.Entries {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || rest == "" {
			continue
		}
		segment, _, _ := strings.Cut(rest, "/")
		child := s.layout.RemotePath(prefix + segment)
		if _, dup := seen[child]; dup {
			continue
		}
		seen[child] = struct{}{}
		children = append(children, child)
	}
	slices.Sort(children)
	return children, len(children) > 0
}

// Lookup returns the manifest entry for a caller path.
func (s *IndexedSource) Lookup(path string) (manifest.Entry, bool) {
	return s.manifest().Lookup(s.layout.ManifestKey(path))
}

// Keys returns every manifest key, sorted.
func (s *IndexedSource) Keys() []string {
	return s.manifest().Keys()
}
