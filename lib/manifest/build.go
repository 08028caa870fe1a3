// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bureau-foundation/assetfs/lib/assethash"
	"github.com/bureau-foundation/assetfs/lib/compress"
)

// BuildOptions controls [Build].
type BuildOptions struct {
	// Prefix is joined in front of every path found in the tree, so
	// walking a checkout of data/system with Prefix "data/system"
	// yields keys like "data/system/seattle/city.bin".
	Prefix string

	// CompressedSizes records the zstd-compressed size of every
	// asset. This costs one compression pass per file.
	CompressedSizes bool

	// IncludeHidden keeps files and directories whose name starts
	// with ".". They are skipped by default.
	IncludeHidden bool
}

// Build walks fsys and returns a manifest describing every regular
// file in it.
func Build(fsys fs.FS, options BuildOptions) (*Manifest, error) {
	manifest := New()

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name != "." && !options.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		described := Entry{
			Checksum:  assethash.Sum(data),
			SizeBytes: int64(len(data)),
		}
		if options.CompressedSizes {
			described.CompressedSizeBytes = compress.CompressedSize(data)
		}

		key := name
		if options.Prefix != "" {
			key = path.Join(options.Prefix, name)
		}
		if !ValidKey(key) {
			return fmt.Errorf("file %q maps to invalid entry path %q", name, key)
		}
		manifest.Entries[key] = described
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building manifest: %w", err)
	}
	return manifest, nil
}
