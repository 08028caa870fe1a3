// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/assetfs/lib/assethash"
	"github.com/bureau-foundation/assetfs/lib/compress"
)

// Manifest is the index of remotely available assets.
type Manifest struct {
	// Entries maps repository-relative paths to their descriptors.
	// Keys use forward slashes and never start with "/" or "../".
	Entries map[string]Entry `json:"entries"`
}

// Entry is the retrieval descriptor for one remote asset.
type Entry struct {
	// Checksum is the keyed BLAKE3 digest of the uncompressed bytes.
	Checksum assethash.Digest `json:"checksum"`

	// SizeBytes is the uncompressed size.
	SizeBytes int64 `json:"size_bytes"`

	// CompressedSizeBytes is the zstd-compressed size, when the
	// publisher recorded it.
	CompressedSizeBytes int64 `json:"compressed_size_bytes,omitempty"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Entries: make(map[string]Entry)}
}

// Parse decodes a manifest. The codec is chosen from the suffix of
// name (see compress.TagForName); the payload is JSON with optional
// comments.
func Parse(name string, data []byte) (*Manifest, error) {
	plain, _, err := compress.DecompressNamed(name, data)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(jsonc.ToJSON(plain), &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	if manifest.Entries == nil {
		manifest.Entries = make(map[string]Entry)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	return &manifest, nil
}

// Marshal encodes the manifest as indented JSON, compressed according
// to the suffix of name.
func Marshal(manifest *Manifest, name string) ([]byte, error) {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')

	tag, _ := compress.TagForName(name)
	return compress.Compress(data, tag)
}

// Validate checks every key and size.
func (m *Manifest) Validate() error {
	for key, entry := range m.Entries {
		if !ValidKey(key) {
			return fmt.Errorf("invalid entry path %q", key)
		}
		if entry.SizeBytes < 0 || entry.CompressedSizeBytes < 0 {
			return fmt.Errorf("entry %q: negative size", key)
		}
	}
	return nil
}

// ValidKey reports whether key is usable as a manifest path: relative,
// slash-separated, and free of empty, "." and ".." elements.
func ValidKey(key string) bool {
	return key != "." && fs.ValidPath(key)
}

// Lookup returns the entry for key. A nil manifest has no entries.
func (m *Manifest) Lookup(key string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	entry, ok := m.Entries[key]
	return entry, ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Keys returns every entry path in lexicographic order.
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Entries))
	for key := range m.Entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Summary aggregates entry sizes.
type Summary struct {
	Count           int
	TotalBytes      int64
	CompressedBytes int64
}

// Summarize returns entry count and byte totals.
func (m *Manifest) Summarize() Summary {
	var summary Summary
	if m == nil {
		return summary
	}
	for _, entry := range m.Entries {
		summary.Count++
		summary.TotalBytes += entry.SizeBytes
		summary.CompressedBytes += entry.CompressedSizeBytes
	}
	return summary
}
