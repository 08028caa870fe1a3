// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import "slices"

// Diff describes which assets differ between two manifests. Clients
// holding a cache built from the old manifest use it to decide what to
// refetch and what to evict.
type Diff struct {
	// Added are keys present only in the new manifest.
	Added []string `json:"added"`

	// Removed are keys present only in the old manifest.
	Removed []string `json:"removed"`

	// Changed are keys present in both whose content differs.
	Changed []string `json:"changed"`
}

// Empty reports whether the manifests describe the same assets.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare returns the differences from old to current. Either may be
// nil, which compares as empty. All three lists are sorted.
func Compare(old, current *Manifest) *Diff {
	diff := &Diff{}

	for key, entry := range current.entries() {
		previous, ok := old.Lookup(key)
		switch {
		case !ok:
			diff.Added = append(diff.Added, key)
		case entryChanged(previous, entry):
			diff.Changed = append(diff.Changed, key)
		}
	}
	for key := range old.entries() {
		if _, ok := current.Lookup(key); !ok {
			diff.Removed = append(diff.Removed, key)
		}
	}

	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	slices.Sort(diff.Changed)
	return diff
}

// entryChanged compares checksums when both entries have one and
// sizes otherwise. Compressed size is a property of the transfer, not
// the asset, and is ignored.
func entryChanged(old, current Entry) bool {
	if old.SizeBytes != current.SizeBytes {
		return true
	}
	if old.Checksum.IsZero() || current.Checksum.IsZero() {
		return false
	}
	return old.Checksum != current.Checksum
}

func (m *Manifest) entries() map[string]Entry {
	if m == nil {
		return nil
	}
	return m.Entries
}
