// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest describes the assets available from the remote data
// repository.
//
// A [Manifest] maps a repository-relative path
// ("data/system/seattle/maps/montlake.bin") to an [Entry] holding the
// asset's content digest and sizes. It never holds the bytes
// themselves; it is what lets a sandboxed runtime answer "does this
// asset exist, and how big is it" without network access, and what a
// remote loader consults before fetching.
//
// Manifests are JSON, optionally with // and /* */ comments, and may be
// published compressed (MANIFEST.json.zst, MANIFEST.json.lz4). [Parse]
// handles all of these by name.
//
// [Lazy] is the load-once accessor: the first [Lazy.Load] runs the
// loader, every later or concurrent call returns the same manifest (or
// the same error). A process normally has exactly one Lazy for the
// published manifest.
//
// [Build] produces a manifest from a directory tree, hashing every file
// with [assethash]. It is the publishing side of the same format.
package manifest
