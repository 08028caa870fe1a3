// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle holds the asset catalog compiled into the binary and
// wires it to the storage backend chosen by configuration.
//
// The system/ directory is the build-time selected subset of the
// repository's data/system tree that sandboxed builds need without a
// network round trip. MANIFEST.json indexes everything the data
// repository publishes, embedded or not.
//
// [Open] is the single startup entry point: it resolves the storage
// mode (the build's [DefaultMode] when configured as auto), picks the
// manifest source, and returns the [vfs.Backend] the application uses
// for the rest of the process.
package bundle
