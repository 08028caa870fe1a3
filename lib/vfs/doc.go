// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vfs is the virtual file-access layer application code uses
// to read assets by logical path.
//
// Callers never touch the OS filesystem directly. They hold a
// [Backend], chosen once at startup by [Open]:
//
//   - [Bundle] serves sandboxed runtimes (GOOS=js) that cannot read
//     local files. Bytes come only from the catalog compiled into the
//     binary; existence and listing also consult the remote manifest.
//     Writes and deletes succeed without doing anything.
//   - [Disk] serves native builds from a directory tree with the same
//     contract, including real writes.
//
// # Paths
//
// Callers spell paths relative to the application's working directory,
// with a parent-relative prefix: "../data/system/seattle/city.bin"
// names a file inside the embedded root "../data/system", and
// "../data/input/raw.osm" names a repository file that only the
// manifest knows about. The store key form ("seattle/city.bin") is
// accepted too. [Layout] converts between the spellings; every lookup
// goes through it.
//
// # Sources
//
// A Bundle consults an ordered list of [Source] values: the
// [EmbeddedSource] first (authoritative for the bundled subset,
// synchronous, cannot fail) and then the [IndexedSource] over the
// manifest. Exists and List merge all sources; Slurp and [ReadBinary]
// only read from sources that hold bytes, which is the embedded one.
// A miss there is reported as [ErrNotFound]; fetching the asset over
// the network is the caller's business, using [Bundle.Remote] to find
// its descriptor.
//
// # Manifest failures
//
// The manifest is loaded lazily through an [Index]. If it cannot be
// loaded, the remote source behaves as an empty index (one warning is
// logged and [Bundle.ManifestErr] reports the cause), so Exists and
// List degrade instead of failing. Options.StrictManifest makes [Open]
// load the manifest up front and fail instead.
package vfs
