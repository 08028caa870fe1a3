// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package assethash computes and formats the content digests stored in
// asset manifest entries.
//
// Digests are BLAKE3 in keyed mode with a fixed domain key, so an asset
// digest can never collide with a plain BLAKE3 hash of the same bytes
// computed for some other purpose. The API surface is small:
//
//   - [Sum] -- digest of an in-memory asset
//   - [SumReader] -- digest of a stream, constant memory
//   - [Digest.String] and [Parse] -- canonical lowercase hex form used
//     in MANIFEST.json
//
// This package has no dependencies on other assetfs packages.
package assethash
