// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress implements the whole-file compression used for
// published manifests and for estimating the transfer size of remote
// assets.
//
// Two codecs are supported, both in their self-describing frame
// formats so the decompressed size does not have to be known up front:
//
//   - zstd (klauspost/compress) -- the default for JSON manifests,
//     which compress 5-10x
//   - LZ4 (pierrec/lz4) -- faster, lower ratio
//
// The codec of a file is identified by its name suffix (".zst",
// ".lz4"); see [TagForName].
package compress
