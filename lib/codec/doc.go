// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the binary encoding shared by the build-time
// asset encoder and the runtime typed-read path.
//
// Assets are CBOR (RFC 8949) with Core Deterministic Encoding: sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical value always produces identical bytes, so an asset
// encoded on one machine hashes identically on another and manifest
// checksums stay stable across rebuilds.
//
// Decoding is strict. A map key that does not correspond to a field of
// the destination struct, a duplicated map key, or trailing bytes after
// the top-level item are errors rather than silently ignored: the bytes
// embedded at build time must match the schema the reader expects.
//
// For buffer-oriented operations (embedded assets, files on disk):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
// Asset types use `cbor` struct tags when they are only ever stored as
// binary assets, and `json` tags when the same type is also written by
// the JSON path (fxamacker/cbor falls back to `json` tags when `cbor`
// tags are absent). Never use both on the same field.
package codec
