// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for assetfs packages.
//
// [AssetFS] builds an in-memory embedded catalog (a fstest.MapFS) from
// a map of store keys to contents; non-byte values are CBOR-encoded
// with lib/codec exactly as the build-time encoder would, so typed
// reads can be tested against realistic bytes. [EncodeAsset] encodes a
// single value the same way.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) for concurrency
// tests, so individual tests never hang on a broken channel handoff.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
