// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(js && wasm)

package bundle

import "github.com/bureau-foundation/assetfs/lib/vfs"

// DefaultMode is persistent on native platforms.
const DefaultMode = vfs.ModePersistent
