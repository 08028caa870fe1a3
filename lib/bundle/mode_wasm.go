// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build js && wasm

package bundle

import "github.com/bureau-foundation/assetfs/lib/vfs"

// DefaultMode is embedded: the browser sandbox has no filesystem.
const DefaultMode = vfs.ModeEmbedded
