// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"testing/fstest"

	"github.com/bureau-foundation/assetfs/lib/codec"
)

// EncodeAsset CBOR-encodes v with the asset codec.
func EncodeAsset(t testing.TB, v any) []byte {
	t.Helper()
	data, err := codec.Marshal(v)
	if err != nil {
		t.Fatalf("encoding asset %T: %v", v, err)
	}
	return data
}

// AssetFS returns an in-memory catalog keyed by store path. []byte
// and string values are stored verbatim; anything else is encoded
// with [EncodeAsset].
//
//	fsys := testutil.AssetFS(t, map[string]any{
//	    "seattle/city.bin": city,
//	    "fonts/README":     "licenses",
//	})
func AssetFS(t testing.TB, files map[string]any) fstest.MapFS {
	t.Helper()
	fsys := make(fstest.MapFS, len(files))
	for name, value := range files {
		var data []byte
		switch typed := value.(type) {
		case []byte:
			data = typed
		case string:
			data = []byte(typed)
		default:
			data = EncodeAsset(t, value)
		}
		fsys[name] = &fstest.MapFile{Data: data, Mode: 0o444}
	}
	return fsys
}
