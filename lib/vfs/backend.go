// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"

	"github.com/bureau-foundation/assetfs/lib/codec"
)

// Slurper returns the full bytes of an asset.
type Slurper interface {
	Slurp(path string) ([]byte, error)
}

// Backend is the file-access contract shared by every storage mode.
// Application code is written against Backend so call sites do not
// change between embedded and persistent builds.
type Backend interface {
	Slurper

	// Exists reports whether path names a known asset. It never fails.
	Exists(path string) bool

	// List returns the sorted, duplicate-free entries one level
	// below dir.
	List(dir string) []string

	// WriteJSON stores value encoded as JSON.
	WriteJSON(path string, value any) error

	// WriteBinary stores value encoded with the asset codec.
	WriteBinary(path string, value any) error

	// Delete removes path. Deleting a missing file is not an error.
	Delete(path string) error
}

var (
	_ Backend = (*Bundle)(nil)
	_ Backend = (*Disk)(nil)
)

// ReadBinary reads path and decodes it as T. On any error the zero
// value of T is returned: a miss propagates the Slurp error
// ([ErrNotFound]) and undecodable bytes yield a [*DecodeError].
func ReadBinary[T any](source Slurper, path string) (T, error) {
	var zero T
	data, err := source.Slurp(path)
	if err != nil {
		return zero, err
	}
	var value T
	if err := codec.Unmarshal(data, &value); err != nil {
		return zero, &DecodeError{Path: path, Type: fmt.Sprintf("%T", zero), Err: err}
	}
	return value, nil
}
