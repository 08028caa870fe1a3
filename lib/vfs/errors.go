// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"io/fs"
)

// ErrNotFound is returned when an asset is absent from the source
// authoritative for the operation. It is fs.ErrNotExist, so callers
// can use either with errors.Is.
var ErrNotFound = fs.ErrNotExist

func notFound(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: ErrNotFound}
}

// DecodeError reports bytes that exist but do not decode as the
// requested type.
type DecodeError struct {
	Path string
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s as %s: %v", e.Path, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
