// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/assetfs/lib/assethash"
)

// ErrNotIndexed is returned when an asset has no manifest entry to
// verify against.
var ErrNotIndexed = errors.New("asset not in manifest")

// ChecksumMismatchError reports that bytes do not match their entry.
type ChecksumMismatchError struct {
	Key          string
	WantChecksum assethash.Digest
	GotChecksum  assethash.Digest
	WantSize     int64
	GotSize      int64
}

func (e *ChecksumMismatchError) Error() string {
	if e.WantSize != e.GotSize {
		return fmt.Sprintf("%s: size %d does not match manifest size %d", e.Key, e.GotSize, e.WantSize)
	}
	return fmt.Sprintf("%s: checksum %s does not match manifest checksum %s", e.Key, e.GotChecksum, e.WantChecksum)
}

// Verify checks data against the entry. An entry without a recorded
// checksum is checked by size only.
func (e Entry) Verify(key string, data []byte) error {
	got := assethash.Sum(data)
	size := int64(len(data))
	if size != e.SizeBytes || (!e.Checksum.IsZero() && got != e.Checksum) {
		return &ChecksumMismatchError{
			Key:          key,
			WantChecksum: e.Checksum,
			GotChecksum:  got,
			WantSize:     e.SizeBytes,
			GotSize:      size,
		}
	}
	return nil
}
