// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package assethash

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// Digest is a 32-byte keyed BLAKE3 digest of an asset's bytes.
type Digest [Size]byte

// contentDomainKey is the BLAKE3 key for asset content. Changing it
// invalidates every checksum in every published manifest. The bytes
// are the ASCII domain name zero-padded to 32 bytes so the key reads
// cleanly in hex dumps.
var contentDomainKey = [Size]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'a', 's', 's', 'e', 't', 'f', 's', '.',
	'c', 'o', 'n', 't', 'e', 'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(contentDomainKey[:])
	if err != nil {
		panic("assethash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// Sum returns the content digest of data.
func Sum(data []byte) Digest {
	hasher := newHasher()
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// SumReader streams r through the hash and returns its digest and the
// number of bytes read.
func SumReader(r io.Reader) (Digest, int64, error) {
	hasher := newHasher()
	written, err := io.Copy(hasher, r)
	if err != nil {
		return Digest{}, written, fmt.Errorf("hashing asset: %w", err)
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, written, nil
}

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero digest (no checksum recorded).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Parse parses a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("parsing asset digest: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("asset digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}

// MarshalText implements encoding.TextMarshaler. The zero digest
// encodes as the empty string.
func (d Digest) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string
// decodes as the zero digest.
func (d *Digest) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Digest{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
