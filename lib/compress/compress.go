// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Tag identifies a compression codec.
type Tag uint8

const (
	// None leaves data as-is.
	None Tag = 0

	// LZ4 is the LZ4 frame format.
	LZ4 Tag = 1

	// Zstd is the zstd frame format at the default level.
	Zstd Tag = 2
)

// Name suffixes that select a codec.
const (
	suffixLZ4  = ".lz4"
	suffixZstd = ".zst"
)

// String returns the human-readable name of a tag.
func (tag Tag) String() string {
	switch tag {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseTag parses a tag from its string representation.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// Suffix returns the file name suffix for the tag ("" for None).
func (tag Tag) Suffix() string {
	switch tag {
	case LZ4:
		return suffixLZ4
	case Zstd:
		return suffixZstd
	default:
		return ""
	}
}

// TagForName returns the codec implied by a file name and the name
// with the codec suffix removed.
func TagForName(name string) (Tag, string) {
	switch {
	case strings.HasSuffix(name, suffixZstd):
		return Zstd, strings.TrimSuffix(name, suffixZstd)
	case strings.HasSuffix(name, suffixLZ4):
		return LZ4, strings.TrimSuffix(name, suffixLZ4)
	default:
		return None, name
	}
}

// zstdEncoder and zstdDecoder are shared; both are safe for
// concurrent use via EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress compresses data with the given codec. For None the input is
// returned unchanged (no copy).
func Compress(data []byte, tag Tag) ([]byte, error) {
	switch tag {
	case None:
		return data, nil
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// Decompress reverses Compress.
func Decompress(compressed []byte, tag Tag) ([]byte, error) {
	switch tag {
	case None:
		return compressed, nil
	case LZ4:
		return decompressLZ4(compressed)
	case Zstd:
		result, err := zstdDecoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// DecompressNamed decompresses data according to the suffix of name
// and returns the plain bytes together with the suffix-stripped name.
func DecompressNamed(name string, data []byte) ([]byte, string, error) {
	tag, base := TagForName(name)
	plain, err := Decompress(data, tag)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return plain, base, nil
}

// CompressedSize returns the zstd-compressed size of data. Manifest
// entries record it so a remote loader can report transfer sizes
// before fetching.
func CompressedSize(data []byte) int64 {
	return int64(len(zstdEncoder.EncodeAll(data, nil)))
}

func compressLZ4(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressLZ4(compressed []byte) ([]byte, error) {
	result, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return result, nil
}
