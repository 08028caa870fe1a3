// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bureau-foundation/assetfs/lib/assethash"
)

func sampleTree() fstest.MapFS {
	return fstest.MapFS{
		"seattle/city.bin":          {Data: []byte("city bytes")},
		"seattle/maps/montlake.bin": {Data: []byte(strings.Repeat("road ", 200))},
		"fonts/NotoSans.ttf":        {Data: []byte("font")},
		".git/HEAD":                 {Data: []byte("ref: main")},
		"seattle/.DS_Store":         {Data: []byte("junk")},
	}
}

func TestBuild(t *testing.T) {
	manifest, err := Build(sampleTree(), BuildOptions{Prefix: "data/system"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"data/system/fonts/NotoSans.ttf",
		"data/system/seattle/city.bin",
		"data/system/seattle/maps/montlake.bin",
	}
	if got := manifest.Keys(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Keys = %v, want %v", got, want)
	}

	entry, _ := manifest.Lookup("data/system/seattle/city.bin")
	if entry.Checksum != assethash.Sum([]byte("city bytes")) {
		t.Errorf("checksum mismatch for city.bin")
	}
	if entry.SizeBytes != int64(len("city bytes")) {
		t.Errorf("size = %d", entry.SizeBytes)
	}
	if entry.CompressedSizeBytes != 0 {
		t.Errorf("compressed size recorded without CompressedSizes option")
	}
}

func TestBuildCompressedSizesAndHidden(t *testing.T) {
	manifest, err := Build(sampleTree(), BuildOptions{CompressedSizes: true, IncludeHidden: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, ok := manifest.Lookup(".git/HEAD"); !ok {
		t.Error("hidden file skipped despite IncludeHidden")
	}
	montlake, _ := manifest.Lookup("seattle/maps/montlake.bin")
	if montlake.CompressedSizeBytes <= 0 || montlake.CompressedSizeBytes >= montlake.SizeBytes {
		t.Errorf("compressed size = %d for %d bytes", montlake.CompressedSizeBytes, montlake.SizeBytes)
	}
}

func TestEntryVerify(t *testing.T) {
	data := []byte("montlake")
	entry := Entry{Checksum: assethash.Sum(data), SizeBytes: int64(len(data))}

	if err := entry.Verify("m", data); err != nil {
		t.Fatalf("Verify on matching data: %v", err)
	}

	err := entry.Verify("m", []byte("montlakE"))
	var mismatch *ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ChecksumMismatchError, got %v", err)
	}
	if !strings.Contains(err.Error(), "checksum") {
		t.Errorf("error %q should mention checksum", err)
	}

	err = entry.Verify("m", []byte("short"))
	if !errors.As(err, &mismatch) || !strings.Contains(err.Error(), "size") {
		t.Errorf("size mismatch error = %v", err)
	}
}

func TestEntryVerifySizeOnly(t *testing.T) {
	entry := Entry{SizeBytes: 3}
	if err := entry.Verify("k", []byte("abc")); err != nil {
		t.Errorf("size-only entry should accept matching size: %v", err)
	}
	if err := entry.Verify("k", []byte("abcd")); err == nil {
		t.Error("size-only entry should reject wrong size")
	}
}
