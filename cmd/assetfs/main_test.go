// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/assetfs/lib/bundle"
	"github.com/bureau-foundation/assetfs/lib/config"
	"github.com/bureau-foundation/assetfs/lib/manifest"
	"github.com/bureau-foundation/assetfs/lib/vfs"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command line with no ambient configuration.
func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func lines(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

func TestExists(t *testing.T) {
	got := runCLI(t, "exists", "--mode", "embedded",
		"../data/system/seattle/city.bin",
		"../data/input/raw_maps/seattle.osm")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	want := []string{
		"../data/system/seattle/city.bin\ttrue",
		"../data/input/raw_maps/seattle.osm\ttrue",
	}
	if !slices.Equal(lines(got.stdout), want) {
		t.Errorf("stdout = %q, want %q", lines(got.stdout), want)
	}

	got = runCLI(t, "exists", "--mode", "embedded", "seattle/city.bin", "../data/system/nope.bin")
	if got.code != exitNegative {
		t.Errorf("exit %d for a missing asset, want %d", got.code, exitNegative)
	}
	if got.stderr != "" {
		t.Errorf("negative answer printed an error: %s", got.stderr)
	}
}

func TestExistsPersistent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "save.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(t.TempDir(), "assetfs.yaml")
	content := "mode: persistent\npaths:\n  persistent_root: " + root + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := runCLI(t, "exists", "--config", configPath, "save.json")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	// Embedded assets are not visible to the persistent backend.
	got = runCLI(t, "exists", "--config", configPath, "../data/system/seattle/city.bin")
	if got.code != exitNegative {
		t.Errorf("exit %d, want %d", got.code, exitNegative)
	}
}

func TestLs(t *testing.T) {
	got := runCLI(t, "ls", "--mode", "embedded", "../data/system/seattle/maps")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	want := []string{
		"../data/system/seattle/maps/ballard.bin",
		"../data/system/seattle/maps/downtown.bin",
		"../data/system/seattle/maps/montlake.bin",
	}
	if !slices.Equal(lines(got.stdout), want) {
		t.Errorf("stdout = %q, want %q", lines(got.stdout), want)
	}
}

func TestLsJSON(t *testing.T) {
	got := runCLI(t, "ls", "--mode", "embedded", "--json", "../data/system/seattle")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(got.stdout), &entries); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, got.stdout)
	}
	want := []listEntry{
		{Path: "../data/system/seattle/city.bin", Embedded: true},
		{Path: "../data/system/seattle/maps", Embedded: false},
	}
	if !slices.Equal(entries, want) {
		t.Errorf("entries = %+v, want %+v", entries, want)
	}

	got = runCLI(t, "ls", "--mode", "embedded", "--json", "../nowhere")
	if strings.TrimSpace(got.stdout) != "[]" {
		t.Errorf("empty listing = %q, want []", got.stdout)
	}
}

func TestCat(t *testing.T) {
	got := runCLI(t, "cat", "--mode", "embedded", "../data/system/assets/tree.svg")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	if !strings.HasPrefix(got.stdout, "<svg") {
		t.Errorf("stdout = %q", got.stdout)
	}

	got = runCLI(t, "cat", "--mode", "embedded", "../data/system/seattle/maps/ballard.bin")
	if got.code != exitFailure || !strings.Contains(got.stderr, "file does not exist") {
		t.Errorf("remote-only cat: exit %d, stderr %q", got.code, got.stderr)
	}
}

func TestCatRefusesBinaryOnTerminal(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.terminal = func() bool { return true }

	err := rootCommand(a).execute([]string{"cat", "--mode", "embedded", "seattle/city.bin"})
	if err == nil || !strings.Contains(err.Error(), "binary") {
		t.Fatalf("error = %v, want binary refusal", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("wrote %d bytes despite refusing", stdout.Len())
	}

	err = rootCommand(a).execute([]string{"cat", "--mode", "embedded", "--force", "seattle/city.bin"})
	if err != nil {
		t.Fatalf("cat --force: %v", err)
	}
	data, _ := fs.ReadFile(bundle.FS(), "seattle/city.bin")
	if !bytes.Equal(stdout.Bytes(), data) {
		t.Error("cat --force output differs from the embedded bytes")
	}
}

func TestInspect(t *testing.T) {
	got := runCLI(t, "inspect", "--mode", "embedded", "seattle/city.bin")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	if !strings.Contains(got.stdout, `"Seattle"`) || !strings.Contains(got.stdout, `"montlake"`) {
		t.Errorf("diagnostic notation = %q", got.stdout)
	}

	got = runCLI(t, "inspect", "--mode", "embedded", "--json", "seattle/maps/montlake.bin")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	var summary struct {
		Name  string `json:"name"`
		Roads int    `json:"roads"`
	}
	if err := json.Unmarshal([]byte(got.stdout), &summary); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, got.stdout)
	}
	if summary.Name != "Montlake" || summary.Roads != 312 {
		t.Errorf("summary = %+v", summary)
	}

	got = runCLI(t, "inspect", "--mode", "embedded", "assets/tree.svg")
	if got.code != exitFailure {
		t.Errorf("inspect of non-CBOR: exit %d, want %d", got.code, exitFailure)
	}
}

func TestFind(t *testing.T) {
	got := runCLI(t, "find", "mntlk")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	if first := lines(got.stdout)[0]; first != "../data/system/seattle/maps/montlake.bin" {
		t.Errorf("best match = %q", first)
	}

	got = runCLI(t, "find", "qqqqzzzz")
	if got.code != exitNegative {
		t.Errorf("no-match exit %d, want %d", got.code, exitNegative)
	}
}

func TestCatalog(t *testing.T) {
	got := runCLI(t, "catalog", "--json")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	var paths []string
	if err := json.Unmarshal([]byte(got.stdout), &paths); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	for _, want := range []string{
		"../data/input/raw_maps/seattle.osm",
		"../data/system/seattle/city.bin",
		"../data/system/fonts/Overpass-Regular.ttf",
	} {
		if !slices.Contains(paths, want) {
			t.Errorf("catalog lacks %s", want)
		}
	}
	if !slices.IsSorted(paths) {
		t.Error("catalog is not sorted")
	}
}

func TestVerifyEmbedded(t *testing.T) {
	got := runCLI(t, "verify")
	if got.code != exitOK {
		t.Fatalf("exit %d\nstdout:\n%s\nstderr:\n%s", got.code, got.stdout, got.stderr)
	}
	if strings.Contains(got.stdout, "FAIL") {
		t.Errorf("verification failures:\n%s", got.stdout)
	}
}

func TestVerifyAgainstStaleManifest(t *testing.T) {
	stale := filepath.Join(t.TempDir(), "MANIFEST.json")
	content := `{"entries": {"data/system/seattle/city.bin": {"checksum": "", "size_bytes": 1}}}`
	if err := os.WriteFile(stale, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := runCLI(t, "verify", "--manifest", stale, "seattle/city.bin")
	if got.code != exitNegative {
		t.Fatalf("exit %d, want %d\n%s", got.code, exitNegative, got.stdout)
	}
	if !strings.Contains(got.stdout, "FAIL  seattle/city.bin") {
		t.Errorf("stdout = %q", got.stdout)
	}
}

// extractBundle writes the embedded catalog under dir/system.
func extractBundle(t *testing.T, dir string) {
	t.Helper()
	err := fs.WalkDir(bundle.FS(), ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		data, err := fs.ReadFile(bundle.FS(), name)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, "system", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		t.Fatalf("extracting bundle: %v", err)
	}
}

func TestManifestBuildThenVerify(t *testing.T) {
	dataDir := t.TempDir()
	extractBundle(t, dataDir)
	out := filepath.Join(t.TempDir(), "MANIFEST.json.zst")

	got := runCLI(t, "manifest", "build", dataDir, "--prefix", "data", "--out", out, "--compressed-sizes")
	if got.code != exitOK {
		t.Fatalf("build exit %d, stderr:\n%s", got.code, got.stderr)
	}
	if !strings.Contains(got.stderr, "wrote "+out) {
		t.Errorf("stderr = %q", got.stderr)
	}

	built, err := manifest.FileLoader(out)()
	if err != nil {
		t.Fatalf("loading built manifest: %v", err)
	}
	entry, ok := built.Lookup("data/system/seattle/city.bin")
	if !ok {
		t.Fatalf("built manifest keys = %q", built.Keys())
	}
	if entry.CompressedSizeBytes == 0 {
		t.Error("compressed size not recorded")
	}

	got = runCLI(t, "verify", "--manifest", out)
	if got.code != exitOK {
		t.Errorf("verify against built manifest: exit %d\n%s", got.code, got.stdout)
	}
}

func TestManifestBuildRequiresOut(t *testing.T) {
	got := runCLI(t, "manifest", "build", t.TempDir())
	if got.code != exitFailure || !strings.Contains(got.stderr, "--out is required") {
		t.Errorf("exit %d, stderr %q", got.code, got.stderr)
	}
}

func TestManifestSummary(t *testing.T) {
	got := runCLI(t, "manifest", "summary", "--json")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	var groups []directorySummary
	if err := json.Unmarshal([]byte(got.stdout), &groups); err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	loaded, err := bundle.Index().Load()
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, group := range groups {
		total += group.Count
		if group.Directory == "data/system/seattle" && group.Count != 4 {
			t.Errorf("data/system/seattle has %d entries, want 4", group.Count)
		}
	}
	if total != loaded.Len() {
		t.Errorf("groups cover %d entries, manifest has %d", total, loaded.Len())
	}

	got = runCLI(t, "manifest", "summary")
	if got.code != exitOK || !strings.Contains(got.stdout, "total") {
		t.Errorf("text summary: exit %d\n%s", got.code, got.stdout)
	}
}

func TestSummarizeByDirectory(t *testing.T) {
	loaded := &manifest.Manifest{Entries: map[string]manifest.Entry{
		"top.bin":               {SizeBytes: 1},
		"data/a.bin":            {SizeBytes: 2},
		"data/system/x/y/z.bin": {SizeBytes: 4, CompressedSizeBytes: 3},
		"data/system/x/w.bin":   {SizeBytes: 8},
	}}

	got := summarizeByDirectory(loaded, 2)
	want := []directorySummary{
		{Directory: ".", Count: 1, TotalBytes: 1},
		{Directory: "data", Count: 1, TotalBytes: 2},
		{Directory: "data/system", Count: 2, TotalBytes: 12, CompressedBytes: 3},
	}
	if !slices.Equal(got, want) {
		t.Errorf("summarizeByDirectory = %+v, want %+v", got, want)
	}
}

func TestManifestDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.json")
	writeFile := func(path, content string) {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(oldPath, `{"entries": {"a": {"size_bytes": 1}, "b": {"size_bytes": 2}}}`)
	writeFile(newPath, `{
		// b grew, c is new
		"entries": {"b": {"size_bytes": 3}, "c": {"size_bytes": 1}},
	}`)

	got := runCLI(t, "manifest", "diff", oldPath, newPath)
	if got.code != exitNegative {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	want := []string{"+ c", "- a", "~ b"}
	if !slices.Equal(lines(got.stdout), want) {
		t.Errorf("stdout = %q, want %q", lines(got.stdout), want)
	}

	got = runCLI(t, "manifest", "diff", oldPath, oldPath)
	if got.code != exitOK || got.stdout != "" {
		t.Errorf("identical diff: exit %d, stdout %q", got.code, got.stdout)
	}
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "montlake.jsonc")
	out := filepath.Join(dir, "maps", "montlake.bin")
	source := `{
  // Regenerated from the road network import.
  "name": "Montlake",
  "roads": 312,
  "intersections": 187,
}
`
	if err := os.WriteFile(in, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	got := runCLI(t, "encode", "--in", in, "--out", out)
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}

	type mapSummary struct {
		Name          string `cbor:"name"`
		Roads         int    `cbor:"roads"`
		Intersections int    `cbor:"intersections"`
	}
	decoded, err := vfs.ReadBinary[mapSummary](vfs.NewDisk(vfs.DiskOptions{}), out)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if decoded != (mapSummary{Name: "Montlake", Roads: 312, Intersections: 187}) {
		t.Errorf("decoded = %+v", decoded)
	}

	// Same input, same bytes as the embedded asset.
	encoded, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	embedded, err := fs.ReadFile(bundle.FS(), "seattle/maps/montlake.bin")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encoded, embedded) {
		t.Errorf("encoded %x, embedded %x", encoded, embedded)
	}
}

func TestDecodeJSONC(t *testing.T) {
	value, err := decodeJSONC([]byte(`{"count": 3, "ratio": 0.5, "tags": [1, "x"], /* note */ "big": 1e3}`))
	if err != nil {
		t.Fatalf("decodeJSONC: %v", err)
	}
	object := value.(map[string]any)
	if object["count"] != int64(3) {
		t.Errorf("count = %#v, want int64(3)", object["count"])
	}
	if object["ratio"] != 0.5 {
		t.Errorf("ratio = %#v, want 0.5", object["ratio"])
	}
	if object["big"] != 1000.0 {
		t.Errorf("big = %#v, want 1000.0", object["big"])
	}
	tags := object["tags"].([]any)
	if tags[0] != int64(1) || tags[1] != "x" {
		t.Errorf("tags = %#v", tags)
	}

	if _, err := decodeJSONC([]byte(`{} {}`)); err == nil {
		t.Error("trailing value accepted")
	}
	if _, err := decodeJSONC([]byte(`{"a":`)); err == nil {
		t.Error("truncated document accepted")
	}
}

func TestVersion(t *testing.T) {
	got := runCLI(t, "version")
	if got.code != exitOK || strings.TrimSpace(got.stdout) == "" {
		t.Errorf("version: exit %d, stdout %q", got.code, got.stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"lss"}, `did you mean "ls"`},
		{"missing argument", []string{"ls"}, "usage: assetfs ls DIR"},
		{"unknown flag", []string{"ls", "--bogus", "x"}, "unknown flag"},
		{"bad mode", []string{"exists", "--mode", "cloud", "x"}, "mode must be one of"},
		{"missing subcommand", []string{"manifest"}, "subcommand required"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := runCLI(t, test.args...)
			if got.code != exitFailure {
				t.Errorf("exit %d, want %d", got.code, exitFailure)
			}
			if !strings.Contains(got.stderr, test.want) {
				t.Errorf("stderr = %q, want it to contain %q", got.stderr, test.want)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	got := runCLI(t, "--help")
	if got.code != exitOK {
		t.Fatalf("exit %d", got.code)
	}
	for _, want := range []string{"Commands:", "manifest", "verify"} {
		if !strings.Contains(got.stderr, want) {
			t.Errorf("help lacks %q:\n%s", want, got.stderr)
		}
	}

	got = runCLI(t, "ls", "--help")
	if got.code != exitOK || !strings.Contains(got.stderr, "--json") {
		t.Errorf("ls --help: exit %d\n%s", got.code, got.stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	got := runCLI(t, "version", "--json")
	if got.code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", got.code, got.stderr)
	}
	var build struct {
		Version  string `json:"version"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal([]byte(got.stdout), &build); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if build.Version == "" || build.Platform == "" {
		t.Errorf("build = %+v", build)
	}
}
