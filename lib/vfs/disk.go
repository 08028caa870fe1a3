// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/assetfs/lib/codec"
)

// DiskOptions configures a [Disk].
type DiskOptions struct {
	// Root is the directory relative paths resolve against. Empty
	// means the process working directory.
	Root string

	Logger *slog.Logger
}

// Disk is the persistent [Backend] for native builds. Paths resolve
// against Root exactly as the application would open them, so
// "../data/system/x" reaches the same file in both modes.
type Disk struct {
	root   string
	logger *slog.Logger
}

// NewDisk returns a Disk rooted at options.Root.
func NewDisk(options DiskOptions) *Disk {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Disk{root: options.Root, logger: logger}
}

func (d *Disk) resolve(path string) string {
	native := filepath.FromSlash(path)
	if filepath.IsAbs(native) || d.root == "" {
		return native
	}
	return filepath.Join(d.root, native)
}

// Exists reports whether path exists on disk.
func (d *Disk) Exists(path string) bool {
	_, err := os.Stat(d.resolve(path))
	return err == nil
}

// List returns the names directly inside dir, spelled as dir + "/" +
// name. A missing or unreadable directory lists as empty.
func (d *Disk) List(dir string) []string {
	entries, err := os.ReadDir(d.resolve(dir))
	if err != nil {
		d.logger.Debug("list: cannot read directory", "dir", dir, "error", err)
		return nil
	}
	base := strings.TrimSuffix(dir, "/")
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, base+"/"+entry.Name())
	}
	// os.ReadDir returns entries sorted by filename.
	return paths
}

// Slurp reads the whole file.
func (d *Disk) Slurp(path string) ([]byte, error) {
	data, err := os.ReadFile(d.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound("slurp", path)
	}
	if err != nil {
		return nil, fmt.Errorf("slurp %s: %w", path, err)
	}
	return data, nil
}

// WriteJSON writes value as indented JSON, atomically.
func (d *Disk) WriteJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s as JSON: %w", path, err)
	}
	return d.writeAtomic(path, append(data, '\n'))
}

// WriteBinary writes value with the asset codec, atomically.
func (d *Disk) WriteBinary(path string, value any) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return d.writeAtomic(path, data)
}

// Delete removes path. A missing file is not an error.
func (d *Disk) Delete(path string) error {
	err := os.Remove(d.resolve(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// writeAtomic writes data to a temporary file next to the target and
// renames it into place, so readers see either the old or the new
// contents.
func (d *Disk) writeAtomic(path string, data []byte) error {
	target := d.resolve(path)
	directory := filepath.Dir(target)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}

	temp, err := os.CreateTemp(directory, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	d.logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}
