// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/assetfs/lib/codec"
	"github.com/bureau-foundation/assetfs/lib/vfs"
)

func existsCommand(a *app) *command {
	return &command{
		name:    "exists",
		summary: "Report whether assets are known",
		description: `Report whether each PATH is a known asset: embedded in the binary or
listed in the remote manifest (embedded mode), or present on disk
(persistent mode). Exits 1 if any path is unknown.`,
		usage: "assetfs exists PATH...",
		examples: []example{
			{"Check an embedded map", "assetfs exists --mode embedded ../data/system/seattle/maps/montlake.bin"},
		},
		flags: func() *pflag.FlagSet { return a.flagSet("exists") },
		run: func(args []string) error {
			if err := requireArgs(args, 1, -1, "assetfs exists PATH..."); err != nil {
				return err
			}
			backend, err := a.backend()
			if err != nil {
				return err
			}
			allPresent := true
			for _, path := range args {
				present := backend.Exists(path)
				allPresent = allPresent && present
				fmt.Fprintf(a.stdout, "%s\t%t\n", path, present)
			}
			if !allPresent {
				return negative()
			}
			return nil
		},
	}
}

// listEntry is one line of ls output.
type listEntry struct {
	Path     string `json:"path"`
	Embedded bool   `json:"embedded"`
}

func lsCommand(a *app) *command {
	var outputJSON bool
	return &command{
		name:    "ls",
		summary: "List entries one level below a directory",
		description: `List the entries directly below DIR. In embedded mode the listing
merges embedded files with the first path segment of every manifest
entry below DIR; remote-only entries are dimmed on a terminal.

The embedded root itself ("../data/system" with no trailing slash)
lists every embedded file.`,
		usage: "assetfs ls DIR [flags]",
		examples: []example{
			{"List Seattle assets, embedded and remote", "assetfs ls --mode embedded ../data/system/seattle"},
			{"List every embedded file", "assetfs ls --mode embedded ../data/system"},
		},
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("ls")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "assetfs ls DIR"); err != nil {
				return err
			}
			backend, err := a.backend()
			if err != nil {
				return err
			}

			paths := backend.List(args[0])
			entries := make([]listEntry, len(paths))
			for i, path := range paths {
				entries[i] = listEntry{Path: path, Embedded: isEmbedded(backend, path)}
			}
			if outputJSON {
				return a.writeJSON(entries)
			}

			renderer := lipgloss.NewRenderer(a.stdout)
			remote := renderer.NewStyle().Faint(true)
			for _, entry := range entries {
				if entry.Embedded {
					fmt.Fprintln(a.stdout, entry.Path)
				} else {
					fmt.Fprintln(a.stdout, remote.Render(entry.Path))
				}
			}
			return nil
		},
	}
}

// isEmbedded reports whether path is readable locally. Every path a
// persistent backend lists is local.
func isEmbedded(backend vfs.Backend, path string) bool {
	bundle, ok := backend.(*vfs.Bundle)
	if !ok {
		return true
	}
	return bundle.IsEmbedded(path)
}

func catCommand(a *app) *command {
	var force bool
	return &command{
		name:    "cat",
		summary: "Write an asset's bytes to stdout",
		description: `Write the bytes of PATH to stdout. Binary content is not written to a
terminal unless --force is given.`,
		usage: "assetfs cat PATH [flags]",
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("cat")
			flags.BoolVar(&force, "force", false, "write binary content to a terminal")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "assetfs cat PATH"); err != nil {
				return err
			}
			backend, err := a.backend()
			if err != nil {
				return err
			}
			data, err := backend.Slurp(args[0])
			if err != nil {
				return err
			}
			if !force && a.terminal() && isBinary(data) {
				return fmt.Errorf("%s is binary; use 'assetfs inspect' or pass --force", args[0])
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

// isBinary reports whether data is unlikely to be readable text.
func isBinary(data []byte) bool {
	return !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0
}

func inspectCommand(a *app) *command {
	var outputJSON bool
	return &command{
		name:    "inspect",
		summary: "Decode a binary asset",
		description: `Decode the CBOR asset at PATH and print it in CBOR diagnostic
notation, or as JSON with --json.`,
		usage: "assetfs inspect PATH [flags]",
		examples: []example{
			{"Show the embedded city index", "assetfs inspect --mode embedded ../data/system/seattle/city.bin"},
		},
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("inspect")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "assetfs inspect PATH"); err != nil {
				return err
			}
			backend, err := a.backend()
			if err != nil {
				return err
			}

			if outputJSON {
				value, err := vfs.ReadBinary[any](backend, args[0])
				if err != nil {
					return err
				}
				return a.writeJSON(value)
			}

			data, err := backend.Slurp(args[0])
			if err != nil {
				return err
			}
			notation, err := codec.Diagnose(data)
			if err != nil {
				return &vfs.DecodeError{Path: args[0], Type: "CBOR", Err: err}
			}
			fmt.Fprintln(a.stdout, notation)
			return nil
		},
	}
}

func catalogCommand(a *app) *command {
	var outputJSON bool
	return &command{
		name:    "catalog",
		summary: "List every known asset",
		description: `List every asset the embedded bundle knows about: the embedded files
and every manifest entry, one per line with its size and where it
lives.`,
		usage: "assetfs catalog [flags]",
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("catalog")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 0, 0, "assetfs catalog"); err != nil {
				return err
			}
			bundle, err := a.embeddedBundle()
			if err != nil {
				return err
			}

			paths := bundle.Catalog()
			if outputJSON {
				return a.writeJSON(paths)
			}

			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			for _, path := range paths {
				location := "remote"
				if bundle.IsEmbedded(path) {
					location = "embedded"
				}
				size := "-"
				if entry, ok := bundle.Remote(path); ok {
					size = fmt.Sprint(entry.SizeBytes)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", location, size, path)
			}
			return tw.Flush()
		},
	}
}
