// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/assetfs/lib/manifest"
)

func manifestCommand(a *app) *command {
	return &command{
		name:    "manifest",
		summary: "Build and examine asset manifests",
		subcommands: []*command{
			manifestBuildCommand(a),
			manifestSummaryCommand(a),
			manifestDiffCommand(a),
		},
	}
}

func manifestBuildCommand(a *app) *command {
	var options struct {
		prefix          string
		out             string
		compressedSizes bool
		includeHidden   bool
	}
	return &command{
		name:    "build",
		summary: "Index a directory tree into a manifest",
		description: `Walk DIR, hash every file, and write a manifest keyed by PREFIX joined
with each file's path below DIR. The output is compressed when --out
ends in .zst or .lz4.`,
		usage: "assetfs manifest build DIR --out FILE [flags]",
		examples: []example{
			{"Index the data repository", "assetfs manifest build data --prefix data --out lib/bundle/MANIFEST.json"},
		},
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("build")
			flags.StringVar(&options.prefix, "prefix", "", "key prefix for every entry (e.g. data)")
			flags.StringVarP(&options.out, "out", "o", "", "output file (required)")
			flags.BoolVar(&options.compressedSizes, "compressed-sizes", false, "record each file's zstd-compressed size")
			flags.BoolVar(&options.includeHidden, "include-hidden", false, "index files and directories starting with '.'")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "assetfs manifest build DIR --out FILE"); err != nil {
				return err
			}
			if options.out == "" {
				return usageErrorf("--out is required")
			}

			built, err := manifest.Build(os.DirFS(args[0]), manifest.BuildOptions{
				Prefix:          options.prefix,
				CompressedSizes: options.compressedSizes,
				IncludeHidden:   options.includeHidden,
			})
			if err != nil {
				return err
			}
			data, err := manifest.Marshal(built, options.out)
			if err != nil {
				return err
			}
			if err := os.WriteFile(options.out, data, 0o644); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}

			summary := built.Summarize()
			fmt.Fprintf(a.stderr, "wrote %s: %d entries, %s of assets, %s on disk\n",
				options.out, summary.Count, humanize.IBytes(uint64(summary.TotalBytes)), humanize.IBytes(uint64(len(data))))
			return nil
		},
	}
}

// directorySummary aggregates entries under one top-level directory.
type directorySummary struct {
	Directory       string `json:"directory"`
	Count           int    `json:"count"`
	TotalBytes      int64  `json:"total_bytes"`
	CompressedBytes int64  `json:"compressed_bytes,omitempty"`
}

// summarizeByDirectory groups entries by the first depth segments of
// their keys, sorted by directory.
func summarizeByDirectory(loaded *manifest.Manifest, depth int) []directorySummary {
	groups := make(map[string]*directorySummary)
	for _, key := range loaded.Keys() {
		directory := path.Dir(key)
		for segments := countSegments(directory); segments > depth; segments-- {
			directory = path.Dir(directory)
		}
		group, ok := groups[directory]
		if !ok {
			group = &directorySummary{Directory: directory}
			groups[directory] = group
		}
		entry, _ := loaded.Lookup(key)
		group.Count++
		group.TotalBytes += entry.SizeBytes
		group.CompressedBytes += entry.CompressedSizeBytes
	}

	summaries := make([]directorySummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, *group)
	}
	slices.SortFunc(summaries, func(x, y directorySummary) int {
		switch {
		case x.Directory < y.Directory:
			return -1
		case x.Directory > y.Directory:
			return 1
		}
		return 0
	})
	return summaries
}

func countSegments(directory string) int {
	if directory == "." {
		return 0
	}
	count := 1
	for _, r := range directory {
		if r == '/' {
			count++
		}
	}
	return count
}

func manifestSummaryCommand(a *app) *command {
	var (
		depth      int
		outputJSON bool
	)
	return &command{
		name:    "summary",
		summary: "Summarize the manifest by directory",
		description: `Print entry counts and sizes for the manifest (the embedded one
unless --manifest or manifest.path names another), grouped by
directory.`,
		usage: "assetfs manifest summary [flags]",
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("summary")
			flags.IntVar(&depth, "depth", 3, "directory depth to group by")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 0, 0, "assetfs manifest summary"); err != nil {
				return err
			}
			if depth < 1 {
				return usageErrorf("--depth must be at least 1")
			}
			index, err := a.manifestIndex()
			if err != nil {
				return err
			}
			loaded, err := index.Load()
			if err != nil {
				return err
			}

			groups := summarizeByDirectory(loaded, depth)
			if outputJSON {
				return a.writeJSON(groups)
			}

			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "ENTRIES\tSIZE\tCOMPRESSED\tDIRECTORY\t\n")
			for _, group := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", group.Count, humanize.IBytes(uint64(group.TotalBytes)),
					compressedLabel(group.CompressedBytes), group.Directory)
			}
			total := loaded.Summarize()
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", total.Count, humanize.IBytes(uint64(total.TotalBytes)),
				compressedLabel(total.CompressedBytes), "total")
			return tw.Flush()
		},
	}
}

func compressedLabel(bytes int64) string {
	if bytes == 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bytes))
}

func manifestDiffCommand(a *app) *command {
	var outputJSON bool
	return &command{
		name:    "diff",
		summary: "Compare two manifests",
		description: `Print the assets added (+), removed (-), and changed (~) between OLD
and NEW. Exits 1 when the manifests differ.`,
		usage: "assetfs manifest diff OLD NEW [flags]",
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("diff")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 2, 2, "assetfs manifest diff OLD NEW"); err != nil {
				return err
			}
			old, err := manifest.FileLoader(args[0])()
			if err != nil {
				return err
			}
			current, err := manifest.FileLoader(args[1])()
			if err != nil {
				return err
			}

			diff := manifest.Compare(old, current)
			if outputJSON {
				if err := a.writeJSON(diff); err != nil {
					return err
				}
			} else {
				for _, key := range diff.Added {
					fmt.Fprintf(a.stdout, "+ %s\n", key)
				}
				for _, key := range diff.Removed {
					fmt.Fprintf(a.stdout, "- %s\n", key)
				}
				for _, key := range diff.Changed {
					fmt.Fprintf(a.stdout, "~ %s\n", key)
				}
			}
			if !diff.Empty() {
				return negative()
			}
			return nil
		},
	}
}
