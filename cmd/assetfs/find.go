// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"github.com/spf13/pflag"
)

// match is one fuzzy search hit.
type match struct {
	Path  string `json:"path"`
	Score int    `json:"score"`
}

// fuzzySchemeOnce selects fzf's path scoring scheme, which rewards
// matches right after a "/".
var fuzzySchemeOnce sync.Once

// fuzzyFind ranks paths against pattern with fzf's scoring: best
// score first, shorter paths first among equal scores, then
// lexicographically. Matching is case-insensitive. An empty pattern
// matches nothing.
func fuzzyFind(paths []string, pattern string, limit int) []match {
	needle := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	if len(needle) == 0 {
		return nil
	}

	fuzzySchemeOnce.Do(func() { algo.Init("path") })
	slab := util.MakeSlab(100*1024, 2048)
	var matches []match
	for _, path := range paths {
		chars := util.ToChars([]byte(path))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, needle, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, match{Path: path, Score: result.Score})
	}

	slices.SortFunc(matches, func(x, y match) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(len(x.Path), len(y.Path)); c != 0 {
			return c
		}
		return strings.Compare(x.Path, y.Path)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func findCommand(a *app) *command {
	var (
		limit      int
		outputJSON bool
	)
	return &command{
		name:    "find",
		summary: "Fuzzy-search the asset catalog",
		description: `Rank every known asset (embedded and remote) against PATTERN using
fzf's fuzzy matching and print the best matches.`,
		usage: "assetfs find PATTERN [flags]",
		examples: []example{
			{"Find map files for Montlake", "assetfs find mntlk"},
		},
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("find")
			flags.IntVarP(&limit, "limit", "n", 20, "maximum number of matches (0 for all)")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "assetfs find PATTERN"); err != nil {
				return err
			}
			bundle, err := a.embeddedBundle()
			if err != nil {
				return err
			}

			matches := fuzzyFind(bundle.Catalog(), args[0], limit)
			if outputJSON {
				if matches == nil {
					matches = []match{}
				}
				return a.writeJSON(matches)
			}
			if len(matches) == 0 {
				return negative()
			}
			for _, match := range matches {
				fmt.Fprintln(a.stdout, match.Path)
			}
			return nil
		},
	}
}
