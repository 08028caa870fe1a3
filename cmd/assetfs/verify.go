// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

func verifyCommand(a *app) *command {
	return &command{
		name:    "verify",
		summary: "Check embedded assets against the manifest",
		description: `Check the embedded bytes of each PATH (every embedded file when no
PATH is given) against the size and checksum recorded in the manifest.
Exits 1 if any asset is missing, unindexed, or does not match.`,
		usage: "assetfs verify [PATH...] [flags]",
		examples: []example{
			{"Verify the whole embedded catalog", "assetfs verify"},
			{"Verify against a freshly built manifest", "assetfs verify --manifest build/MANIFEST.json.zst"},
		},
		flags: func() *pflag.FlagSet { return a.flagSet("verify") },
		run: func(args []string) error {
			bundle, err := a.embeddedBundle()
			if err != nil {
				return err
			}
			if err := bundle.ManifestErr(); err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = bundle.Embedded()
			}

			failures := 0
			for _, path := range paths {
				if err := bundle.Verify(path); err != nil {
					failures++
					fmt.Fprintf(a.stdout, "FAIL  %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(a.stdout, "ok    %s\n", path)
			}
			if failures > 0 {
				fmt.Fprintf(a.stderr, "%d of %d assets failed verification\n", failures, len(paths))
				return negative()
			}
			return nil
		},
	}
}
