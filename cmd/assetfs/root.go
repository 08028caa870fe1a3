// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/assetfs/lib/version"
)

// rootCommand builds the command tree.
func rootCommand(a *app) *command {
	return &command{
		name: "assetfs",
		description: `assetfs inspects the asset catalog compiled into the binary and the
manifest of remotely published assets, and builds both.

Global flags (--config, --mode, --manifest, --log-level) are accepted
by every command.`,
		output: a.stderr,
		subcommands: []*command{
			existsCommand(a),
			lsCommand(a),
			catCommand(a),
			inspectCommand(a),
			findCommand(a),
			catalogCommand(a),
			verifyCommand(a),
			manifestCommand(a),
			encodeCommand(a),
			versionCommand(a),
		},
	}
}

func versionCommand(a *app) *command {
	var (
		full       bool
		outputJSON bool
	)
	return &command{
		name:    "version",
		summary: "Print version information",
		flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flags.BoolVar(&full, "full", false, "include Go version and platform")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		run: func(args []string) error {
			if outputJSON {
				return a.writeJSON(version.Current())
			}
			if full {
				fmt.Fprintln(a.stdout, version.Full())
			} else {
				fmt.Fprintln(a.stdout, version.Info())
			}
			return nil
		},
	}
}
