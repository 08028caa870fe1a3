// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
// Commands that print their own output return an exitError; everything
// else is printed as "error: ...".
func run(args []string, stdout, stderr io.Writer) int {
	err := rootCommand(newApp(stdout, stderr)).execute(args)
	code := exitCodeFor(err)
	if err != nil {
		if _, handled := err.(*exitError); !handled {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}
	return code
}
