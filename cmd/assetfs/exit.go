// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// Exit codes.
const (
	exitOK       = 0
	exitNegative = 1
	exitFailure  = 2
)

// exitError signals a non-zero exit code without printing an extra
// error message. Commands return it when a negative answer ("exists"
// on a missing asset, a failed verification) is a valid outcome and
// they have already written their own output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode returns the exit code.
func (e *exitError) ExitCode() int {
	return e.code
}

// negative is the exitError for a "no" answer.
func negative() error {
	return &exitError{code: exitNegative}
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	message string
}

func (e *usageError) Error() string { return e.message }

func usageErrorf(format string, args ...any) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}

// exitCodeFor maps a command's returned error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return exitFailure
}
