// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newLogger creates the diagnostic logger. With format "auto", a
// terminal gets slog.TextHandler and anything else (CI, scripts, log
// collectors) gets slog.JSONHandler.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	useText := format == "text" || (format == "auto" && isTerminal(w))
	if useText {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
