// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"testing"
)

var findPaths = []string{
	"../data/system/seattle/city.bin",
	"../data/system/seattle/maps/montlake.bin",
	"../data/system/seattle/maps/ballard.bin",
	"../data/system/assets/tree.svg",
	"../data/input/raw_maps/seattle.osm",
}

func TestFuzzyFindSubsequence(t *testing.T) {
	matches := fuzzyFind(findPaths, "ballrd", 0)
	if len(matches) != 1 || matches[0].Path != "../data/system/seattle/maps/ballard.bin" {
		t.Errorf("matches = %+v", matches)
	}
	if matches[0].Score <= 0 {
		t.Errorf("score = %d, want positive", matches[0].Score)
	}
}

func TestFuzzyFindCaseInsensitive(t *testing.T) {
	matches := fuzzyFind(findPaths, "TREE.SVG", 0)
	if len(matches) != 1 || matches[0].Path != "../data/system/assets/tree.svg" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestFuzzyFindOrderingAndLimit(t *testing.T) {
	matches := fuzzyFind(findPaths, "seattle", 0)
	if len(matches) != 4 {
		t.Fatalf("got %d matches, want 4: %+v", len(matches), matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not ordered by score: %+v", matches)
		}
	}

	if limited := fuzzyFind(findPaths, "seattle", 2); len(limited) != 2 {
		t.Errorf("limit 2 returned %d matches", len(limited))
	}
}

func TestFuzzyFindEmptyPattern(t *testing.T) {
	if matches := fuzzyFind(findPaths, "  ", 0); matches != nil {
		t.Errorf("empty pattern matched %+v", matches)
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*command{{name: "verify"}, {name: "inspect"}, {name: "ls"}}
	tests := []struct {
		input, want string
	}{
		{"verfy", "verify"},
		{"inpsect", "inspect"},
		{"l", "ls"},
		{"completely-different", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"negative answer", negative(), exitNegative},
		{"usage", usageErrorf("usage: assetfs ls DIR"), exitFailure},
		{"runtime", errors.New("disk on fire"), exitFailure},
	}
	for _, test := range tests {
		if got := exitCodeFor(test.err); got != test.want {
			t.Errorf("%s: exitCodeFor = %d, want %d", test.name, got, test.want)
		}
	}
}
