// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/assetfs/lib/vfs"
)

// decodeJSONC parses JSON with comments and trailing commas. Integral
// numbers decode as int64 and the rest as float64, so the CBOR
// encoding uses the smallest integer form.
func decodeJSONC(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level value")
	}
	return convertNumbers(value), nil
}

func convertNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		float, err := typed.Float64()
		if err != nil {
			return typed.String()
		}
		return float
	case map[string]any:
		for key, element := range typed {
			typed[key] = convertNumbers(element)
		}
		return typed
	case []any:
		for i, element := range typed {
			typed[i] = convertNumbers(element)
		}
		return typed
	default:
		return value
	}
}

func encodeCommand(a *app) *command {
	var in, out string
	return &command{
		name:    "encode",
		summary: "Encode a JSON asset as CBOR",
		description: `Read a JSON document (comments and trailing commas allowed) and write
it with the asset codec, the same encoding ReadBinary decodes. Map
keys are written in deterministic order, so identical input always
produces identical bytes.`,
		usage: "assetfs encode --in FILE.jsonc --out FILE.bin",
		examples: []example{
			{"Encode a map summary", "assetfs encode --in montlake.jsonc --out data/system/seattle/maps/montlake.bin"},
		},
		flags: func() *pflag.FlagSet {
			flags := a.flagSet("encode")
			flags.StringVarP(&in, "in", "i", "", "JSON input file (required)")
			flags.StringVarP(&out, "out", "o", "", "CBOR output file (required)")
			return flags
		},
		run: func(args []string) error {
			if err := requireArgs(args, 0, 0, "assetfs encode --in FILE --out FILE"); err != nil {
				return err
			}
			if in == "" || out == "" {
				return usageErrorf("--in and --out are required")
			}

			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			value, err := decodeJSONC(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", in, err)
			}
			return vfs.NewDisk(vfs.DiskOptions{}).WriteBinary(out, value)
		},
	}
}
