// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Assetfs inspects and builds the asset catalog: the files compiled
// into the binary and the manifest of remotely published assets.
//
// Usage:
//
//	assetfs [global flags] <command> [arguments]
//
// Commands:
//
//	exists PATH...     report whether assets are known
//	ls DIR             list entries one level below DIR
//	cat PATH           write an asset's bytes to stdout
//	inspect PATH       decode a CBOR asset
//	find PATTERN       fuzzy-search the catalog
//	catalog            list every known asset
//	verify [PATH...]   check embedded assets against the manifest
//	manifest build     index a directory tree into a manifest
//	manifest summary   summarize the manifest by directory
//	manifest diff      compare two manifests
//	encode             encode a JSON asset as CBOR
//	version            print version information
//
// Exit status is 0 on success, 1 for a negative answer (an unknown
// asset, a failed verification, differing manifests, no matches), and
// 2 for errors.
package main
