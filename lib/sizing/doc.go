// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sizing measures how large a document is in keydoc compared
// with compact JSON and deterministic CBOR, each raw and after
// general-purpose compression (zstd and LZ4 block mode). It backs the
// `keydoc stats` command.
//
// Compression here is measurement only: keydoc streams are never
// stored compressed by this module.
package sizing
