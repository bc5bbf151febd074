// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 content digests of documents and
// keydoc streams.
//
// Two domains are kept apart with BLAKE3 keyed hashing:
//
//   - [HashDocument] hashes the canonical keydoc encoding of a
//     document, so the same logical document has the same digest
//     whether it arrived as JSON, YAML, CBOR, or keydoc
//   - [HashStream] and [HashFile] hash raw bytes as stored
//
// A document digest never equals a stream digest of the same bytes.
// [FormatDigest] and [ParseDigest] convert to and from the 64-character
// hex form used in CLI output and logs.
package binhash
