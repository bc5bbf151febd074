// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used wherever keydoc
// documents cross into or out of CBOR: the convert package's CBOR
// bridge and the CLI's --to cbor and --to diag output.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): map
// keys sorted by encoded key bytes (shorter keys first), smallest
// integer encoding, no indefinite-length items. The same document
// always produces identical CBOR bytes. CBOR output does not preserve
// object member order and is not alphabetical either: "zeta" comes
// before "alpha". keydoc and JSON output keep member order.
//
// The decoder rejects duplicate map keys and invalid UTF-8 text, and
// bounds nesting to match keydoc's own default depth limit, so any CBOR
// input it accepts can be represented as a document.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
