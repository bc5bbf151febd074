// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert translates documents to and from text and binary
// interchange formats: JSON, JSONC (JSON with comments and trailing
// commas), YAML, CBOR, and plain Go values.
//
// The document model has strings, booleans, null, objects, and arrays
// but no numbers. Numbers read from JSON, YAML, or CBOR become strings
// holding their source text (JSON, YAML) or their shortest decimal
// form (CBOR), and are written back out as strings.
//
// JSON and YAML keep object member order in both directions. CBOR and
// Go maps do not: FromCBOR and FromAny sort keys lexically, and ToCBOR
// uses deterministic encoding, which orders them by encoded key bytes
// (shorter keys first).
package convert
