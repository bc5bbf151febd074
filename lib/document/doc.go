// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document defines the in-memory tree that the keydoc codec
// encodes and decodes.
//
// A document is a tree of [Node] values. There are exactly five node
// kinds, mirroring the JSON data model without numbers:
//
//   - [String] -- a UTF-8 string
//   - [Bool] -- true or false
//   - [Null] -- the null value (a nil Node is treated the same way)
//   - [Array] -- an ordered sequence of nodes
//   - [*Object] -- an ordered mapping from unique string keys to nodes
//
// Object preserves insertion order. Order is not semantically
// meaningful to readers, but the codec relies on it for deterministic
// output: the same tree always encodes to the same bytes. [Equal]
// compares trees structurally, including member order.
//
// Numbers have no dedicated kind. Converters in lib/convert carry them
// as [String] nodes holding the number's literal text.
//
// This package has no dependencies on other keydoc packages.
package document
