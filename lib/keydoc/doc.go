// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keydoc implements a compact binary codec for JSON-like
// documents (see lib/document). Size savings come from deduplicating
// repeated object keys and string values: the first occurrence of a
// string is written as a literal, and every later occurrence becomes a
// short back-reference to it.
//
// # Wire format
//
// A stream is a single root token followed by its children, depth
// first. There is no header; the root token is at offset 0. Each token
// is one tag byte (see [Tag]) and a tag-specific payload:
//
//   - String (1): uvarint byte length, then the bytes
//   - True (2), False (3), Null (6): no payload
//   - Obj (4): uvarint member count, then count key/value pairs
//   - Array (5): uvarint element count, then count values
//   - key back-references (10-15) and value back-references (20-22):
//     a 1, 2, or 4 byte big-endian payload
//
// Obj and Array carry their child count up front instead of using an
// end marker. The encoder always holds the whole tree, so the count is
// known before the first child is written.
//
// Tag numbers are a permanent contract because encoded data is
// persisted. Existing tags never change number or payload shape;
// extensions use the reserved gaps 7-9, 16-19, and 23-255, which this
// version rejects with [ErrUnknownTag].
//
// # Back-references
//
// Encoder and decoder each keep a [SymbolTable] of the literal strings
// in the stream, keyed by the offset of the literal's tag byte and by
// ordinal. A repeated string in a key slot is written as, in order of
// preference:
//
//   - KeyStringByteIndex: literal offset 0-255
//   - KeyStringByteIndexMinus256: offset 256-511
//   - KeyStringByteIndexMinus512: offset 512-767
//   - KeyStringByteIndexFromEnd: literal at most 255 bytes behind the
//     reference's own tag byte
//   - KeyStringShortIndex: 16-bit ordinal
//   - KeyStringIntIndex: 32-bit ordinal
//
// A repeated string in a value slot uses ValueStringByteIndex (offset
// 0-255), ValueStringShortIndex, or ValueStringIntIndex. The choice is
// deterministic, so equal documents always encode to equal bytes.
//
// # Errors
//
// Failures are reported as [*Error] values carrying the stream offset
// and wrapping one of [ErrUnknownTag], [ErrTruncatedStream],
// [ErrCorruptStream], or [ErrValueTooLarge]. Every error is fatal for
// the whole call.
//
// # Concurrency
//
// [Encode] and [Decode] allocate a fresh symbol table per call and are
// safe for concurrent use. [Encoder] and [Decoder] values are reusable
// but must not be shared between goroutines.
package keydoc
