// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

// Entry describes one token of a decoded stream, as reported by
// [Inspect].
type Entry struct {
	// Offset is the position of the token's tag byte.
	Offset int

	// Size is the token's total length, tag byte included.
	Size int

	// Token is the decoded token.
	Token Token

	// Slot is KeyPosition for object keys and ValuePosition for
	// everything else.
	Slot Position

	// Depth is the number of containers enclosing the token.
	Depth int

	// Text is the string the token stands for: the literal text of a
	// String token or the resolved text of a back-reference. Empty
	// for non-string tokens.
	Text string

	// Target is the offset of the literal a back-reference resolved
	// to, or -1.
	Target int
}

// Inspect decodes data and returns one entry per token in stream
// order. Decoding uses the same rules and options as [Decoder.Decode].
// On failure Inspect returns the entries decoded before the error
// along with the error, so tooling can show where a stream went bad.
func Inspect(data []byte, options DecodeOptions) ([]Entry, error) {
	var entries []Entry
	decoder := NewDecoder(options)
	decoder.trace = func(entry Entry) {
		entries = append(entries, entry)
	}
	_, err := decoder.Decode(data)
	return entries, err
}
