// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"errors"
	"fmt"
)

// Every encode or decode failure wraps exactly one of these sentinels.
// Match them with errors.Is. All of them are fatal for the call that
// produced them: a malformed stream has no resynchronization point, so
// the whole document must be discarded.
var (
	// ErrUnknownTag: a tag byte this codec version does not recognize,
	// including TagUnused (0) and the reserved gaps.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrTruncatedStream: fewer bytes remain than a token requires.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrCorruptStream: a structurally invalid stream. Dangling
	// back-references, tags in the wrong slot, duplicate object keys,
	// malformed varints, and trailing bytes after the root.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrValueTooLarge: a string, container, or nesting depth exceeds
	// what the wire format or the configured limits allow.
	ErrValueTooLarge = errors.New("value too large")
)

// Error describes a failure at a specific byte offset of an encoded
// stream. Unwrap exposes the underlying cause, which in turn wraps one
// of the package sentinels.
type Error struct {
	// Op is "encode" or "decode".
	Op string

	// Offset is the byte offset of the token being written or read.
	Offset int

	// Tag is the tag of the token at Offset. For unknown-tag errors
	// this is the offending byte.
	Tag Tag

	// Err is the cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("keydoc: %s %s at offset %d: %v", e.Op, e.Tag, e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// failure builds an *Error whose cause wraps sentinel with a formatted
// detail message.
func failure(op string, offset int, tag Tag, sentinel error, format string, args ...any) *Error {
	return &Error{
		Op:     op,
		Offset: offset,
		Tag:    tag,
		Err:    fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
