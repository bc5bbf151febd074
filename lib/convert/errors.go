// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import "errors"

var (
	// ErrUnsupported reports an input value with no document
	// equivalent, such as a CBOR byte string or a YAML merge key.
	ErrUnsupported = errors.New("value has no document representation")

	// ErrDuplicateKey reports an input object that repeats a key.
	ErrDuplicateKey = errors.New("duplicate object key")

	// ErrTooDeep reports input nested deeper than MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
)

// MaxDepth is the deepest container nesting accepted from any input
// format. It matches keydoc.DefaultMaxDepth so that every document
// convert produces can be encoded with default options.
const MaxDepth = 512
