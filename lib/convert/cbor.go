// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"

	"github.com/bureau-foundation/keydoc/lib/codec"
	"github.com/bureau-foundation/keydoc/lib/document"
)

// FromCBOR decodes a single CBOR data item. Map keys must be text
// strings. CBOR decoding goes through Go maps, so members come out in
// lexical key order as [FromAny] sorts them, not in wire order.
func FromCBOR(data []byte) (document.Node, error) {
	var value any
	if err := codec.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing CBOR: %w", err)
	}
	return FromAny(value)
}

// ToCBOR encodes node as deterministic CBOR. Object members come out
// sorted by encoded key bytes (shorter keys first), not in document
// order.
func ToCBOR(node document.Node) ([]byte, error) {
	data, err := codec.Marshal(ToAny(node))
	if err != nil {
		return nil, fmt.Errorf("rendering CBOR: %w", err)
	}
	return data, nil
}
