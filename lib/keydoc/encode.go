// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"fmt"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// DefaultMaxDepth is the nesting limit applied when an options struct
// leaves MaxDepth at zero. The root container is depth 1.
const DefaultMaxDepth = 512

// EncodeOptions bounds what an [Encoder] will write. Zero values select
// the defaults.
type EncodeOptions struct {
	// MaxStringLength is the longest string, in bytes, the encoder
	// accepts. Zero means [MaxLiteralLength]. Values above
	// MaxLiteralLength are clamped to it.
	MaxStringLength int

	// MaxDepth is the deepest container nesting the encoder accepts.
	// Zero means [DefaultMaxDepth].
	MaxDepth int
}

// Stats summarizes the tokens written by the most recent encode pass.
type Stats struct {
	// Tokens counts the tokens written per tag.
	Tokens [256]int

	// Literals is the number of literal String tokens.
	Literals int

	// References is the number of back-reference tokens.
	References int

	// LiteralBytes is the total payload length of literal strings,
	// excluding tag and length bytes.
	LiteralBytes int

	// Size is the total encoded length in bytes.
	Size int
}

// Encoder serializes documents. An Encoder may be reused for any
// number of sequential Encode calls, but is not safe for concurrent
// use; concurrent callers should each have their own Encoder or use
// the package-level [Encode].
type Encoder struct {
	maxStringLength uint64
	maxDepth        int

	buffer  []byte
	symbols *SymbolTable
	stats   Stats
}

// NewEncoder returns an encoder applying options.
func NewEncoder(options EncodeOptions) *Encoder {
	encoder := &Encoder{
		maxStringLength: MaxLiteralLength,
		maxDepth:        DefaultMaxDepth,
		symbols:         NewSymbolTable(),
	}
	if options.MaxStringLength > 0 && uint64(options.MaxStringLength) < MaxLiteralLength {
		encoder.maxStringLength = uint64(options.MaxStringLength)
	}
	if options.MaxDepth > 0 {
		encoder.maxDepth = options.MaxDepth
	}
	return encoder
}

// Encode serializes node with default options.
func Encode(node document.Node) ([]byte, error) {
	return NewEncoder(EncodeOptions{}).Encode(node)
}

// Encode serializes node and returns a newly allocated byte slice.
// Output is deterministic: the same tree, with the same member and
// element order, always produces identical bytes. Encoding fails only
// when a string or the nesting depth exceeds the configured limits
// ([ErrValueTooLarge]).
func (encoder *Encoder) Encode(node document.Node) ([]byte, error) {
	encoder.buffer = encoder.buffer[:0]
	encoder.symbols.Reset()
	encoder.stats = Stats{}

	if err := encoder.encodeValue(node, 0); err != nil {
		return nil, err
	}

	encoder.stats.Size = len(encoder.buffer)
	result := make([]byte, len(encoder.buffer))
	copy(result, encoder.buffer)
	return result, nil
}

// Stats returns counters for the most recent successful Encode.
func (encoder *Encoder) Stats() Stats {
	return encoder.stats
}

// encodeValue writes node in a value slot. depth is the number of
// containers enclosing node.
func (encoder *Encoder) encodeValue(node document.Node, depth int) error {
	switch value := node.(type) {
	case nil, document.Null:
		return encoder.emit(Token{Tag: TagNull})

	case document.Bool:
		if value {
			return encoder.emit(Token{Tag: TagTrue})
		}
		return encoder.emit(Token{Tag: TagFalse})

	case document.String:
		return encoder.encodeString(string(value), ValuePosition)

	case document.Array:
		if err := encoder.enterContainer(TagArray, len(value), depth); err != nil {
			return err
		}
		for _, element := range value {
			if err := encoder.encodeValue(element, depth+1); err != nil {
				return err
			}
		}
		return nil

	case *document.Object:
		if err := encoder.enterContainer(TagObj, value.Len(), depth); err != nil {
			return err
		}
		var err error
		value.Range(func(key string, member document.Node) bool {
			if err = encoder.encodeString(key, KeyPosition); err != nil {
				return false
			}
			err = encoder.encodeValue(member, depth+1)
			return err == nil
		})
		return err

	default:
		return failure("encode", len(encoder.buffer), TagUnused, ErrCorruptStream, "unsupported node type %T", node)
	}
}

// enterContainer checks limits and writes the Obj or Array header.
func (encoder *Encoder) enterContainer(tag Tag, count int, depth int) error {
	if depth+1 > encoder.maxDepth {
		return failure("encode", len(encoder.buffer), tag, ErrValueTooLarge,
			"nesting depth %d exceeds limit %d", depth+1, encoder.maxDepth)
	}
	if uint64(count) > MaxLiteralLength {
		return failure("encode", len(encoder.buffer), tag, ErrValueTooLarge,
			"%d children exceed the %d child limit", count, uint64(MaxLiteralLength))
	}
	return encoder.emit(Token{Tag: tag, Count: uint32(count)})
}

// encodeString writes value in the given slot, as a back-reference
// when the symbol table already holds it and as a recorded literal
// otherwise.
func (encoder *Encoder) encodeString(value string, slot Position) error {
	position := len(encoder.buffer)

	if reference, ok := encoder.symbols.BestReference(value, position, slot); ok {
		encoder.stats.References++
		return encoder.emit(reference.Token())
	}

	if uint64(len(value)) > encoder.maxStringLength {
		return failure("encode", position, TagString, ErrValueTooLarge,
			"%s string of %d bytes exceeds limit %d", slot, len(value), encoder.maxStringLength)
	}
	if err := encoder.emit(Token{Tag: TagString, Text: value}); err != nil {
		return err
	}
	encoder.symbols.Record(position, value)
	encoder.stats.Literals++
	encoder.stats.LiteralBytes += len(value)
	return nil
}

// emit appends token to the output buffer.
func (encoder *Encoder) emit(token Token) error {
	position := len(encoder.buffer)
	buffer, err := AppendToken(encoder.buffer, token)
	if err != nil {
		return &Error{Op: "encode", Offset: position, Tag: token.Tag, Err: err}
	}
	encoder.buffer = buffer
	encoder.stats.Tokens[token.Tag]++
	return nil
}

// String renders a short summary of the counters, for logs.
func (stats Stats) String() string {
	return fmt.Sprintf("%d bytes, %d literals (%d bytes), %d back-references",
		stats.Size, stats.Literals, stats.LiteralBytes, stats.References)
}
