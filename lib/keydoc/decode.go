// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"unicode/utf8"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// DecodeOptions bounds what a [Decoder] will accept. Zero values
// select the defaults. The limits exist so that a hostile stream
// cannot force unbounded allocation or recursion.
type DecodeOptions struct {
	// MaxStringLength is the longest literal string, in bytes. Zero
	// means [MaxLiteralLength].
	MaxStringLength int

	// MaxDepth is the deepest container nesting. Zero means
	// [DefaultMaxDepth].
	MaxDepth int

	// MaxContainerLength is the largest declared member or element
	// count of a single Obj or Array. Zero means no limit beyond
	// what the remaining input can hold.
	MaxContainerLength int

	// ValidateUTF8 rejects literal strings that are not valid UTF-8
	// with [ErrCorruptStream]. When false, string bytes are passed
	// through unchanged.
	ValidateUTF8 bool
}

// Decoder reconstructs documents from keydoc streams. A Decoder may be
// reused for sequential Decode calls but is not safe for concurrent
// use.
type Decoder struct {
	options DecodeOptions
	reader  tokenReader
	symbols *SymbolTable

	// trace, when set, observes every token as it is decoded.
	trace func(Entry)
}

// NewDecoder returns a decoder applying options.
func NewDecoder(options DecodeOptions) *Decoder {
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	return &Decoder{
		options: options,
		symbols: NewSymbolTable(),
	}
}

// Decode parses data with default options.
func Decode(data []byte) (document.Node, error) {
	return NewDecoder(DecodeOptions{}).Decode(data)
}

// Decode parses one complete document from data. The stream must hold
// exactly one root value: bytes left over after it are an error. Any
// failure aborts the whole decode; there is no partial result.
func (decoder *Decoder) Decode(data []byte) (document.Node, error) {
	maxStringLength := uint64(MaxLiteralLength)
	if decoder.options.MaxStringLength > 0 && uint64(decoder.options.MaxStringLength) < maxStringLength {
		maxStringLength = uint64(decoder.options.MaxStringLength)
	}
	decoder.reader = tokenReader{data: data, maxStringLength: maxStringLength}
	decoder.symbols.Reset()

	root, err := decoder.decodeValue(0)
	if err != nil {
		return nil, err
	}
	if remaining := decoder.reader.remaining(); remaining > 0 {
		position := decoder.reader.position
		return nil, failure("decode", position, Tag(data[position]), ErrCorruptStream,
			"%d trailing bytes after the root value", remaining)
	}
	return root, nil
}

// decodeValue reads one node from a value slot. depth is the number
// of containers enclosing it.
func (decoder *Decoder) decodeValue(depth int) (document.Node, error) {
	token, offset, err := decoder.reader.next()
	if err != nil {
		return nil, err
	}

	switch token.Tag {
	case TagNull:
		decoder.observe(offset, token, ValuePosition, depth, nil)
		return document.Null{}, nil

	case TagTrue:
		decoder.observe(offset, token, ValuePosition, depth, nil)
		return document.Bool(true), nil

	case TagFalse:
		decoder.observe(offset, token, ValuePosition, depth, nil)
		return document.Bool(false), nil

	case TagString:
		if err := decoder.recordLiteral(offset, token); err != nil {
			return nil, err
		}
		decoder.observe(offset, token, ValuePosition, depth, nil)
		return document.String(token.Text), nil

	case TagArray:
		if err := decoder.checkContainer(offset, token, depth, 1); err != nil {
			return nil, err
		}
		decoder.observe(offset, token, ValuePosition, depth, nil)
		array := make(document.Array, 0, token.Count)
		for range token.Count {
			element, err := decoder.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			array = append(array, element)
		}
		return array, nil

	case TagObj:
		// Each member needs at least a key byte and a value byte.
		if err := decoder.checkContainer(offset, token, depth, 2); err != nil {
			return nil, err
		}
		decoder.observe(offset, token, ValuePosition, depth, nil)
		object := &document.Object{}
		for range token.Count {
			keyOffset, key, err := decoder.decodeKey(depth + 1)
			if err != nil {
				return nil, err
			}
			if object.Has(key) {
				return nil, failure("decode", keyOffset, TagString, ErrCorruptStream, "duplicate object key %q", key)
			}
			value, err := decoder.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			object.Set(key, value)
		}
		return object, nil
	}

	if token.Tag.Position() != ValuePosition {
		return nil, failure("decode", offset, token.Tag, ErrCorruptStream, "%s is not valid in a value slot", token.Tag)
	}
	symbol, err := decoder.resolve(offset, token)
	if err != nil {
		return nil, err
	}
	decoder.observe(offset, token, ValuePosition, depth, &symbol)
	return document.String(symbol.Value), nil
}

// decodeKey reads one object key: a literal String or a key-slot
// back-reference. It returns the key's offset and text.
func (decoder *Decoder) decodeKey(depth int) (int, string, error) {
	token, offset, err := decoder.reader.next()
	if err != nil {
		return offset, "", err
	}

	if token.Tag == TagString {
		if err := decoder.recordLiteral(offset, token); err != nil {
			return offset, "", err
		}
		decoder.observe(offset, token, KeyPosition, depth, nil)
		return offset, token.Text, nil
	}

	if token.Tag.Position() != KeyPosition {
		return offset, "", failure("decode", offset, token.Tag, ErrCorruptStream, "%s is not valid in a key slot", token.Tag)
	}
	symbol, err := decoder.resolve(offset, token)
	if err != nil {
		return offset, "", err
	}
	decoder.observe(offset, token, KeyPosition, depth, &symbol)
	return offset, symbol.Value, nil
}

// recordLiteral validates a literal String token and adds it to the
// symbol table.
func (decoder *Decoder) recordLiteral(offset int, token Token) error {
	if decoder.options.ValidateUTF8 && !utf8.ValidString(token.Text) {
		return failure("decode", offset, token.Tag, ErrCorruptStream, "string literal is not valid UTF-8")
	}
	decoder.symbols.Record(offset, token.Text)
	return nil
}

// resolve looks up the literal a back-reference token points at.
func (decoder *Decoder) resolve(offset int, token Token) (Symbol, error) {
	symbol, err := decoder.symbols.Resolve(token, offset)
	if err != nil {
		return Symbol{}, &Error{Op: "decode", Offset: offset, Tag: token.Tag, Err: err}
	}
	return symbol, nil
}

// checkContainer enforces depth and length limits for an Obj or Array
// header before any child is allocated. minimumChildSize is the
// smallest number of bytes one child can occupy.
func (decoder *Decoder) checkContainer(offset int, token Token, depth int, minimumChildSize int) error {
	if depth+1 > decoder.options.MaxDepth {
		return failure("decode", offset, token.Tag, ErrValueTooLarge,
			"nesting depth %d exceeds limit %d", depth+1, decoder.options.MaxDepth)
	}
	if limit := decoder.options.MaxContainerLength; limit > 0 && uint64(token.Count) > uint64(limit) {
		return failure("decode", offset, token.Tag, ErrValueTooLarge,
			"%d children exceed limit %d", token.Count, limit)
	}
	if needed := uint64(token.Count) * uint64(minimumChildSize); needed > uint64(decoder.reader.remaining()) {
		return failure("decode", offset, token.Tag, ErrTruncatedStream,
			"%d children need at least %d bytes, %d remain", token.Count, needed, decoder.reader.remaining())
	}
	return nil
}

// observe forwards a decoded token to the trace hook, if any.
func (decoder *Decoder) observe(offset int, token Token, slot Position, depth int, target *Symbol) {
	if decoder.trace == nil {
		return
	}
	entry := Entry{
		Offset: offset,
		Size:   decoder.reader.position - offset,
		Token:  token,
		Slot:   slot,
		Depth:  depth,
		Target: -1,
	}
	if token.Tag == TagString {
		entry.Text = token.Text
	}
	if target != nil {
		entry.Text = target.Value
		entry.Target = target.Offset
	}
	decoder.trace(entry)
}
