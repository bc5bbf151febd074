// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxLiteralLength is the longest string the wire format can carry in
// a literal String token, and the largest Obj or Array child count.
const MaxLiteralLength = math.MaxUint32

// Token is one decoded wire token. Which payload field is meaningful
// depends on Tag:
//
//   - TagString: Text
//   - TagObj, TagArray: Count (number of members or elements)
//   - back-reference tags: Reference (offset, distance, or index as
//     written on the wire, before any base adjustment)
//   - TagTrue, TagFalse, TagNull: none
type Token struct {
	Tag       Tag
	Text      string
	Count     uint32
	Reference uint32
}

// AppendToken appends the wire encoding of token to dst and returns
// the extended slice. It fails with [ErrUnknownTag] for tags this
// codec does not assign and with [ErrValueTooLarge] when a payload
// does not fit its tag's width.
func AppendToken(dst []byte, token Token) ([]byte, error) {
	if !token.Tag.Known() {
		return dst, fmt.Errorf("%w: cannot write %s", ErrUnknownTag, token.Tag)
	}

	switch tagTable[token.Tag].shape {
	case payloadNone:
		return append(dst, byte(token.Tag)), nil

	case payloadText:
		if uint64(len(token.Text)) > MaxLiteralLength {
			return dst, fmt.Errorf("%w: string of %d bytes exceeds the %d byte literal limit",
				ErrValueTooLarge, len(token.Text), uint64(MaxLiteralLength))
		}
		dst = append(dst, byte(token.Tag))
		dst = binary.AppendUvarint(dst, uint64(len(token.Text)))
		return append(dst, token.Text...), nil

	case payloadCount:
		dst = append(dst, byte(token.Tag))
		return binary.AppendUvarint(dst, uint64(token.Count)), nil

	case payloadUint8:
		if token.Reference > math.MaxUint8 {
			return dst, fmt.Errorf("%w: %s payload %d does not fit in one byte",
				ErrValueTooLarge, token.Tag, token.Reference)
		}
		return append(dst, byte(token.Tag), byte(token.Reference)), nil

	case payloadUint16:
		if token.Reference > math.MaxUint16 {
			return dst, fmt.Errorf("%w: %s payload %d does not fit in two bytes",
				ErrValueTooLarge, token.Tag, token.Reference)
		}
		dst = append(dst, byte(token.Tag))
		return binary.BigEndian.AppendUint16(dst, uint16(token.Reference)), nil

	case payloadUint32:
		dst = append(dst, byte(token.Tag))
		return binary.BigEndian.AppendUint32(dst, token.Reference), nil
	}

	return dst, fmt.Errorf("%w: %s has no payload encoding", ErrUnknownTag, token.Tag)
}

// ReadToken reads the token starting at data[offset] and returns it
// together with the offset of the byte following it. Strings up to
// [MaxLiteralLength] are accepted.
func ReadToken(data []byte, offset int) (Token, int, error) {
	reader := tokenReader{data: data, position: offset, maxStringLength: MaxLiteralLength}
	token, _, err := reader.next()
	if err != nil {
		return Token{}, offset, err
	}
	return token, reader.position, nil
}

// tokenReader walks an in-memory stream one token at a time.
type tokenReader struct {
	data            []byte
	position        int
	maxStringLength uint64
}

// remaining returns the number of unread bytes.
func (reader *tokenReader) remaining() int {
	return len(reader.data) - reader.position
}

// next reads one token and returns it with the offset of its tag
// byte. On error the reader position is unspecified; the stream is
// unusable after any failure.
func (reader *tokenReader) next() (Token, int, error) {
	start := reader.position
	if reader.remaining() < 1 {
		return Token{}, start, failure("decode", start, TagUnused, ErrTruncatedStream, "expected a tag byte, stream ended")
	}

	tag := Tag(reader.data[start])
	reader.position++
	if !tag.Known() {
		return Token{}, start, failure("decode", start, tag, ErrUnknownTag, "tag byte %d is not assigned", uint8(tag))
	}

	token := Token{Tag: tag}
	switch tagTable[tag].shape {
	case payloadNone:

	case payloadText:
		length, err := reader.uvarint(start, tag)
		if err != nil {
			return Token{}, start, err
		}
		if length > reader.maxStringLength {
			return Token{}, start, failure("decode", start, tag, ErrValueTooLarge,
				"string length %d exceeds limit %d", length, reader.maxStringLength)
		}
		if length > uint64(reader.remaining()) {
			return Token{}, start, failure("decode", start, tag, ErrTruncatedStream,
				"string declares %d bytes, %d remain", length, reader.remaining())
		}
		end := reader.position + int(length)
		token.Text = string(reader.data[reader.position:end])
		reader.position = end

	case payloadCount:
		count, err := reader.uvarint(start, tag)
		if err != nil {
			return Token{}, start, err
		}
		if count > MaxLiteralLength {
			return Token{}, start, failure("decode", start, tag, ErrValueTooLarge,
				"child count %d exceeds %d", count, uint64(MaxLiteralLength))
		}
		token.Count = uint32(count)

	case payloadUint8:
		if reader.remaining() < 1 {
			return Token{}, start, failure("decode", start, tag, ErrTruncatedStream, "missing 1-byte payload")
		}
		token.Reference = uint32(reader.data[reader.position])
		reader.position++

	case payloadUint16:
		if reader.remaining() < 2 {
			return Token{}, start, failure("decode", start, tag, ErrTruncatedStream,
				"need 2 payload bytes, %d remain", reader.remaining())
		}
		token.Reference = uint32(binary.BigEndian.Uint16(reader.data[reader.position:]))
		reader.position += 2

	case payloadUint32:
		if reader.remaining() < 4 {
			return Token{}, start, failure("decode", start, tag, ErrTruncatedStream,
				"need 4 payload bytes, %d remain", reader.remaining())
		}
		token.Reference = binary.BigEndian.Uint32(reader.data[reader.position:])
		reader.position += 4
	}

	return token, start, nil
}

// uvarint reads an unsigned LEB128 value for the token starting at
// start.
func (reader *tokenReader) uvarint(start int, tag Tag) (uint64, error) {
	value, size := binary.Uvarint(reader.data[reader.position:])
	switch {
	case size == 0:
		return 0, failure("decode", start, tag, ErrTruncatedStream, "varint payload cut short")
	case size < 0:
		return 0, failure("decode", start, tag, ErrCorruptStream, "varint payload overflows 64 bits")
	}
	reader.position += size
	return value, nil
}
