// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import "fmt"

// Tag is the first byte of every token. Tag values are persisted in
// encoded data: a value, once assigned, keeps its number and payload
// shape forever. New tags go into the reserved gaps (7-9, 16-19,
// 23-255); existing ones are never renumbered. Every constant below is
// an explicit literal so that reordering the block cannot change the
// wire format.
type Tag uint8

const (
	TagUnused Tag = 0
	TagString Tag = 1
	TagTrue   Tag = 2
	TagFalse  Tag = 3
	TagObj    Tag = 4
	TagArray  Tag = 5
	TagNull   Tag = 6

	TagKeyStringByteIndex         Tag = 10
	TagKeyStringByteIndexMinus256 Tag = 11
	TagKeyStringByteIndexMinus512 Tag = 12
	TagKeyStringByteIndexFromEnd  Tag = 13
	TagKeyStringShortIndex        Tag = 14
	TagKeyStringIntIndex          Tag = 15

	TagValueStringByteIndex  Tag = 20
	TagValueStringShortIndex Tag = 21
	TagValueStringIntIndex   Tag = 22
)

// Position distinguishes strings in an object key slot from strings
// in a value slot. Back-reference tags are split into disjoint key and
// value ranges so the decoder can check context without extra state.
type Position uint8

const (
	// AnyPosition applies to tags that are not position-specific
	// (the literal String tag) and to non-string tokens.
	AnyPosition Position = iota
	KeyPosition
	ValuePosition
)

// String returns "key", "value", or "any".
func (position Position) String() string {
	switch position {
	case KeyPosition:
		return "key"
	case ValuePosition:
		return "value"
	default:
		return "any"
	}
}

// payloadShape describes the bytes following a tag.
type payloadShape uint8

const (
	payloadNone payloadShape = iota
	// payloadText is a uvarint byte length followed by that many bytes.
	payloadText
	// payloadCount is a uvarint child count.
	payloadCount
	payloadUint8
	payloadUint16
	payloadUint32
)

// addressing describes how a back-reference payload identifies the
// referenced literal.
type addressing uint8

const (
	addressNone addressing = iota
	// addressAbsolute: referenced offset = payload + base.
	addressAbsolute
	// addressFromEnd: referenced offset = token offset - payload.
	addressFromEnd
	// addressOrdinal: payload is an index into the symbol table.
	addressOrdinal
)

type tagInfo struct {
	name       string
	shape      payloadShape
	position   Position
	addressing addressing
	base       int
}

// tagTable is the process-wide read-only tag vocabulary. A zero entry
// (empty name) marks an unassigned tag, including TagUnused.
var tagTable = [256]tagInfo{
	TagString: {name: "String", shape: payloadText},
	TagTrue:   {name: "True"},
	TagFalse:  {name: "False"},
	TagObj:    {name: "Obj", shape: payloadCount},
	TagArray:  {name: "Array", shape: payloadCount},
	TagNull:   {name: "Null"},

	TagKeyStringByteIndex:         {name: "KeyStringByteIndex", shape: payloadUint8, position: KeyPosition, addressing: addressAbsolute},
	TagKeyStringByteIndexMinus256: {name: "KeyStringByteIndexMinus256", shape: payloadUint8, position: KeyPosition, addressing: addressAbsolute, base: 256},
	TagKeyStringByteIndexMinus512: {name: "KeyStringByteIndexMinus512", shape: payloadUint8, position: KeyPosition, addressing: addressAbsolute, base: 512},
	TagKeyStringByteIndexFromEnd:  {name: "KeyStringByteIndexFromEnd", shape: payloadUint8, position: KeyPosition, addressing: addressFromEnd},
	TagKeyStringShortIndex:        {name: "KeyStringShortIndex", shape: payloadUint16, position: KeyPosition, addressing: addressOrdinal},
	TagKeyStringIntIndex:          {name: "KeyStringIntIndex", shape: payloadUint32, position: KeyPosition, addressing: addressOrdinal},

	TagValueStringByteIndex:  {name: "ValueStringByteIndex", shape: payloadUint8, position: ValuePosition, addressing: addressAbsolute},
	TagValueStringShortIndex: {name: "ValueStringShortIndex", shape: payloadUint16, position: ValuePosition, addressing: addressOrdinal},
	TagValueStringIntIndex:   {name: "ValueStringIntIndex", shape: payloadUint32, position: ValuePosition, addressing: addressOrdinal},
}

// Known reports whether this codec version assigns a meaning to tag.
// TagUnused and the reserved gaps are not known.
func (tag Tag) Known() bool {
	return tagTable[tag].name != ""
}

// String returns the wire name of the tag ("Obj",
// "KeyStringShortIndex", ...), "Unused" for tag 0, or "Reserved(n)"
// for unassigned values.
func (tag Tag) String() string {
	if tag == TagUnused {
		return "Unused"
	}
	if info := tagTable[tag]; info.name != "" {
		return info.name
	}
	return fmt.Sprintf("Reserved(%d)", uint8(tag))
}

// IsReference reports whether tag is one of the key or value
// back-reference tags.
func (tag Tag) IsReference() bool {
	return tagTable[tag].addressing != addressNone
}

// Position returns the slot a back-reference tag may appear in, or
// [AnyPosition] for every other tag.
func (tag Tag) Position() Position {
	return tagTable[tag].position
}

// FixedPayloadSize returns the payload width in bytes for tags with a
// fixed-size payload (back-references and the payload-free scalars).
// Tags with variable-length payloads (String, Obj, Array) and unknown
// tags return -1.
func (tag Tag) FixedPayloadSize() int {
	if !tag.Known() {
		return -1
	}
	switch tagTable[tag].shape {
	case payloadNone:
		return 0
	case payloadUint8:
		return 1
	case payloadUint16:
		return 2
	case payloadUint32:
		return 4
	default:
		return -1
	}
}

// Tags returns every known tag in ascending numeric order.
func Tags() []Tag {
	var tags []Tag
	for value := range len(tagTable) {
		if tag := Tag(value); tag.Known() {
			tags = append(tags, tag)
		}
	}
	return tags
}

// PayloadDescription returns a short human description of the payload
// that follows tag on the wire, for tooling output.
func (tag Tag) PayloadDescription() string {
	if !tag.Known() {
		return "-"
	}
	switch tagTable[tag].shape {
	case payloadText:
		return "uvarint length + UTF-8 bytes"
	case payloadCount:
		return "uvarint count"
	case payloadUint8:
		return "1 byte"
	case payloadUint16:
		return "2 bytes, big-endian"
	case payloadUint32:
		return "4 bytes, big-endian"
	default:
		return "-"
	}
}
