// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"fmt"
	"math"
)

// Symbol is one literal string recorded in a [SymbolTable].
type Symbol struct {
	// Offset is the stream offset of the literal's String tag byte.
	Offset int

	// Value is the literal text.
	Value string
}

// SymbolTable records the literal strings of one encoded stream, in
// the order they were written or read, so later occurrences can be
// expressed as back-references. Offsets are meaningful only within a
// single stream: every encode or decode pass uses a fresh table, and a
// table must never be shared between concurrent passes.
type SymbolTable struct {
	symbols []Symbol

	// byValue maps a string to the ordinal of its first literal.
	// Used by the encoder.
	byValue map[string]int

	// byOffset maps a literal's offset to its ordinal. Used by the
	// decoder to resolve absolute and from-end references.
	byOffset map[int]int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byValue:  make(map[string]int),
		byOffset: make(map[int]int),
	}
}

// Record appends a literal written or read at offset. Offsets must be
// strictly increasing across calls; that is the caller's contract and
// is not checked.
func (table *SymbolTable) Record(offset int, value string) {
	ordinal := len(table.symbols)
	table.symbols = append(table.symbols, Symbol{Offset: offset, Value: value})
	if _, seen := table.byValue[value]; !seen {
		table.byValue[value] = ordinal
	}
	table.byOffset[offset] = ordinal
}

// Len returns the number of recorded literals.
func (table *SymbolTable) Len() int {
	return len(table.symbols)
}

// Reset empties the table for reuse by a new pass, keeping allocated
// capacity.
func (table *SymbolTable) Reset() {
	table.symbols = table.symbols[:0]
	clear(table.byValue)
	clear(table.byOffset)
}

// Reference is a back-reference chosen by [SymbolTable.BestReference]:
// the tag to write and its payload value.
type Reference struct {
	Tag     Tag
	Payload uint32
}

// Token returns the back-reference as a token ready to append.
func (reference Reference) Token() Token {
	return Token{Tag: reference.Tag, Reference: reference.Payload}
}

// BestReference looks up value among the recorded literals and, on a
// hit, returns the cheapest back-reference that a token starting at
// position can use in the given slot. It returns false when the string
// has not been written yet.
//
// The choice is deterministic. The smallest payload wins; among
// one-byte payloads, absolute offsets (plain, minus 256, minus 512)
// come before the from-end distance, and index-based references are
// used only when no one-byte form reaches the literal. Value slots have
// only the plain absolute and index forms.
func (table *SymbolTable) BestReference(value string, position int, slot Position) (Reference, bool) {
	ordinal, ok := table.byValue[value]
	if !ok {
		return Reference{}, false
	}
	offset := table.symbols[ordinal].Offset

	if slot == KeyPosition {
		switch {
		case offset <= math.MaxUint8:
			return Reference{Tag: TagKeyStringByteIndex, Payload: uint32(offset)}, true
		case offset-256 <= math.MaxUint8:
			return Reference{Tag: TagKeyStringByteIndexMinus256, Payload: uint32(offset - 256)}, true
		case offset-512 <= math.MaxUint8:
			return Reference{Tag: TagKeyStringByteIndexMinus512, Payload: uint32(offset - 512)}, true
		case position-offset <= math.MaxUint8:
			return Reference{Tag: TagKeyStringByteIndexFromEnd, Payload: uint32(position - offset)}, true
		case ordinal <= math.MaxUint16:
			return Reference{Tag: TagKeyStringShortIndex, Payload: uint32(ordinal)}, true
		case uint64(ordinal) <= math.MaxUint32:
			return Reference{Tag: TagKeyStringIntIndex, Payload: uint32(ordinal)}, true
		}
		return Reference{}, false
	}

	switch {
	case offset <= math.MaxUint8:
		return Reference{Tag: TagValueStringByteIndex, Payload: uint32(offset)}, true
	case ordinal <= math.MaxUint16:
		return Reference{Tag: TagValueStringShortIndex, Payload: uint32(ordinal)}, true
	case uint64(ordinal) <= math.MaxUint32:
		return Reference{Tag: TagValueStringIntIndex, Payload: uint32(ordinal)}, true
	}
	return Reference{}, false
}

// ResolveOffset returns the literal whose String tag starts at offset.
func (table *SymbolTable) ResolveOffset(offset int) (Symbol, error) {
	ordinal, ok := table.byOffset[offset]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: no string literal starts at offset %d", ErrCorruptStream, offset)
	}
	return table.symbols[ordinal], nil
}

// ResolveIndex returns the literal with the given ordinal.
func (table *SymbolTable) ResolveIndex(index uint32) (Symbol, error) {
	if uint64(index) >= uint64(len(table.symbols)) {
		return Symbol{}, fmt.Errorf("%w: symbol index %d out of range (%d recorded)", ErrCorruptStream, index, len(table.symbols))
	}
	return table.symbols[index], nil
}

// Resolve dispatches a back-reference token found at position to the
// matching lookup.
func (table *SymbolTable) Resolve(token Token, position int) (Symbol, error) {
	info := tagTable[token.Tag]
	switch info.addressing {
	case addressAbsolute:
		return table.ResolveOffset(info.base + int(token.Reference))
	case addressFromEnd:
		distance := int(token.Reference)
		if distance == 0 || distance > position {
			return Symbol{}, fmt.Errorf("%w: from-end distance %d invalid at offset %d", ErrCorruptStream, distance, position)
		}
		return table.ResolveOffset(position - distance)
	case addressOrdinal:
		return table.ResolveIndex(token.Reference)
	default:
		return Symbol{}, fmt.Errorf("%w: %s is not a back-reference", ErrCorruptStream, token.Tag)
	}
}
