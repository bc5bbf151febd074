// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"errors"
	"strconv"
	"testing"
)

func TestBestReferenceMiss(t *testing.T) {
	table := NewSymbolTable()
	table.Record(0, "present")
	if _, ok := table.BestReference("absent", 10, KeyPosition); ok {
		t.Error("BestReference found a string that was never recorded")
	}
}

func TestBestReferenceChoice(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		ordinal  int
		position int
		slot     Position
		want     Reference
	}{
		{"key offset zero", 0, 0, 50, KeyPosition, Reference{TagKeyStringByteIndex, 0}},
		{"key offset 255", 255, 0, 300, KeyPosition, Reference{TagKeyStringByteIndex, 255}},
		{"key offset 256 uses minus 256", 256, 0, 300, KeyPosition, Reference{TagKeyStringByteIndexMinus256, 0}},
		{"key offset 511", 511, 0, 600, KeyPosition, Reference{TagKeyStringByteIndexMinus256, 255}},
		{"key offset 512 uses minus 512", 512, 0, 520, KeyPosition, Reference{TagKeyStringByteIndexMinus512, 0}},
		{"key offset 767", 767, 0, 900, KeyPosition, Reference{TagKeyStringByteIndexMinus512, 255}},
		{"key near reference uses from-end", 800, 3, 810, KeyPosition, Reference{TagKeyStringByteIndexFromEnd, 10}},
		{"key exactly 255 back", 1000, 3, 1255, KeyPosition, Reference{TagKeyStringByteIndexFromEnd, 255}},
		{"key 256 back uses short index", 1000, 3, 1256, KeyPosition, Reference{TagKeyStringShortIndex, 3}},
		{"key large ordinal uses int index", 5000000, 70000, 6000000, KeyPosition, Reference{TagKeyStringIntIndex, 70000}},
		{"value offset 255", 255, 0, 400, ValuePosition, Reference{TagValueStringByteIndex, 255}},
		{"value offset 256 uses short index", 256, 4, 260, ValuePosition, Reference{TagValueStringShortIndex, 4}},
		{"value large ordinal uses int index", 5000000, 65536, 6000000, ValuePosition, Reference{TagValueStringIntIndex, 65536}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			table := NewSymbolTable()
			// Pad the table so the target lands at the wanted ordinal.
			// Filler offsets sit just below the target's.
			for index := range test.ordinal {
				table.Record(test.offset-test.ordinal+index, "filler-"+strconv.Itoa(index))
			}
			table.Record(test.offset, "target")

			got, ok := table.BestReference("target", test.position, test.slot)
			if !ok {
				t.Fatal("BestReference missed a recorded string")
			}
			if got != test.want {
				t.Errorf("BestReference = {%s %d}, want {%s %d}", got.Tag, got.Payload, test.want.Tag, test.want.Payload)
			}
		})
	}
}

func TestBestReferencePrefersFirstLiteral(t *testing.T) {
	// A decoder may record the same text twice when a foreign writer
	// emitted duplicate literals; references point at the first.
	table := NewSymbolTable()
	table.Record(3, "dup")
	table.Record(40, "dup")
	got, _ := table.BestReference("dup", 60, ValuePosition)
	if got != (Reference{TagValueStringByteIndex, 3}) {
		t.Errorf("BestReference = %+v, want first literal at offset 3", got)
	}
}

func TestResolve(t *testing.T) {
	table := NewSymbolTable()
	table.Record(2, "a")
	table.Record(300, "b")
	table.Record(600, "c")
	table.Record(1000, "d")

	tests := []struct {
		name     string
		token    Token
		position int
		want     string
	}{
		{"absolute", Token{Tag: TagKeyStringByteIndex, Reference: 2}, 10, "a"},
		{"value absolute", Token{Tag: TagValueStringByteIndex, Reference: 2}, 10, "a"},
		{"minus 256", Token{Tag: TagKeyStringByteIndexMinus256, Reference: 44}, 400, "b"},
		{"minus 512", Token{Tag: TagKeyStringByteIndexMinus512, Reference: 88}, 700, "c"},
		{"from end", Token{Tag: TagKeyStringByteIndexFromEnd, Reference: 20}, 1020, "d"},
		{"short index", Token{Tag: TagKeyStringShortIndex, Reference: 3}, 2000, "d"},
		{"int index", Token{Tag: TagValueStringIntIndex, Reference: 1}, 2000, "b"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			symbol, err := table.Resolve(test.token, test.position)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if symbol.Value != test.want {
				t.Errorf("Resolve = %q, want %q", symbol.Value, test.want)
			}
		})
	}
}

func TestResolveDangling(t *testing.T) {
	table := NewSymbolTable()
	table.Record(2, "a")

	tests := []struct {
		name     string
		token    Token
		position int
	}{
		{"offset without literal", Token{Tag: TagKeyStringByteIndex, Reference: 3}, 10},
		{"index out of range", Token{Tag: TagKeyStringShortIndex, Reference: 1}, 10},
		{"from-end distance zero", Token{Tag: TagKeyStringByteIndexFromEnd, Reference: 0}, 10},
		{"from-end before stream start", Token{Tag: TagKeyStringByteIndexFromEnd, Reference: 11}, 10},
		{"not a reference", Token{Tag: TagNull}, 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := table.Resolve(test.token, test.position)
			if !errors.Is(err, ErrCorruptStream) {
				t.Errorf("Resolve error = %v, want ErrCorruptStream", err)
			}
		})
	}
}

func TestSymbolTableReset(t *testing.T) {
	table := NewSymbolTable()
	table.Record(0, "gone")
	table.Reset()
	if table.Len() != 0 {
		t.Errorf("Len() after Reset = %d", table.Len())
	}
	if _, ok := table.BestReference("gone", 10, ValuePosition); ok {
		t.Error("BestReference found a string recorded before Reset")
	}
	if _, err := table.ResolveOffset(0); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("ResolveOffset after Reset error = %v", err)
	}
}
