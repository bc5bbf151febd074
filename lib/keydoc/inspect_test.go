// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"errors"
	"testing"
)

func TestInspect(t *testing.T) {
	data := []byte{
		4, 2,
		1, 4, 'n', 'a', 'm', 'e',
		1, 4, 'T', 'o', 'd', 'd',
		1, 8, 'n', 'i', 'c', 'k', 'n', 'a', 'm', 'e',
		20, 8,
	}
	entries, err := Inspect(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	want := []struct {
		offset int
		size   int
		tag    Tag
		slot   Position
		depth  int
		text   string
		target int
	}{
		{0, 2, TagObj, ValuePosition, 0, "", -1},
		{2, 6, TagString, KeyPosition, 1, "name", -1},
		{8, 6, TagString, ValuePosition, 1, "Todd", -1},
		{14, 10, TagString, KeyPosition, 1, "nickname", -1},
		{24, 2, TagValueStringByteIndex, ValuePosition, 1, "Todd", 8},
	}
	if len(entries) != len(want) {
		t.Fatalf("Inspect returned %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for index, expected := range want {
		got := entries[index]
		if got.Offset != expected.offset || got.Size != expected.size || got.Token.Tag != expected.tag ||
			got.Slot != expected.slot || got.Depth != expected.depth || got.Text != expected.text ||
			got.Target != expected.target {
			t.Errorf("entry %d = {offset %d size %d %s %s depth %d %q target %d}, want %+v",
				index, got.Offset, got.Size, got.Token.Tag, got.Slot, got.Depth, got.Text, got.Target, expected)
		}
	}
}

func TestInspectSizesCoverStream(t *testing.T) {
	data, err := Encode(object(
		member("list", nest(3)),
		member("list2", object(member("list", nil))),
	))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	entries, err := Inspect(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	next := 0
	for _, entry := range entries {
		if entry.Offset != next {
			t.Fatalf("entry at offset %d, want %d", entry.Offset, next)
		}
		next += entry.Size
	}
	if next != len(data) {
		t.Errorf("entries cover %d bytes, stream has %d", next, len(data))
	}
}

func TestInspectPartialOnFailure(t *testing.T) {
	entries, err := Inspect([]byte{5, 2, 6, 0}, DecodeOptions{})
	if !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("Inspect error = %v, want ErrUnknownTag", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Inspect returned %d entries, want the 2 decoded before the failure", len(entries))
	}
	if entries[0].Token.Tag != TagArray || entries[1].Token.Tag != TagNull {
		t.Errorf("entries = %+v", entries)
	}
}
