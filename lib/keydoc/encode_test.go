// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keydoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/keydoc/lib/document"
	"github.com/bureau-foundation/keydoc/lib/testutil"
)

func object(members ...document.Member) *document.Object {
	return document.NewObject(members...)
}

func member(key string, value document.Node) document.Member {
	return document.Member{Key: key, Value: value}
}

func TestEncodeExactBytes(t *testing.T) {
	tests := []struct {
		name string
		node document.Node
		want []byte
	}{
		{"null", document.Null{}, []byte{6}},
		{"nil node is null", nil, []byte{6}},
		{"false", document.Bool(false), []byte{3}},
		{"string", document.String("hi"), []byte{1, 2, 'h', 'i'}},
		{"empty object", object(), []byte{4, 0}},
		{"empty array", document.Array{}, []byte{5, 0}},
		{
			"repeated value uses value byte index",
			object(
				member("name", document.String("Todd")),
				member("nickname", document.String("Todd")),
			),
			[]byte{
				4, 2,
				1, 4, 'n', 'a', 'm', 'e',
				1, 4, 'T', 'o', 'd', 'd',
				1, 8, 'n', 'i', 'c', 'k', 'n', 'a', 'm', 'e',
				20, 8,
			},
		},
		{
			"key text reused as value",
			object(member("abc", document.Array{document.String("abc")})),
			[]byte{4, 1, 1, 3, 'a', 'b', 'c', 5, 1, 20, 2},
		},
		{
			"repeated key uses key byte index",
			document.Array{
				object(member("k", document.String("v"))),
				object(member("k", document.String("w"))),
			},
			[]byte{
				5, 2,
				4, 1, 1, 1, 'k', 1, 1, 'v',
				4, 1, 10, 4, 1, 1, 'w',
			},
		},
		{
			"value text reused as key",
			document.Array{
				document.String("id"),
				object(member("id", document.Bool(true))),
			},
			[]byte{5, 2, 1, 2, 'i', 'd', 4, 1, 10, 2, 2},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Encode(test.node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(got, test.want) {
				t.Errorf("Encode =\n  %v\nwant\n  %v", got, test.want)
			}
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	for _, sample := range testutil.SampleDocuments() {
		t.Run(sample.Name, func(t *testing.T) {
			first, err := Encode(sample.Document)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			second, err := Encode(sample.Document)
			if err != nil {
				t.Fatalf("second Encode: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("two encodes of the same document differ:\n  %v\n  %v", first, second)
			}
		})
	}
}

func TestEncodeMemberOrderMatters(t *testing.T) {
	forward, err := Encode(object(member("a", document.Null{}), member("b", document.Null{})))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	backward, err := Encode(object(member("b", document.Null{}), member("a", document.Null{})))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Equal(forward, backward) {
		t.Error("reordered members encoded to identical bytes")
	}
}

func TestEncoderReuse(t *testing.T) {
	encoder := NewEncoder(EncodeOptions{})
	first := object(member("shared", document.String("one")))
	second := document.Array{document.String("shared")}

	if _, err := encoder.Encode(first); err != nil {
		t.Fatalf("first Encode: %v", err)
	}
	got, err := encoder.Encode(second)
	if err != nil {
		t.Fatalf("second Encode: %v", err)
	}
	// The symbol table must not leak across calls: "shared" is a
	// literal again in the second stream.
	want := []byte{5, 1, 1, 6, 's', 'h', 'a', 'r', 'e', 'd'}
	if !bytes.Equal(got, want) {
		t.Errorf("second Encode = %v, want %v", got, want)
	}
}

func TestEncodeStats(t *testing.T) {
	encoder := NewEncoder(EncodeOptions{})
	data, err := encoder.Encode(object(
		member("name", document.String("Todd")),
		member("nickname", document.String("Todd")),
		member("active", document.Bool(true)),
	))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	stats := encoder.Stats()
	if stats.Size != len(data) {
		t.Errorf("Size = %d, want %d", stats.Size, len(data))
	}
	if stats.Literals != 4 {
		t.Errorf("Literals = %d, want 4", stats.Literals)
	}
	if stats.References != 1 {
		t.Errorf("References = %d, want 1", stats.References)
	}
	if want := len("name") + len("Todd") + len("nickname") + len("active"); stats.LiteralBytes != want {
		t.Errorf("LiteralBytes = %d, want %d", stats.LiteralBytes, want)
	}
	if stats.Tokens[TagValueStringByteIndex] != 1 || stats.Tokens[TagObj] != 1 || stats.Tokens[TagTrue] != 1 {
		t.Errorf("unexpected token counts: obj=%d true=%d valueByteIndex=%d",
			stats.Tokens[TagObj], stats.Tokens[TagTrue], stats.Tokens[TagValueStringByteIndex])
	}
	if !strings.Contains(stats.String(), "1 back-references") {
		t.Errorf("Stats.String() = %q", stats.String())
	}
}

func TestEncodeLimits(t *testing.T) {
	t.Run("string length", func(t *testing.T) {
		encoder := NewEncoder(EncodeOptions{MaxStringLength: 4})
		if _, err := encoder.Encode(document.String("four")); err != nil {
			t.Fatalf("Encode at the limit: %v", err)
		}
		_, err := encoder.Encode(object(member("fives", document.Null{})))
		if !errors.Is(err, ErrValueTooLarge) {
			t.Fatalf("Encode error = %v, want ErrValueTooLarge", err)
		}
		var positioned *Error
		if !errors.As(err, &positioned) || positioned.Offset != 2 {
			t.Errorf("error = %#v, want offset 2", err)
		}
	})

	t.Run("depth", func(t *testing.T) {
		encoder := NewEncoder(EncodeOptions{MaxDepth: 3})
		if _, err := encoder.Encode(nest(3)); err != nil {
			t.Fatalf("Encode at the limit: %v", err)
		}
		if _, err := encoder.Encode(nest(4)); !errors.Is(err, ErrValueTooLarge) {
			t.Fatalf("Encode error = %v, want ErrValueTooLarge", err)
		}
	})

	t.Run("default depth", func(t *testing.T) {
		if _, err := Encode(nest(DefaultMaxDepth)); err != nil {
			t.Fatalf("Encode at the default limit: %v", err)
		}
		if _, err := Encode(nest(DefaultMaxDepth + 1)); !errors.Is(err, ErrValueTooLarge) {
			t.Fatalf("Encode error = %v, want ErrValueTooLarge", err)
		}
	})
}

// nest returns depth arrays wrapped around a null.
func nest(depth int) document.Node {
	var node document.Node = document.Null{}
	for range depth {
		node = document.Array{node}
	}
	return node
}

func TestEncodeConcurrent(t *testing.T) {
	samples := testutil.SampleDocuments()
	want := make([][]byte, len(samples))
	for index, sample := range samples {
		data, err := Encode(sample.Document)
		if err != nil {
			t.Fatalf("Encode(%s): %v", sample.Name, err)
		}
		want[index] = data
	}

	const workers = 8
	type result struct {
		worker int
		err    error
	}
	results := make(chan result, workers)
	for worker := range workers {
		go func() {
			for round := range 20 {
				for index, sample := range samples {
					got, err := Encode(sample.Document)
					if err != nil {
						results <- result{worker, err}
						return
					}
					if !bytes.Equal(got, want[index]) {
						results <- result{worker, fmt.Errorf("%s differs in round %d", sample.Name, round)}
						return
					}
				}
			}
			results <- result{worker: worker}
		}()
	}
	for range workers {
		got := testutil.RequireReceive(t, results, 10*time.Second, "waiting for encode workers")
		if got.err != nil {
			t.Errorf("worker %d: %v", got.worker, got.err)
		}
	}
}

// padding returns filler strings that occupy exactly size bytes when
// encoded as array elements. Fillers start with label, so calls with
// different labels never produce repeats. size must be zero or at
// least 4.
func padding(t *testing.T, label byte, size int) []document.Node {
	t.Helper()
	if size != 0 && size < 4 {
		t.Fatalf("padding size %d cannot be expressed", size)
	}
	var fillers []document.Node
	for remaining := size; remaining > 0; {
		// A literal of n < 128 bytes takes n+2 bytes on the wire.
		chunk := min(remaining, 102)
		if leftover := remaining - chunk; leftover > 0 && leftover < 4 {
			chunk -= 4
		}
		index := len(fillers)
		if index >= 26 {
			t.Fatalf("padding size %d needs too many fillers", size)
		}
		prefix := string([]byte{label, 'a' + byte(index)})
		fillers = append(fillers, document.String(prefix+strings.Repeat(".", chunk-4)))
		remaining -= chunk
	}
	return fillers
}

// findReference returns the entry for the first back-reference whose
// resolved text is text.
func findReference(t *testing.T, data []byte, text string) Entry {
	t.Helper()
	entries, err := Inspect(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	for _, entry := range entries {
		if entry.Token.Tag.IsReference() && entry.Text == text {
			return entry
		}
	}
	t.Fatalf("no back-reference to %q in stream", text)
	return Entry{}
}

func TestEncodeKeyReferenceBoundaries(t *testing.T) {
	// Layout: root array header (2 bytes), padding, {"target": null},
	// gap, {"target": null}. The first key literal lands at
	// 4+before, and its object occupies 11 bytes.
	tests := []struct {
		name    string
		literal int
		gap     int
		tag     Tag
		payload uint32
	}{
		{"offset 255", 255, 0, TagKeyStringByteIndex, 255},
		{"offset 256", 256, 0, TagKeyStringByteIndexMinus256, 0},
		{"offset 511", 511, 0, TagKeyStringByteIndexMinus256, 255},
		{"offset 512", 512, 0, TagKeyStringByteIndexMinus512, 0},
		{"offset 767", 767, 0, TagKeyStringByteIndexMinus512, 255},
		{"near literal past 767", 800, 0, TagKeyStringByteIndexFromEnd, 11},
		{"255 bytes back", 800, 244, TagKeyStringByteIndexFromEnd, 255},
		{"256 bytes back", 800, 245, TagKeyStringShortIndex, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var elements document.Array
			elements = append(elements, padding(t, 'A', test.literal-4)...)
			elements = append(elements, object(member("target", document.Null{})))
			elements = append(elements, padding(t, 'B', test.gap)...)
			elements = append(elements, object(member("target", document.Null{})))

			data, err := Encode(elements)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			entry := findReference(t, data, "target")
			if entry.Target != test.literal {
				t.Fatalf("reference resolves to offset %d, want %d", entry.Target, test.literal)
			}
			if entry.Token.Tag != test.tag {
				t.Errorf("reference tag = %s, want %s", entry.Token.Tag, test.tag)
			}
			if test.tag.FixedPayloadSize() == 1 && entry.Token.Reference != test.payload {
				t.Errorf("reference payload = %d, want %d", entry.Token.Reference, test.payload)
			}
			if test.tag == TagKeyStringShortIndex {
				// Ordinal equals the number of padding literals.
				if want := uint32(len(padding(t, 'A', test.literal-4))); entry.Token.Reference != want {
					t.Errorf("short index = %d, want %d", entry.Token.Reference, want)
				}
			}
		})
	}
}

func TestEncodeValueReferenceBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		literal int
		tag     Tag
	}{
		{"offset 255", 255, TagValueStringByteIndex},
		{"offset 256", 256, TagValueStringShortIndex},
		{"offset 300", 300, TagValueStringShortIndex},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var elements document.Array
			elements = append(elements, padding(t, 'A', test.literal-2)...)
			elements = append(elements, document.String("target"), document.String("target"))

			data, err := Encode(elements)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			entry := findReference(t, data, "target")
			if entry.Target != test.literal {
				t.Fatalf("reference resolves to offset %d, want %d", entry.Target, test.literal)
			}
			if entry.Token.Tag != test.tag {
				t.Errorf("reference tag = %s, want %s", entry.Token.Tag, test.tag)
			}
		})
	}
}

func TestEncodeIntIndexReferences(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a stream with more than 65536 literals")
	}
	var elements document.Array
	for _, filler := range testutil.UniqueStrings("literal", 65536) {
		elements = append(elements, document.String(filler))
	}
	// The long literal pushes the key reference out of from-end range.
	elements = append(elements,
		document.String("target"),
		document.String(strings.Repeat("z", 300)),
		object(member("target", document.Null{})),
		document.String("target"),
	)

	data, err := Encode(elements)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	entries, err := Inspect(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	var tags []Tag
	for _, entry := range entries {
		if entry.Token.Tag.IsReference() {
			tags = append(tags, entry.Token.Tag)
			if entry.Token.Reference != 65536 {
				t.Errorf("%s payload = %d, want 65536", entry.Token.Tag, entry.Token.Reference)
			}
		}
	}
	want := []Tag{TagKeyStringIntIndex, TagValueStringIntIndex}
	if len(tags) != len(want) || tags[0] != want[0] || tags[1] != want[1] {
		t.Errorf("reference tags = %v, want %v", tags, want)
	}
}
