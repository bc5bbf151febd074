// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := map[string]any{
		"name":   "Todd",
		"active": true,
		"guild":  nil,
		"tags":   []any{"a", "b"},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if object["name"] != "Todd" || object["active"] != true || object["guild"] != nil {
		t.Errorf("roundtrip mismatch: %v", object)
	}
	tags, ok := object["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tags = %#v", object["tags"])
	}
}

func TestMarshalOrdersKeysByEncodedBytes(t *testing.T) {
	first, err := Marshal(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(map[string]any{"mid": 3, "zeta": 1, "alpha": 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("non-deterministic: %x vs %x", first, second)
	}

	notation, err := Diagnose(first)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	// Keys order by their encoded bytes, so the length prefix puts
	// shorter keys first: "alpha" sorts after "zeta".
	want := `{"mid": 3, "zeta": 1, "alpha": 2}`
	if notation != want {
		t.Errorf("Diagnose = %s, want %s", notation, want)
	}
}

func TestEncoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	if err := encoder.Encode([]any{"one", true}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	direct, err := Marshal([]any{"one", true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(buffer.Bytes(), direct) {
		t.Errorf("stream encoder wrote %x, Marshal wrote %x", buffer.Bytes(), direct)
	}
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"invalid CBOR", []byte{0xFF, 0xFE, 0xFD}},
		// {"a": 1, "a": 2}
		{"duplicate map key", []byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02}},
		// text string of length 1 holding 0xff
		{"invalid utf-8", []byte{0x61, 0xff}},
		{"too deep", append(bytes.Repeat([]byte{0x81}, MaxNestingDepth+1), 0xf6)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var decoded any
			if err := Unmarshal(test.data, &decoded); err == nil {
				t.Errorf("Unmarshal(%x) should fail, got %v", test.data, decoded)
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"action": "status"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if !strings.Contains(notation, `"action"`) {
		t.Errorf("notation %q does not contain \"action\"", notation)
	}
	if !strings.Contains(notation, `"status"`) {
		t.Errorf("notation %q does not contain \"status\"", notation)
	}
}

func BenchmarkMarshal(b *testing.B) {
	value := map[string]any{"kind": "spin", "bet": "1.50", "outcome": "win"}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(value)
	}
}
