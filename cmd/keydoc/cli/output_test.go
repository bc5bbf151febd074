// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorEnabled(t *testing.T) {
	var buffer bytes.Buffer
	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{"always", true, false},
		{"never", false, false},
		{"auto", false, false}, // a buffer is not a terminal
		{"", false, false},
		{"sometimes", false, true},
	}
	for _, test := range tests {
		got, err := ColorEnabled(test.mode, &buffer)
		if (err != nil) != test.wantErr || got != test.want {
			t.Errorf("ColorEnabled(%q) = (%v, %v), want (%v, error %v)",
				test.mode, got, err, test.want, test.wantErr)
		}
	}
}

func TestHighlight(t *testing.T) {
	source := `{"name": "Todd"}` + "\n"

	var plain bytes.Buffer
	if err := Highlight(&plain, source, "json", false); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if plain.String() != source {
		t.Errorf("disabled Highlight = %q, want the source unchanged", plain.String())
	}

	var colored bytes.Buffer
	if err := Highlight(&colored, source, "json", true); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("enabled Highlight = %q, want ANSI escapes", colored.String())
	}
	if !strings.Contains(colored.String(), "Todd") {
		t.Errorf("enabled Highlight dropped text: %q", colored.String())
	}
}

func TestStyles(t *testing.T) {
	var buffer bytes.Buffer
	if got := NewStyles(&buffer, false).Header("OFFSET"); got != "OFFSET" {
		t.Errorf("disabled Header = %q, want plain text", got)
	}
	if got := NewStyles(&buffer, true).Header("OFFSET"); !strings.Contains(got, "\x1b[") {
		t.Errorf("enabled Header = %q, want ANSI escapes", got)
	}
}

func TestTableAlignsColumns(t *testing.T) {
	var buffer bytes.Buffer
	table := NewTable(NewStyles(&buffer, false), "TAG", "SIZE", "TEXT")
	table.AddRow("String", "6", "name")
	table.AddRow("ValueStringByteIndex", "2")
	if err := table.Render(&buffer); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "" +
		"TAG                   SIZE  TEXT\n" +
		"String                6     name\n" +
		"ValueStringByteIndex  2\n"
	if buffer.String() != want {
		t.Errorf("Render =\n%s\nwant\n%s", buffer.String(), want)
	}
}

func TestTableIgnoresStylingWhenMeasuring(t *testing.T) {
	var plain, styled bytes.Buffer
	plainStyles := NewStyles(&plain, false)
	colorStyles := NewStyles(&styled, true)

	plainTable := NewTable(plainStyles, "A", "B")
	plainTable.AddRow(plainStyles.Literal("short"), "x")
	styledTable := NewTable(plainStyles, "A", "B")
	styledTable.AddRow(colorStyles.Literal("short"), "x")

	if err := plainTable.Render(&plain); err != nil {
		t.Fatal(err)
	}
	if err := styledTable.Render(&styled); err != nil {
		t.Fatal(err)
	}
	// Stripping the escapes from the styled rendering must give the
	// plain one: padding was computed on visible width.
	stripped := stripANSI(styled.String())
	if stripped != plain.String() {
		t.Errorf("styled table =\n%q\nplain table =\n%q", stripped, plain.String())
	}
}

func stripANSI(text string) string {
	var builder strings.Builder
	inEscape := false
	for _, r := range text {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
