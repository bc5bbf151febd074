// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// documentOptions teach go-cmp to compare document trees: objects are
// compared by their ordered member lists, and nil and empty arrays
// are equal.
var documentOptions = cmp.Options{
	cmp.Transformer("members", func(object *document.Object) []document.Member {
		return object.Members()
	}),
	cmpopts.EquateEmpty(),
}

// DocumentDiff returns a human-readable diff between want and got, or
// "" when they are structurally equal (member order included).
//
//	if diff := testutil.DocumentDiff(want, got); diff != "" {
//	    t.Errorf("decoded document mismatch (-want +got):\n%s", diff)
//	}
func DocumentDiff(want, got document.Node) string {
	return cmp.Diff(want, got, documentOptions)
}

// NamedDocument pairs a fixture with a name for subtests.
type NamedDocument struct {
	Name     string
	Document document.Node
}

// SampleDocuments returns a fresh copy of the shared fixture corpus.
// Every call builds new trees, so callers may mutate the result.
func SampleDocuments() []NamedDocument {
	return []NamedDocument{
		{Name: "null root", Document: document.Null{}},
		{Name: "true root", Document: document.Bool(true)},
		{Name: "string root", Document: document.String("hello")},
		{Name: "empty string", Document: document.String("")},
		{Name: "empty object", Document: document.NewObject()},
		{Name: "empty array", Document: document.Array{}},
		{
			Name: "profile",
			Document: document.NewObject(
				document.Member{Key: "name", Value: document.String("Todd")},
				document.Member{Key: "nickname", Value: document.String("Todd")},
				document.Member{Key: "active", Value: document.Bool(true)},
				document.Member{Key: "banned", Value: document.Bool(false)},
				document.Member{Key: "guild", Value: document.Null{}},
			),
		},
		{
			Name: "repeated keys across records",
			Document: document.Array{
				record("spin", "1.50", "win"),
				record("spin", "0.50", "lose"),
				record("bonus", "12.00", "win"),
				record("spin", "1.50", "win"),
			},
		},
		{
			Name: "key reused as value",
			Document: document.NewObject(
				document.Member{Key: "abc", Value: document.String("x")},
				document.Member{Key: "list", Value: document.Array{document.String("abc"), document.String("x")}},
			),
		},
		{
			Name: "nested containers",
			Document: document.NewObject(
				document.Member{Key: "lobby", Value: document.NewObject(
					document.Member{Key: "machines", Value: document.Array{
						document.NewObject(document.Member{Key: "id", Value: document.String("pharaoh")}),
						document.NewObject(document.Member{Key: "id", Value: document.String("viking")}),
						document.Array{document.Array{document.Null{}}},
					}},
				)},
			),
		},
		{
			Name: "unicode",
			Document: document.NewObject(
				document.Member{Key: "grüße", Value: document.String("こんにちは")},
				document.Member{Key: "emoji", Value: document.String("🎰🍒")},
				document.Member{Key: "copy", Value: document.String("こんにちは")},
			),
		},
	}
}

func record(kind, bet, outcome string) *document.Object {
	return document.NewObject(
		document.Member{Key: "kind", Value: document.String(kind)},
		document.Member{Key: "bet", Value: document.String(bet)},
		document.Member{Key: "outcome", Value: document.String(outcome)},
	)
}
