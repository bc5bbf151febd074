// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"slices"
	"testing"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	object := &Object{}
	object.Set("zeta", String("z"))
	object.Set("alpha", String("a"))
	object.Set("mid", Bool(true))

	want := []string{"zeta", "alpha", "mid"}
	if got := object.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestObjectSetReplacesInPlace(t *testing.T) {
	object := NewObject(
		Member{Key: "a", Value: String("1")},
		Member{Key: "b", Value: String("2")},
	)
	object.Set("a", String("replaced"))

	if got := object.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Keys() after replace = %v, want [a b]", got)
	}
	value, ok := object.Get("a")
	if !ok {
		t.Fatal("Get(a) missing after Set")
	}
	if value != String("replaced") {
		t.Errorf("Get(a) = %v, want \"replaced\"", value)
	}
}

func TestNewObjectCollapsesDuplicateKeys(t *testing.T) {
	object := NewObject(
		Member{Key: "name", Value: String("first")},
		Member{Key: "other", Value: Null{}},
		Member{Key: "name", Value: String("second")},
	)
	if object.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", object.Len())
	}
	value, _ := object.Get("name")
	if value != String("second") {
		t.Errorf("Get(name) = %v, want \"second\"", value)
	}
}

func TestObjectDelete(t *testing.T) {
	object := NewObject(
		Member{Key: "a", Value: String("1")},
		Member{Key: "b", Value: String("2")},
		Member{Key: "c", Value: String("3")},
	)
	object.Delete("b")
	object.Delete("missing")

	if got := object.Keys(); !slices.Equal(got, []string{"a", "c"}) {
		t.Fatalf("Keys() after delete = %v, want [a c]", got)
	}
	// Positions must be reindexed after the removal.
	value, ok := object.Get("c")
	if !ok || value != String("3") {
		t.Errorf("Get(c) = %v, %v; want \"3\", true", value, ok)
	}
	if object.Has("b") {
		t.Error("Has(b) = true after Delete")
	}
}

func TestZeroObjectIsUsable(t *testing.T) {
	var object Object
	if object.Len() != 0 {
		t.Errorf("zero Object Len() = %d", object.Len())
	}
	if _, ok := object.Get("anything"); ok {
		t.Error("zero Object Get reported a hit")
	}
	object.Set("key", Null{})
	if !object.Has("key") {
		t.Error("Set on zero Object did not store the key")
	}
}

func TestNilObjectReads(t *testing.T) {
	var object *Object
	object.Delete("anything")
	if object.Len() != 0 || object.Has("anything") || object.Keys() != nil || object.Members() != nil {
		t.Error("nil *Object should behave as an empty object")
	}
	if _, ok := object.Get("anything"); ok {
		t.Error("nil *Object Get reported a hit")
	}
	object.Range(func(string, Node) bool {
		t.Error("Range on a nil *Object visited a member")
		return true
	})
}

func TestMembersReturnsCopy(t *testing.T) {
	object := NewObject(Member{Key: "a", Value: String("1")})
	members := object.Members()
	members[0].Key = "mutated"
	if !object.Has("a") {
		t.Error("mutating Members() result changed the object")
	}
}

func TestRangeStopsEarly(t *testing.T) {
	object := NewObject(
		Member{Key: "a", Value: Null{}},
		Member{Key: "b", Value: Null{}},
		Member{Key: "c", Value: Null{}},
	)
	var visited []string
	object.Range(func(key string, _ Node) bool {
		visited = append(visited, key)
		return key != "b"
	})
	if !slices.Equal(visited, []string{"a", "b"}) {
		t.Errorf("visited = %v, want [a b]", visited)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Node
		equal bool
	}{
		{"nil and Null", nil, Null{}, true},
		{"same strings", String("x"), String("x"), true},
		{"different strings", String("x"), String("y"), false},
		{"string vs bool", String("true"), Bool(true), false},
		{"same bools", Bool(false), Bool(false), true},
		{"arrays equal", Array{String("a"), nil}, Array{String("a"), Null{}}, true},
		{"arrays differ in length", Array{String("a")}, Array{String("a"), String("b")}, false},
		{"arrays differ in order", Array{String("a"), String("b")}, Array{String("b"), String("a")}, false},
		{
			"objects equal",
			NewObject(Member{"k", String("v")}, Member{"n", Null{}}),
			NewObject(Member{"k", String("v")}, Member{"n", Null{}}),
			true,
		},
		{
			"objects differ in order",
			NewObject(Member{"a", Null{}}, Member{"b", Null{}}),
			NewObject(Member{"b", Null{}}, Member{"a", Null{}}),
			false,
		},
		{
			"nested difference",
			NewObject(Member{"list", Array{Bool(true)}}),
			NewObject(Member{"list", Array{Bool(false)}}),
			false,
		},
		{"empty object vs empty array", &Object{}, Array{}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.equal {
				t.Errorf("Equal(%s, %s) = %v, want %v", Format(test.a), Format(test.b), got, test.equal)
			}
			if got := Equal(test.b, test.a); got != test.equal {
				t.Errorf("Equal is not symmetric for %s, %s", Format(test.a), Format(test.b))
			}
		})
	}
}

func TestFormat(t *testing.T) {
	node := NewObject(
		Member{Key: "name", Value: String("Todd")},
		Member{Key: "tags", Value: Array{Bool(true), nil}},
	)
	want := `{"name": "Todd", "tags": [true, null]}`
	if got := Format(node); got != want {
		t.Errorf("Format() = %s, want %s", got, want)
	}
}

func TestKindString(t *testing.T) {
	if got := KindObject.String(); got != "object" {
		t.Errorf("KindObject.String() = %q", got)
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
