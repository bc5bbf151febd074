// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a [Node] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindObject
	KindArray
)

// String returns the lower-case name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

// Node is one value in a document tree. The set of implementations is
// closed: [String], [Bool], [Null], [Array], and [*Object].
type Node interface {
	Kind() Kind
	node()
}

// String is a string value.
type String string

// Bool is a boolean value.
type Bool bool

// Null is the null value.
type Null struct{}

// Array is an ordered sequence of nodes. A nil element is treated as
// [Null].
type Array []Node

func (String) Kind() Kind  { return KindString }
func (Bool) Kind() Kind    { return KindBool }
func (Null) Kind() Kind    { return KindNull }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (String) node()  {}
func (Bool) node()    {}
func (Null) node()    {}
func (Array) node()   {}
func (*Object) node() {}

// KindOf returns the kind of node, treating nil as [KindNull].
func KindOf(node Node) Kind {
	if node == nil {
		return KindNull
	}
	return node.Kind()
}

// Format renders node in a compact JSON-like notation for error
// messages and test failure output. It is not a serialization format:
// strings are Go-quoted and there is no escaping contract.
func Format(node Node) string {
	var builder strings.Builder
	format(&builder, node)
	return builder.String()
}

func format(builder *strings.Builder, node Node) {
	switch value := node.(type) {
	case nil, Null:
		builder.WriteString("null")
	case String:
		builder.WriteString(strconv.Quote(string(value)))
	case Bool:
		builder.WriteString(strconv.FormatBool(bool(value)))
	case Array:
		builder.WriteByte('[')
		for index, element := range value {
			if index > 0 {
				builder.WriteString(", ")
			}
			format(builder, element)
		}
		builder.WriteByte(']')
	case *Object:
		builder.WriteByte('{')
		for index, member := range value.Members() {
			if index > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(strconv.Quote(member.Key))
			builder.WriteString(": ")
			format(builder, member.Value)
		}
		builder.WriteByte('}')
	default:
		fmt.Fprintf(builder, "<%T>", node)
	}
}
