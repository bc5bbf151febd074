// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strconv"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// FromAny converts a tree of plain Go values, as produced by
// encoding/json or CBOR decoding into any, to a document. Map members
// are sorted by key. Integers and floats become their decimal text.
func FromAny(value any) (document.Node, error) {
	return fromAny(value, 0)
}

func fromAny(value any, depth int) (document.Node, error) {
	switch typed := value.(type) {
	case nil:
		return document.Null{}, nil
	case bool:
		return document.Bool(typed), nil
	case string:
		return document.String(typed), nil
	case json.Number:
		return document.String(typed.String()), nil
	case int:
		return document.String(strconv.Itoa(typed)), nil
	case int64:
		return document.String(strconv.FormatInt(typed, 10)), nil
	case uint64:
		return document.String(strconv.FormatUint(typed, 10)), nil
	case float32:
		return document.String(strconv.FormatFloat(float64(typed), 'g', -1, 32)), nil
	case float64:
		return document.String(strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case big.Int:
		return document.String(typed.String()), nil
	case *big.Int:
		return document.String(typed.String()), nil

	case []any:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("%w (limit %d)", ErrTooDeep, MaxDepth)
		}
		array := make(document.Array, 0, len(typed))
		for _, element := range typed {
			node, err := fromAny(element, depth+1)
			if err != nil {
				return nil, err
			}
			array = append(array, node)
		}
		return array, nil

	case map[string]any:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("%w (limit %d)", ErrTooDeep, MaxDepth)
		}
		object := &document.Object{}
		for _, key := range slices.Sorted(maps.Keys(typed)) {
			node, err := fromAny(typed[key], depth+1)
			if err != nil {
				return nil, err
			}
			object.Set(key, node)
		}
		return object, nil

	default:
		return nil, fmt.Errorf("%w: Go type %T", ErrUnsupported, value)
	}
}

// ToAny converts a document to plain Go values: nil, bool, string,
// []any, and map[string]any. Object member order is lost.
func ToAny(node document.Node) any {
	switch value := node.(type) {
	case document.Bool:
		return bool(value)
	case document.String:
		return string(value)
	case document.Array:
		result := make([]any, len(value))
		for index, element := range value {
			result[index] = ToAny(element)
		}
		return result
	case *document.Object:
		result := make(map[string]any, value.Len())
		value.Range(func(key string, member document.Node) bool {
			result[key] = ToAny(member)
			return true
		})
		return result
	default:
		return nil
	}
}
