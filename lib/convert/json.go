// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// FromJSON parses a single JSON value. Object member order is kept.
// Numbers become strings holding their literal text, so "1.50" and
// 1.50 both decode to the string "1.50". Duplicate keys are rejected.
func FromJSON(data []byte) (document.Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	node, err := readJSONValue(decoder, 0)
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parsing JSON: trailing data after value at byte %d", decoder.InputOffset())
		}
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return node, nil
}

// FromJSONC parses JSON that may contain comments and trailing commas.
func FromJSONC(data []byte) (document.Node, error) {
	return FromJSON(jsonc.ToJSON(data))
}

func readJSONValue(decoder *json.Decoder, depth int) (document.Node, error) {
	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	switch value := token.(type) {
	case nil:
		return document.Null{}, nil
	case bool:
		return document.Bool(value), nil
	case string:
		return document.String(value), nil
	case json.Number:
		return document.String(value.String()), nil
	case json.Delim:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("parsing JSON at byte %d: %w (limit %d)", decoder.InputOffset(), ErrTooDeep, MaxDepth)
		}
		if value == '[' {
			return readJSONArray(decoder, depth)
		}
		return readJSONObject(decoder, depth)
	default:
		return nil, fmt.Errorf("parsing JSON: unexpected token %v", token)
	}
}

func readJSONArray(decoder *json.Decoder, depth int) (document.Node, error) {
	array := document.Array{}
	for decoder.More() {
		element, err := readJSONValue(decoder, depth+1)
		if err != nil {
			return nil, err
		}
		array = append(array, element)
	}
	// Closing bracket.
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return array, nil
}

func readJSONObject(decoder *json.Decoder, depth int) (document.Node, error) {
	object := &document.Object{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("parsing JSON: object key is %v, not a string", token)
		}
		if object.Has(key) {
			return nil, fmt.Errorf("parsing JSON at byte %d: %w %q", decoder.InputOffset(), ErrDuplicateKey, key)
		}
		value, err := readJSONValue(decoder, depth+1)
		if err != nil {
			return nil, err
		}
		object.Set(key, value)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return object, nil
}

// ToJSON renders node as JSON with object members in document order.
// An empty indent produces compact output; otherwise each nesting
// level is indented by indent and the output ends with a newline.
func ToJSON(node document.Node, indent string) ([]byte, error) {
	writer := jsonWriter{}
	writer.strings = json.NewEncoder(&writer.scratch)
	writer.strings.SetEscapeHTML(false)
	if err := writer.write(node); err != nil {
		return nil, err
	}
	if indent == "" {
		return writer.out.Bytes(), nil
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, writer.out.Bytes(), "", indent); err != nil {
		return nil, err
	}
	indented.WriteByte('\n')
	return indented.Bytes(), nil
}

// jsonWriter builds compact JSON. Strings go through encoding/json so
// escaping matches the standard library exactly.
type jsonWriter struct {
	out     bytes.Buffer
	scratch bytes.Buffer
	strings *json.Encoder
}

func (writer *jsonWriter) write(node document.Node) error {
	switch value := node.(type) {
	case nil, document.Null:
		writer.out.WriteString("null")
	case document.Bool:
		if value {
			writer.out.WriteString("true")
		} else {
			writer.out.WriteString("false")
		}
	case document.String:
		return writer.writeString(string(value))
	case document.Array:
		writer.out.WriteByte('[')
		for index, element := range value {
			if index > 0 {
				writer.out.WriteByte(',')
			}
			if err := writer.write(element); err != nil {
				return err
			}
		}
		writer.out.WriteByte(']')
	case *document.Object:
		writer.out.WriteByte('{')
		first := true
		var err error
		value.Range(func(key string, member document.Node) bool {
			if !first {
				writer.out.WriteByte(',')
			}
			first = false
			if err = writer.writeString(key); err != nil {
				return false
			}
			writer.out.WriteByte(':')
			err = writer.write(member)
			return err == nil
		})
		if err != nil {
			return err
		}
		writer.out.WriteByte('}')
	default:
		return fmt.Errorf("%w: node type %T", ErrUnsupported, node)
	}
	return nil
}

func (writer *jsonWriter) writeString(value string) error {
	writer.scratch.Reset()
	if err := writer.strings.Encode(value); err != nil {
		return err
	}
	// Encode appends a newline.
	writer.out.Write(bytes.TrimSuffix(writer.scratch.Bytes(), []byte{'\n'}))
	return nil
}
