// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// FromYAML parses the first YAML document in data. Mapping order is
// kept. Scalars tagged !!null and !!bool become Null and Bool; every
// other scalar becomes a string holding its source text. Aliases are
// expanded. An empty input is Null.
func FromYAML(data []byte) (document.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return document.Null{}, nil
	}
	return fromYAMLNode(root.Content[0], 0)
}

func fromYAMLNode(node *yaml.Node, depth int) (document.Node, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return document.Null{}, nil
		}
		return fromYAMLNode(node.Content[0], depth)

	case yaml.AliasNode:
		// Expansion counts toward depth, which bounds anchor cycles.
		return fromYAMLNode(node.Alias, depth+1)

	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return document.Null{}, nil
		case "!!bool":
			var value bool
			if err := node.Decode(&value); err != nil {
				return nil, fmt.Errorf("parsing YAML at line %d: %w", node.Line, err)
			}
			return document.Bool(value), nil
		case "!!binary":
			return nil, fmt.Errorf("parsing YAML at line %d: %w: !!binary scalar", node.Line, ErrUnsupported)
		default:
			return document.String(node.Value), nil
		}

	case yaml.SequenceNode:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("parsing YAML at line %d: %w (limit %d)", node.Line, ErrTooDeep, MaxDepth)
		}
		array := make(document.Array, 0, len(node.Content))
		for _, child := range node.Content {
			element, err := fromYAMLNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			array = append(array, element)
		}
		return array, nil

	case yaml.MappingNode:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("parsing YAML at line %d: %w (limit %d)", node.Line, ErrTooDeep, MaxDepth)
		}
		object := &document.Object{}
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode, valueNode := node.Content[index], node.Content[index+1]
			if keyNode.ShortTag() == "!!merge" {
				return nil, fmt.Errorf("parsing YAML at line %d: %w: merge key", keyNode.Line, ErrUnsupported)
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("parsing YAML at line %d: %w: non-scalar mapping key", keyNode.Line, ErrUnsupported)
			}
			if object.Has(keyNode.Value) {
				return nil, fmt.Errorf("parsing YAML at line %d: %w %q", keyNode.Line, ErrDuplicateKey, keyNode.Value)
			}
			value, err := fromYAMLNode(valueNode, depth+1)
			if err != nil {
				return nil, err
			}
			object.Set(keyNode.Value, value)
		}
		return object, nil
	}

	return nil, fmt.Errorf("parsing YAML at line %d: %w: node kind %d", node.Line, ErrUnsupported, node.Kind)
}

// ToYAML renders node as a YAML document with mapping keys in document
// order. Strings that would otherwise read back as another type, such
// as "true" or "12", are quoted.
func ToYAML(node document.Node) ([]byte, error) {
	root, err := toYAMLNode(node)
	if err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("rendering YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("rendering YAML: %w", err)
	}
	return buffer.Bytes(), nil
}

func toYAMLNode(node document.Node) (*yaml.Node, error) {
	switch value := node.(type) {
	case nil, document.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case document.Bool:
		text := "false"
		if value {
			text = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}, nil
	case document.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(value)}, nil
	case document.Array:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(value) == 0 {
			sequence.Style = yaml.FlowStyle
		}
		for _, element := range value {
			child, err := toYAMLNode(element)
			if err != nil {
				return nil, err
			}
			sequence.Content = append(sequence.Content, child)
		}
		return sequence, nil
	case *document.Object:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if value.Len() == 0 {
			mapping.Style = yaml.FlowStyle
		}
		var err error
		value.Range(func(key string, member document.Node) bool {
			var child *yaml.Node
			child, err = toYAMLNode(member)
			if err != nil {
				return false
			}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("%w: node type %T", ErrUnsupported, node)
	}
}
