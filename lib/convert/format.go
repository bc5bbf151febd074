// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/keydoc/lib/document"
)

// Format names an interchange format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatCBOR  Format = "cbor"
)

// ImportFormats lists the formats [Import] accepts.
var ImportFormats = []Format{FormatJSON, FormatJSONC, FormatYAML, FormatCBOR}

// ExportFormats lists the formats [Export] produces.
var ExportFormats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat validates name against the allowed set.
func ParseFormat(name string, allowed []Format) (Format, error) {
	format := Format(name)
	if !slices.Contains(allowed, format) {
		return "", fmt.Errorf("unknown format %q (want one of %v)", name, allowed)
	}
	return format, nil
}

// Import parses data in the given format.
func Import(format Format, data []byte) (document.Node, error) {
	switch format {
	case FormatJSON:
		return FromJSON(data)
	case FormatJSONC:
		return FromJSONC(data)
	case FormatYAML:
		return FromYAML(data)
	case FormatCBOR:
		return FromCBOR(data)
	default:
		return nil, fmt.Errorf("cannot import format %q", format)
	}
}

// ExportOptions controls text output.
type ExportOptions struct {
	// Indent is the per-level JSON indentation. Empty means compact
	// single-line JSON. YAML always uses two spaces.
	Indent string
}

// Export renders node in the given format.
func Export(format Format, node document.Node, options ExportOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(node, options.Indent)
	case FormatYAML:
		return ToYAML(node)
	case FormatCBOR:
		return ToCBOR(node)
	default:
		return nil, fmt.Errorf("cannot export format %q", format)
	}
}
