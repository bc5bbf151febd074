// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/codec"
	"github.com/bureau-foundation/keydoc/lib/config"
	"github.com/bureau-foundation/keydoc/lib/convert"
	"github.com/bureau-foundation/keydoc/lib/document"
)

type decodeParams struct {
	commonParams
	To       string `json:"to"        flag:"to,t"      desc:"output format: json, yaml, cbor, or diag (default: output.format from config)"`
	Compact  bool   `json:"compact"   flag:"compact,c" desc:"single-line JSON output"`
	HexInput bool   `json:"hex_input" flag:"hex,x"     desc:"treat input as hex-encoded keydoc"`
	NoColor  bool   `json:"no_color"  flag:"no-color"  desc:"disable syntax highlighting"`
}

func decodeCommand(streams cli.IO) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a keydoc stream to JSON, YAML, or CBOR",
		Description: `Read a keydoc stream and write the document it encodes.

JSON and YAML output keep object members in stream order and are
syntax-highlighted when stdout is a terminal. CBOR output is Core
Deterministic, so map keys are sorted by encoded key bytes (shorter
keys first). "diag" prints that CBOR in diagnostic notation (RFC 8949
section 8).

Decoding is strict: an unknown tag, a truncated stream, a
back-reference that does not resolve to an earlier literal, or trailing
bytes fail the whole command with the byte offset of the problem.`,
		Usage: "keydoc decode [--to FORMAT] [-c] [--hex] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a stream to pretty-printed JSON",
				Command:     "keydoc decode spins.kd",
			},
			{
				Description: "Decode hex text to YAML",
				Command:     "echo '04 01 01 01 6b 06' | keydoc decode --hex --to yaml",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := loadConfig(params.Config, logger)
			if err != nil {
				return err
			}
			data, name, err := readInput(streams.In, args, params.HexInput)
			if err != nil {
				return err
			}
			node, err := decodeStream(data, name, cfg)
			if err != nil {
				return err
			}

			format := params.To
			if format == "" {
				format = cfg.Output.Format
			}
			color := cfg.Output.Color
			if params.NoColor {
				color = "never"
			}
			return writeDocument(streams, node, format, params.Compact, color, cfg)
		},
	}
}

// decodeFormats lists the --to values in the order help text gives
// them.
var decodeFormats = []string{"json", "yaml", "cbor", "diag"}

// writeDocument renders node to streams.Out in format.
func writeDocument(streams cli.IO, node document.Node, format string, compact bool, color string, cfg *config.Config) error {
	switch format {
	case "diag":
		cborData, err := convert.ToCBOR(node)
		if err != nil {
			return cli.Internal("converting to CBOR: %w", err)
		}
		diagnostic, err := codec.Diagnose(cborData)
		if err != nil {
			return cli.Internal("CBOR diagnostic notation: %w", err)
		}
		_, err = streams.Out.Write([]byte(diagnostic + "\n"))
		return err

	case string(convert.FormatCBOR):
		if err := codec.NewEncoder(streams.Out).Encode(convert.ToAny(node)); err != nil {
			return cli.Internal("writing CBOR: %w", err)
		}
		return nil

	case string(convert.FormatJSON), string(convert.FormatYAML):
		indent := cfg.Output.Indent
		if compact {
			indent = ""
		}
		text, err := convert.Export(convert.Format(format), node, convert.ExportOptions{Indent: indent})
		if err != nil {
			return cli.Internal("rendering %s: %w", format, err)
		}
		if len(text) == 0 || text[len(text)-1] != '\n' {
			text = append(text, '\n')
		}
		enabled, err := cli.ColorEnabled(color, streams.Out)
		if err != nil {
			return err
		}
		return cli.Highlight(streams.Out, string(text), format, enabled)

	default:
		return cli.UnknownChoice("to", format, decodeFormats)
	}
}
