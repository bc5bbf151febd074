// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

type encodeParams struct {
	commonParams
	From      string `json:"from"       flag:"from,f"     default:"json" desc:"input format: json, jsonc, yaml, cbor, or keydoc"`
	HexInput  bool   `json:"hex_input"  flag:"hex,x"      desc:"treat input as hex-encoded bytes"`
	HexOutput bool   `json:"hex_output" flag:"hex-output" desc:"write the stream as hex text"`
	Output    string `json:"output"     flag:"output,o"   desc:"write to this file instead of stdout (relative to output.directory when configured)"`
}

func encodeCommand(streams cli.IO) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert a JSON, YAML, or CBOR document to a keydoc stream",
		Description: `Read a document and write its keydoc encoding.

Object members keep their input order for JSON, JSONC, and YAML. CBOR
maps carry no order, so their keys are written sorted. Numbers become
strings: the keydoc data model has no numeric type.

With --from keydoc the input is decoded and written again, which yields
the canonical form of a stream produced by another writer.`,
		Usage: "keydoc encode [--from FORMAT] [--hex-output] [-o FILE] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode a JSON file",
				Command:     "keydoc encode spins.json > spins.kd",
			},
			{
				Description: "Encode YAML from stdin and show the bytes",
				Command:     "keydoc encode --from yaml --hex-output < spins.yaml",
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
			node, err := readDocument(params.From, data, name, cfg)
			if err != nil {
				return err
			}

			encoder := keydoc.NewEncoder(cfg.EncodeOptions())
			stream, err := encoder.Encode(node)
			if err != nil {
				return cli.Validation("encoding %s: %w", name, err)
			}
			logger.Debug("encoded", "input", name, "stats", encoder.Stats().String())

			output := stream
			if params.HexOutput {
				output = []byte(hex.EncodeToString(stream) + "\n")
			}

			if params.Output == "" {
				if _, err := streams.Out.Write(output); err != nil {
					return cli.Internal("write stdout: %w", err)
				}
				return nil
			}
			path, err := cfg.OutputPath(params.Output)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if err := os.WriteFile(path, output, 0o644); err != nil {
				return cli.Internal("write %s: %w", path, err)
			}
			logger.Info("stream written", "path", path, "bytes", len(stream))
			return nil
		},
	}
}
