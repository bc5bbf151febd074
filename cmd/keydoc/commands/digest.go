// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/binhash"
)

type digestParams struct {
	commonParams
	cli.JSONOutput
	From     string `json:"from"      flag:"from,f"  default:"json" desc:"input format: keydoc, json, jsonc, yaml, or cbor"`
	HexInput bool   `json:"hex_input" flag:"hex,x"   desc:"treat input as hex-encoded bytes"`
	Short    bool   `json:"short"     flag:"short,s" desc:"print the short kd- form"`
}

type digestResult struct {
	Input  string `json:"input"`
	Digest string `json:"digest"`
	Short  string `json:"short"`
}

func digestCommand(streams cli.IO) *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the BLAKE3 digest of a document's canonical encoding",
		Description: `Hash the canonical keydoc encoding of a document with keyed BLAKE3.

Two inputs get the same digest exactly when they hold the same document
with members in the same order, whatever their source format: a JSON
file and the keydoc stream it encodes to agree.`,
		Usage: "keydoc digest [--from FORMAT] [--short] [file]",
		Examples: []cli.Example{
			{
				Description: "Digest a JSON file",
				Command:     "keydoc digest spins.json",
			},
			{
				Description: "Short form of a stream's digest",
				Command:     "keydoc digest --from keydoc --short spins.kd",
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
			digest, err := binhash.HashDocument(node)
			if err != nil {
				return cli.Validation("hashing %s: %w", name, err)
			}

			result := digestResult{
				Input:  name,
				Digest: binhash.FormatDigest(digest),
				Short:  binhash.FormatShort(digest),
			}
			if done, err := params.EmitJSON(streams.Out, result); done {
				return err
			}
			if params.Short {
				_, err = fmt.Fprintln(streams.Out, result.Short)
			} else {
				_, err = fmt.Fprintf(streams.Out, "%s  %s\n", result.Digest, name)
			}
			return err
		},
	}
}
