// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

type validateParams struct {
	commonParams
	HexInput bool `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded keydoc"`
}

func validateCommand(streams cli.IO) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether a keydoc stream is in canonical form",
		Description: `Decode a keydoc stream, encode the result again, and compare the bytes.

Exits 0 with "canonical" when they match. A stream that decodes but
differs (another writer chose a wider back-reference than necessary, or
repeated a literal instead of referencing it) exits 1 and names the
first differing byte. A stream that does not decode fails with the
offset of the problem and exit status 2.`,
		Usage: "keydoc validate [--hex] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a stream file",
				Command:     "keydoc validate spins.kd",
			},
			{
				Description: "Validate hex-encoded bytes",
				Command:     "echo '04 01 01 01 6b 06' | keydoc validate --hex",
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
			canonical, err := keydoc.NewEncoder(cfg.EncodeOptions()).Encode(node)
			if err != nil {
				return cli.Validation("re-encoding %s: %w", name, err)
			}
			return compareCanonical(streams.Out, data, canonical)
		},
	}
}

// compareCanonical reports whether original equals canonical, returning
// an [cli.ExitError] with code 1 when it does not.
func compareCanonical(w io.Writer, original, canonical []byte) error {
	if bytes.Equal(original, canonical) {
		fmt.Fprintf(w, "canonical (%d bytes)\n", len(original))
		return nil
	}

	offset := 0
	minLength := min(len(original), len(canonical))
	for offset < minLength && original[offset] == canonical[offset] {
		offset++
	}
	fmt.Fprintf(w, "not canonical: first difference at byte %d (stream %d bytes, canonical %d bytes)\n",
		offset, len(original), len(canonical))
	return &cli.ExitError{Code: 1}
}
