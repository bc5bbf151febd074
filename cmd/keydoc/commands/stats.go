// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/sizing"
)

type statsParams struct {
	commonParams
	cli.JSONOutput
	From     string `json:"from"      flag:"from,f"   default:"json" desc:"input format: keydoc, json, jsonc, yaml, or cbor"`
	HexInput bool   `json:"hex_input" flag:"hex,x"    desc:"treat input as hex-encoded bytes"`
	NoColor  bool   `json:"no_color"  flag:"no-color" desc:"disable colored output"`
}

func statsCommand(streams cli.IO) *cli.Command {
	var params statsParams

	return &cli.Command{
		Name:    "stats",
		Summary: "Compare keydoc size against JSON, CBOR, and compressed forms",
		Description: `Encode a document as keydoc, compact JSON, and deterministic CBOR, and
compress each with zstd and lz4. Prints each size and its ratio to the
compact JSON size, the encoder's literal and back-reference counts, and
the number of tokens written per tag.

The zstd level comes from stats.zstd_level in the config file.`,
		Usage: "keydoc stats [--from FORMAT] [--json] [file]",
		Examples: []cli.Example{
			{
				Description: "Measure a JSON log",
				Command:     "keydoc stats spins.json",
			},
			{
				Description: "Measure an existing stream, as JSON",
				Command:     "keydoc stats --from keydoc --json spins.kd",
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

			report, err := sizing.Measure(node, sizing.Options{
				ZstdLevel: cfg.Stats.ZstdLevel,
				Encode:    cfg.EncodeOptions(),
			})
			if err != nil {
				return cli.Validation("measuring %s: %w", name, err)
			}
			logger.Debug("measured", "input", name, "keydoc_bytes", report.Size("keydoc"))

			if done, err := params.EmitJSON(streams.Out, report); done {
				return err
			}

			color := cfg.Output.Color
			if params.NoColor {
				color = "never"
			}
			enabled, err := cli.ColorEnabled(color, streams.Out)
			if err != nil {
				return err
			}
			return renderStats(streams, report, cli.NewStyles(streams.Out, enabled))
		},
	}
}

func renderStats(streams cli.IO, report *sizing.Report, styles *cli.Styles) error {
	sizes := cli.NewTable(styles, "ENCODING", "BYTES", "VS JSON")
	for _, measurement := range report.Measurements {
		encoding := measurement.Encoding
		if measurement.Encoding == "keydoc" {
			encoding = styles.Literal(encoding)
		}
		sizes.AddRow(encoding, strconv.Itoa(measurement.Size), fmt.Sprintf("%.3f", measurement.Ratio))
	}
	if err := sizes.Render(streams.Out); err != nil {
		return err
	}

	fmt.Fprintf(streams.Out, "\n%d literals (%d bytes), %d back-references\n\n",
		report.Literals, report.LiteralBytes, report.References)

	names := make([]string, 0, len(report.Tags))
	for name := range report.Tags {
		names = append(names, name)
	}
	slices.Sort(names)
	tags := cli.NewTable(styles, "TAG", "TOKENS")
	for _, name := range names {
		tags.AddRow(name, strconv.Itoa(report.Tags[name]))
	}
	return tags.Render(streams.Out)
}
