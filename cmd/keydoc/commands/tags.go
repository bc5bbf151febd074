// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

type tagsParams struct {
	cli.JSONOutput
	NoColor bool `json:"no_color" flag:"no-color" desc:"disable colored output"`
}

type tagRow struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Payload  string `json:"payload"`
}

func tagsCommand(streams cli.IO) *cli.Command {
	var params tagsParams

	return &cli.Command{
		Name:    "tags",
		Summary: "Print the tag table",
		Description: `Print every tag byte the codec assigns, with the slot it may appear in
and the payload that follows it. Tag numbers are permanent; values not
listed are rejected by the decoder.`,
		Usage:  "keydoc tags [--json]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("tags takes no arguments, got %q", args[0])
			}

			var rows []tagRow
			for _, tag := range keydoc.Tags() {
				rows = append(rows, tagRow{
					Number:   int(tag),
					Name:     tag.String(),
					Position: tag.Position().String(),
					Payload:  tag.PayloadDescription(),
				})
			}
			if done, err := params.EmitJSON(streams.Out, rows); done {
				return err
			}

			color := "auto"
			if params.NoColor {
				color = "never"
			}
			enabled, err := cli.ColorEnabled(color, streams.Out)
			if err != nil {
				return err
			}
			styles := cli.NewStyles(streams.Out, enabled)
			table := cli.NewTable(styles, "TAG", "NAME", "SLOT", "PAYLOAD")
			for _, row := range rows {
				name := row.Name
				if keydoc.Tag(row.Number).IsReference() {
					name = styles.Reference(name)
				}
				table.AddRow(strconv.Itoa(row.Number), name, row.Position, styles.Faint(row.Payload))
			}
			return table.Render(streams.Out)
		},
	}
}
