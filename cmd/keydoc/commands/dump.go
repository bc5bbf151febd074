// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

type dumpParams struct {
	commonParams
	cli.JSONOutput
	HexInput bool `json:"hex_input" flag:"hex,x"    desc:"treat input as hex-encoded keydoc"`
	NoColor  bool `json:"no_color"  flag:"no-color" desc:"disable colored output"`
}

// dumpEntry is the JSON form of one token.
type dumpEntry struct {
	Offset  int    `json:"offset"`
	Size    int    `json:"size"`
	Tag     string `json:"tag"`
	Slot    string `json:"slot"`
	Depth   int    `json:"depth"`
	Payload string `json:"payload,omitempty"`
	Text    string `json:"text,omitempty"`
	Target  *int   `json:"target,omitempty"`
}

// maxDumpText is the number of characters of a string shown per row.
const maxDumpText = 48

func dumpCommand(streams cli.IO) *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "List the tokens of a keydoc stream",
		Description: `Decode a keydoc stream and print one row per token: its byte offset
and size, tag name, payload, and the string it stands for. For
back-references the payload is the value as written on the wire and
the row names the offset of the literal it resolved to.

When the stream is malformed, the tokens before the problem are listed
and the command fails with the offset of the bad token.`,
		Usage: "keydoc dump [--hex] [--json] [file]",
		Examples: []cli.Example{
			{
				Description: "Show how a document was encoded",
				Command:     "keydoc encode spins.json | keydoc dump",
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

			entries, inspectErr := keydoc.Inspect(data, cfg.DecodeOptions())

			if params.OutputJSON {
				rows := make([]dumpEntry, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, dumpJSONEntry(entry))
				}
				if _, err := params.EmitJSON(streams.Out, rows); err != nil {
					return cli.Internal("write stdout: %w", err)
				}
			} else {
				color := cfg.Output.Color
				if params.NoColor {
					color = "never"
				}
				enabled, err := cli.ColorEnabled(color, streams.Out)
				if err != nil {
					return err
				}
				if err := renderDump(streams, entries, cli.NewStyles(streams.Out, enabled)); err != nil {
					return cli.Internal("write stdout: %w", err)
				}
			}

			if inspectErr != nil {
				return cli.Validation("decoding %s: %w", name, inspectErr)
			}
			return nil
		},
	}
}

func renderDump(streams cli.IO, entries []keydoc.Entry, styles *cli.Styles) error {
	table := cli.NewTable(styles, "OFFSET", "SIZE", "TAG", "SLOT", "PAYLOAD", "TEXT")
	for _, entry := range entries {
		tagName := strings.Repeat("  ", entry.Depth) + entry.Token.Tag.String()
		text := ""
		switch {
		case entry.Token.Tag == keydoc.TagString:
			tagName = styles.Literal(tagName)
			text = quoteText(entry.Text)
		case entry.Token.Tag.IsReference():
			tagName = styles.Reference(tagName)
			text = quoteText(entry.Text) + " " + styles.Faint(fmt.Sprintf("@%d", entry.Target))
		}
		table.AddRow(
			styles.Faint(strconv.Itoa(entry.Offset)),
			strconv.Itoa(entry.Size),
			tagName,
			entry.Slot.String(),
			payloadText(entry.Token),
			text,
		)
	}
	return table.Render(streams.Out)
}

func dumpJSONEntry(entry keydoc.Entry) dumpEntry {
	row := dumpEntry{
		Offset:  entry.Offset,
		Size:    entry.Size,
		Tag:     entry.Token.Tag.String(),
		Slot:    entry.Slot.String(),
		Depth:   entry.Depth,
		Payload: payloadText(entry.Token),
		Text:    entry.Text,
	}
	if entry.Target >= 0 {
		target := entry.Target
		row.Target = &target
	}
	return row
}

// payloadText describes what follows a token's tag byte.
func payloadText(token keydoc.Token) string {
	switch {
	case token.Tag == keydoc.TagString:
		return "len " + strconv.Itoa(len(token.Text))
	case token.Tag == keydoc.TagObj || token.Tag == keydoc.TagArray:
		return "count " + strconv.FormatUint(uint64(token.Count), 10)
	case token.Tag.IsReference():
		return strconv.FormatUint(uint64(token.Reference), 10)
	default:
		return ""
	}
}

// quoteText quotes a string for a table cell, shortening long ones.
func quoteText(text string) string {
	if utf8.RuneCountInString(text) > maxDumpText {
		runes := []rune(text)
		return strconv.Quote(string(runes[:maxDumpText])) + "..."
	}
	return strconv.Quote(text)
}
