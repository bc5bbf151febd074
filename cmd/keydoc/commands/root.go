// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the keydoc CLI command tree.
//
// Every command reads its input from a trailing file argument or from
// stdin, and writes through the [cli.IO] it was built with, so the whole
// tree can be exercised against in-memory buffers.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/version"
)

type rootParams struct {
	Version bool `flag:"version" desc:"print version information and exit"`
}

// Root builds and returns the complete keydoc command tree, writing
// through streams.
func Root(streams cli.IO) *cli.Command {
	var params rootParams

	root := &cli.Command{
		Name: "keydoc",
		Description: `keydoc: compact keyed-document binary codec.

Encode JSON, YAML, or CBOR documents into keydoc streams, where every
repeated key or string after its first occurrence becomes a short
back-reference to the earlier literal, and decode them again.`,
		Usage: "keydoc <command> [flags] [file]",
		Subcommands: []*cli.Command{
			encodeCommand(streams),
			decodeCommand(streams),
			dumpCommand(streams),
			validateCommand(streams),
			statsCommand(streams),
			digestCommand(streams),
			tagsCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Encode a JSON document and decode it back",
				Command:     "keydoc encode spins.json | keydoc decode",
			},
			{
				Description: "Compare the stream size against JSON, CBOR, and compressed forms",
				Command:     "keydoc stats --from yaml spins.yaml",
			},
		},
		Params:     func() any { return &params },
		HelpOutput: streams.Err,
	}
	root.Run = func(ctx context.Context, args []string, logger *slog.Logger) error {
		if params.Version {
			_, err := fmt.Fprintf(streams.Out, "keydoc %s\n", version.Info())
			return err
		}
		root.PrintHelp(streams.Err)
		if len(args) > 0 {
			return cli.Validation("unexpected argument %q", args[0])
		}
		return cli.Validation("command required")
	}
	return root
}
