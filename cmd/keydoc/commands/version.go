// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(streams cli.IO) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version and build information",
		Description: `Print the version, commit, Go toolchain, and platform this binary was
built with, and the BLAKE3 digest of the running executable.`,
		Usage:  "keydoc version [--json]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			info := version.Collect()
			if done, err := params.EmitJSON(streams.Out, info); done {
				return err
			}
			fmt.Fprintf(streams.Out, "keydoc %s\n", version.Full())
			if info.BinaryDigest == "" {
				logger.Warn("could not hash the running binary")
				return nil
			}
			_, err := fmt.Fprintf(streams.Out, "  Binary: %s\n", info.BinaryDigest)
			return err
		},
	}
}
