// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// keydoc encodes, decodes, and inspects keydoc streams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/cmd/keydoc/commands"
)

func main() {
	err := run()
	code, report := cli.ExitStatus(err)
	// Commands that print their own verdict (validate) return an
	// ExitError; don't print a redundant "error:" line for those.
	if report {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(cli.StandardIO()).Execute(ctx, os.Args[1:])
}
