// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the keydoc tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a flag factory, and a Run
// function. Commands are assembled into a tree in cmd/keydoc/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]; see [BindFlags] for the tag syntax.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Output helpers live alongside: [IO] carries the streams a command
// writes to, [JSONOutput] adds --json, and [Styles] and [Highlight]
// color terminal output when [ColorEnabled] says so.
package cli
