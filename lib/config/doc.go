// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the keydoc
// tool.
//
// Configuration is loaded from a single file specified by either the
// KEYDOC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search; a command run with neither uses [Default].
//
// The file may carry environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter:
// decoded strings must be valid UTF-8, strings and containers have
// size caps, and output is never colored.
//
// ${VAR} and ${VAR:-default} patterns in output.directory are
// expanded after loading. No other environment variables override
// config values.
package config
