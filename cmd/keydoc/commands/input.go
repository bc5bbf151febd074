// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode"

	"github.com/bureau-foundation/keydoc/cmd/keydoc/cli"
	"github.com/bureau-foundation/keydoc/lib/config"
	"github.com/bureau-foundation/keydoc/lib/convert"
	"github.com/bureau-foundation/keydoc/lib/document"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

// formatKeydoc names keydoc streams among the --from formats of the
// commands that accept either a stream or a text document.
const formatKeydoc = "keydoc"

// commonParams are the flags every document command shares.
type commonParams struct {
	Config string `json:"config" flag:"config" desc:"config file (default: $KEYDOC_CONFIG, else built-in defaults)"`
}

// loadConfig selects the configuration: --config, then the file named
// by KEYDOC_CONFIG, then the built-in defaults.
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		path = os.Getenv(config.EnvironmentVariable)
		cfg, err = config.Load()
	default:
		logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config %s: %w", path, err)
	}
	logger.Debug("config loaded", "path", path, "environment", cfg.Environment)
	return cfg, nil
}

// readInput returns the bytes of the single optional file argument, or
// of stdin when there is none or it is "-". It also returns a name for
// the input, for messages.
//
// When hexMode is true, the raw bytes are treated as hex-encoded data:
// whitespace is stripped and the hex is decoded to binary.
func readInput(stdin io.Reader, args []string, hexMode bool) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", cli.Validation("expected at most one input file, got %d arguments", len(args))
	}

	var data []byte
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		fileData, err := os.ReadFile(name)
		if err != nil {
			return nil, "", cli.Validation("read %s: %w", name, err)
		}
		data = fileData
	} else {
		stdinData, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", cli.Internal("read stdin: %w", err)
		}
		data = stdinData
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, "", cli.Validation("%s: %w", name, err)
		}
		data = decoded
	}

	return data, name, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "04 02 01 04" or "04020104").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// decodeStream decodes a keydoc stream under the configured limits.
func decodeStream(data []byte, name string, cfg *config.Config) (document.Node, error) {
	node, err := keydoc.NewDecoder(cfg.DecodeOptions()).Decode(data)
	if err != nil {
		return nil, cli.Validation("decoding %s: %w", name, err)
	}
	return node, nil
}

// sourceFormats lists the --from values of commands that accept a
// keydoc stream as well as the text formats.
func sourceFormats() []string {
	formats := []string{formatKeydoc}
	for _, format := range convert.ImportFormats {
		formats = append(formats, string(format))
	}
	return formats
}

// readDocument parses data as format: a keydoc stream or one of the
// importable text formats.
func readDocument(format string, data []byte, name string, cfg *config.Config) (document.Node, error) {
	if format == formatKeydoc {
		return decodeStream(data, name, cfg)
	}
	parsed, err := convert.ParseFormat(format, convert.ImportFormats)
	if err != nil {
		return nil, cli.UnknownChoice("from", format, sourceFormats())
	}
	node, err := convert.Import(parsed, data)
	if err != nil {
		return nil, cli.Validation("parsing %s as %s: %w", name, format, err)
	}
	return node, nil
}
