// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerFormats(t *testing.T) {
	var piped bytes.Buffer
	newLogger(&piped, false, false).Info("encoded", "bytes", 26)
	var record map[string]any
	if err := json.Unmarshal(piped.Bytes(), &record); err != nil {
		t.Fatalf("piped logger did not write JSON: %v (%q)", err, piped.String())
	}
	if record["msg"] != "encoded" || record["bytes"] != float64(26) {
		t.Errorf("record = %v", record)
	}

	var terminal bytes.Buffer
	newLogger(&terminal, true, false).Info("encoded", "bytes", 26)
	if !strings.Contains(terminal.String(), "msg=encoded bytes=26") {
		t.Errorf("terminal logger output = %q, want text format", terminal.String())
	}
}

func TestNewLoggerDebugLevel(t *testing.T) {
	var quiet, verbose bytes.Buffer
	newLogger(&quiet, true, false).Debug("config selected")
	newLogger(&verbose, true, true).Debug("config selected")
	if quiet.Len() != 0 {
		t.Errorf("debug record written at info level: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "config selected") {
		t.Errorf("debug record missing at debug level: %q", verbose.String())
	}
}
