// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for keydoc packages.
//
// [DocumentDiff] compares two document trees with go-cmp and returns a
// readable diff, looking through [document.Object]'s unexported
// fields via its member list. [SampleDocuments] returns a fixed corpus
// of trees covering every node kind and the interesting back-reference
// shapes, shared by the codec, conversion, and CLI tests.
//
// [WriteFile] places test input in a per-test temporary directory.
// [UniqueID] generates monotonically increasing identifiers, useful
// for building many distinct strings without repeating any.
// [RequireReceive] wraps the select-with-timeout pattern for tests
// that fan work out to goroutines.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
