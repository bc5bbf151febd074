// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer, so no two calls in one test binary
// return the same value.
//
//	key := testutil.UniqueID("key") // "key-1", "key-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// UniqueStrings returns count distinct strings built with [UniqueID].
func UniqueStrings(prefix string, count int) []string {
	result := make([]string, count)
	for index := range result {
		result[index] = UniqueID(prefix)
	}
	return result
}
