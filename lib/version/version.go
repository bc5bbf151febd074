// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"runtime"

	"github.com/bureau-foundation/keydoc/lib/binhash"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}

// BuildInfo is the machine-readable form of the build information.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`

	// BinaryDigest is the stream-domain BLAKE3 digest of the running
	// executable, or empty when it could not be read.
	BinaryDigest string `json:"binary_digest,omitempty"`
}

// Collect gathers the build information. Failure to hash the running
// binary is not an error: BinaryDigest is left empty.
func Collect() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if digest, _, err := SelfDigest(); err == nil {
		info.BinaryDigest = binhash.FormatDigest(digest)
	}
	return info
}

// SelfDigest returns the digest of the currently running binary and
// the path it was read from.
func SelfDigest() (binhash.Digest, string, error) {
	binaryPath, err := os.Executable()
	if err != nil {
		return binhash.Digest{}, "", fmt.Errorf("locating running binary: %w", err)
	}
	digest, err := binhash.HashFile(binaryPath)
	if err != nil {
		return binhash.Digest{}, binaryPath, err
	}
	return digest, binaryPath, nil
}
