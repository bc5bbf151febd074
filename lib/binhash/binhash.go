// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/keydoc/lib/document"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain keys are the ASCII domain name zero-padded to 32 bytes.
// Changing one invalidates every stored digest in that domain.
var (
	documentDomainKey = domainKey{
		'k', 'e', 'y', 'd', 'o', 'c', '.', 'd', 'o', 'c', 'u', 'm', 'e', 'n', 't', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	streamDomainKey = domainKey{
		'k', 'e', 'y', 'd', 'o', 'c', '.', 's', 't', 'r', 'e', 'a', 'm', 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// HashDocument encodes node with default keydoc options and returns
// the document-domain digest of the result. Encoding is deterministic,
// so equal documents (same members in the same order) hash equally.
func HashDocument(node document.Node) (Digest, error) {
	data, err := keydoc.Encode(node)
	if err != nil {
		return Digest{}, fmt.Errorf("encoding document for hashing: %w", err)
	}
	return keyedHash(documentDomainKey, data), nil
}

// HashStream returns the stream-domain digest of data.
func HashStream(data []byte) Digest {
	return keyedHash(streamDomainKey, data)
}

// HashFile computes the stream-domain digest of the file at path,
// streaming it through the hasher with constant memory.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher(streamDomainKey)
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex-encoded form of a digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// FormatShort returns "kd-" followed by the first 12 hex characters,
// for log lines and listings where the full digest is noise.
func FormatShort(digest Digest) string {
	return "kd-" + hex.EncodeToString(digest[:6])
}

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}

func keyedHash(key domainKey, data []byte) Digest {
	hasher := newHasher(key)
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// newHasher returns a keyed hasher. NewKeyed fails only for a key that
// is not 32 bytes, which domainKey rules out.
func newHasher(key domainKey) *blake3.Hasher {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}
