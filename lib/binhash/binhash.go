// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// imageDomainKey keys every digest so ROM fingerprints never collide
// with plain BLAKE3 hashes of the same bytes. The key is the ASCII
// domain name, zero-padded to 32 bytes. Changing it invalidates every
// recorded fingerprint.
var imageDomainKey = [32]byte{
	'f', 'o', 'u', 'n', 'd', 'r', 'y', '.', 'r', 'o', 'm', '.',
	'i', 'm', 'a', 'g', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(imageDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("binhash: " + err.Error())
	}
	return hasher
}

// HashBytes computes the digest of data.
func HashBytes(data []byte) Digest {
	hasher := newHasher()
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashFile computes the digest of the file at path. The file is
// streamed through the hash function, so memory use does not depend on
// the file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex-encoded form of a digest. This is the
// form used in snapshots, exported file names and log output.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ShortDigest returns the first 12 hex characters of a digest for
// display.
func ShortDigest(digest Digest) string {
	return FormatDigest(digest)[:12]
}

// ParseDigest parses a hex-encoded digest. Returns an error if the
// string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
