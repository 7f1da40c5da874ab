// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash fingerprints ROM images with keyed BLAKE3.
//
// A fingerprint identifies the exact image a level was read from. It
// is recorded in level snapshots and printed by "foundry rom info", so
// an exported level can be matched back to its source image, and a
// save can tell whether the file on disk changed underneath it.
//
// The API surface:
//
//   - [HashBytes] -- digest of an in-memory image
//   - [HashFile] -- streams a file through the hasher with constant
//     memory use
//   - [FormatDigest] and [ShortDigest] -- hex forms for output
//   - [ParseDigest] -- parses the hex form back, validating length and
//     encoding
//
// This package has no dependencies on other foundry packages.
package binhash
