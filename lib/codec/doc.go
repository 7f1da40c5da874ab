// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides foundry's standard CBOR encoding configuration.
//
// foundry serializes level snapshots in two formats:
//
//   - JSON for human-facing output: "level inspect --json" and
//     "level dump" in its default form.
//   - CBOR for tool interchange: "level dump --format cbor" writes one
//     snapshot, and "level watch --format cbor" writes a CBOR sequence
//     with one snapshot per change.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same level always produces identical bytes, so dumps can be compared
// with cmp(1).
//
// Snapshot types carry only `json` tags. fxamacker/cbor reads `json`
// tags as a fallback when `cbor` tags are absent, so one tag controls
// the field names of both formats.
//
//	data, err := codec.Marshal(snapshot)
//	encoder := codec.NewEncoder(os.Stdout)
package codec
