// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rom reads and writes iNES ROM images holding SMB3 levels.
//
// An [Image] is the whole file held in memory. Levels are loaded from
// it through a catalog entry or an explicit location, edited with the
// level package, and written back with [Image.WriteLevel] or replaced
// wholesale from an exchange file with [Image.ImportLevel]. Writes that
// would overflow a level's on-disk budget are refused unless forced.
//
// [Image.Save] is the only operation that touches the disk after
// [Open]. It takes an exclusive flock on the destination, refuses to
// overwrite a file that changed since it was read, optionally keeps a
// ".bak" copy, and replaces the file atomically by rename.
//
// Fingerprints are BLAKE3 digests from the binhash package.
package rom
