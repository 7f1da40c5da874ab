// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rom implements the "foundry rom" command group, which reports
// on a whole ROM image: its iNES header, its BLAKE3 fingerprint, and
// whether the configured level catalog fits it.
package rom
