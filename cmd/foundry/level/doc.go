// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package level implements the "foundry level" command group: listing
// catalog levels, inspecting a level in a ROM, moving levels between
// ROMs through exchange (.m3l) files, and dumping or watching exchange
// files as snapshots.
package level
