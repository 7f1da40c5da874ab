// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for foundry packages.
//
// [WriteFile] writes a fixture under a test's temporary directory and
// returns its path. [MustHex] decodes whitespace-separated hex, so byte
// stream fixtures can be laid out one record per line. [SampleROM] and
// [SampleCatalogYAML] are a minimal iNES image with one level and the
// catalog that addresses it, shared by the ROM and CLI tests.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that watcher tests
// do not need direct time.After calls.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no foundry-internal dependencies.
package testutil
