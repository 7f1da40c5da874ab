// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch reports changes to a file on disk, coalescing bursts
// of writes into single notifications.
//
// It backs "foundry level watch", which re-decodes an exchange file
// whenever a level editor rewrites it. Notifications carry no payload;
// the consumer re-reads the file. The debounce timer runs on an
// injected [clock.Clock] so tests can drive it.
package watch
