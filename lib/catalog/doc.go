// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog lists the levels of a ROM: their world and level
// numbers, display names, object sets and the file offsets of their
// structural and actor data.
//
// A catalog is a YAML (or JSONC) file:
//
//	levels:
//	  - world: 1
//	    level: 1
//	    name: Level 1
//	    object_set: 1
//	    object_offset: 0x1FB92
//	    actor_offset: 0xC537
//
// The actor offset in a catalog points at a one-byte prefix; the actor
// records start one byte later. [Entry.Location] applies that shift, so
// the [level.Location] it returns addresses the first record.
//
// World 0 holds bonus and auxiliary areas, which are listed by their
// bare name.
package catalog
