// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package objectset describes the per-object-set tables that the level
// codec consults but does not own.
//
// Every level belongs to one object set (plains, dungeon, airship, ...).
// The object set decides three things the byte stream alone cannot:
//
//   - how long a structural record is: 3 bytes, or 4 when the record
//     carries a trailing length byte ([Descriptor.RecordLength])
//   - what a record is: a drawable object or a jump marker
//     ([Descriptor.Classify])
//   - where auxiliary level data lives: the base added to the header's
//     structural pointer and the [min, max] range a pointer must fall
//     into to reference a real secondary area ([AuxiliaryArea])
//
// Descriptors also carry entity footprints and display names used for
// hit-testing and listings.
//
// Descriptors are configuration data, not code. A [Registry] is loaded
// from a YAML file ([LoadFile] with a .yaml/.yml path) or a JSONC file
// (.json/.jsonc, comments and trailing commas allowed). [Default]
// returns the registry built from the tables embedded in this package.
//
// The file format has shared sections that apply to every object set
// and per-set sections that take precedence:
//
//	jump_domains: [7]
//	records:
//	  - {domain: 0, first: 0x00, last: 0xFF, length: 3}
//	object_sets:
//	  - number: 1
//	    name: Plains
//	    auxiliary: {base: 0x4000, min: 0x1E512, max: 0x2000F}
//	    records:
//	      - {domain: 2, first: 0x10, last: 0x1F, length: 4}
//
// Rules are matched in order, per-set rules first, so a narrow 4-byte
// range listed on a set overrides a broad shared 3-byte range.
//
// This package depends on no other Foundry packages.
package objectset
