// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package level converts between the packed on-ROM representation of a
// level and an editable in-memory model, and between that model and the
// portable exchange form (.m3l files).
//
// A level is stored as two independent streams:
//
//	structural: [header:9][record]...[0xFF]
//	actor:      [type x y]...[0xFF]
//
// The [Header] is a 9-byte bitfield and stays the single source of
// truth: every field is read through an accessor and written through a
// masking setter. Structural records are 3 or 4 bytes; the length and
// whether a record is an [Object] or a [Jump] marker are looked up in
// the level's object set descriptor (lib/objectset). Actors are always
// 3 bytes and are written sorted by x, which the game relies on.
//
// The central type is [Level]. It is created by [Load] (ROM-backed, with
// offsets) or [DecodeExchange] (detached), mutated through its methods,
// and written back with [Level.Sections] or [EncodeExchange]. Header
// edits go through [Level.EditHeader], which re-derives pointers and
// geometry and re-decodes both streams against the new header, because
// orientation and palette indices are part of every entity's decode
// context.
//
// [Level.CapacityExceeded] compares the current encoded sizes with the
// [Budget] captured at load time. It is a warning for callers, not an
// error: lib/rom refuses to write an overflowing level unless forced.
//
// Decoding errors wrap [ErrMalformedStream] (truncated data, or no
// sentinel within [MaxStreamLength] bytes) or [ErrUnknownRecordType].
// Encoding never fails.
//
// A Level is owned by one editing session and is not safe for
// concurrent use.
package level
