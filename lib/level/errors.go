// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"errors"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

var (
	// ErrMalformedStream is returned when a stream is truncated or its
	// sentinel is not found within [MaxStreamLength] bytes.
	ErrMalformedStream = errors.New("malformed level stream")

	// ErrUnknownRecordType is returned when the object set cannot
	// classify a structural record. It is the same value as
	// objectset.ErrUnknownRecordType so either can be tested with
	// errors.Is.
	ErrUnknownRecordType = objectset.ErrUnknownRecordType

	// ErrCapacityExceeded is returned by write paths that refuse to
	// overflow the on-disk budget. [Level.CapacityExceeded] itself is a
	// predicate and never fails.
	ErrCapacityExceeded = errors.New("level exceeds its on-disk capacity")

	// ErrPositionOutOfRange is returned when coordinates do not fit the
	// record fields: 8 bits of x and 5 bits of y for objects, 8 bits of
	// each for actors.
	ErrPositionOutOfRange = errors.New("position out of record range")

	// ErrDetached is returned when a ROM write is attempted for a level
	// that has no ROM offsets.
	ErrDetached = errors.New("level is not attached to a ROM location")
)
