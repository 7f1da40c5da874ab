// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// MaxStreamLength bounds how far a decoder scans for the sentinel.
// ROM-backed streams are slices to the end of the image, so without a
// bound corrupt data would be read until the image runs out.
const MaxStreamLength = 0x2000

// DecodeStructural decodes the structural stream at the start of data
// (the bytes right after the header). It returns the records in stream
// order and the number of bytes consumed, sentinel included.
func DecodeStructural(data []byte, set *objectset.Descriptor, context Context) ([]StructuralRecord, int, error) {
	limit := min(len(data), MaxStreamLength)
	if limit == 0 {
		return nil, 0, fmt.Errorf("%w: structural stream is empty", ErrMalformedStream)
	}
	if data[0] == Sentinel {
		return nil, 1, nil
	}

	var records []StructuralRecord
	position := 0
	for {
		if position+JumpRecordLength > limit {
			return nil, 0, fmt.Errorf("%w: structural record at offset %d is truncated", ErrMalformedStream, position)
		}
		domain := int(data[position] >> 5)
		typeID := int(data[position+2])

		kind, err := set.Classify(domain, typeID)
		if err != nil {
			return nil, 0, fmt.Errorf("structural record at offset %d: %w", position, err)
		}

		switch kind {
		case objectset.KindJump:
			records = append(records, newJump(context, data[position:position+JumpRecordLength]))
			position += JumpRecordLength
		default:
			length, err := set.RecordLength(domain, typeID)
			if err != nil {
				return nil, 0, fmt.Errorf("structural record at offset %d: %w", position, err)
			}
			if position+length > limit {
				return nil, 0, fmt.Errorf("%w: %d-byte record at offset %d is truncated", ErrMalformedStream, length, position)
			}
			records = append(records, newObject(set, context, data[position:position+length]))
			position += length
		}

		if position >= limit {
			return nil, 0, fmt.Errorf("%w: no structural sentinel within %d bytes", ErrMalformedStream, limit)
		}
		if data[position] == Sentinel {
			return records, position + 1, nil
		}
	}
}

// EncodeStructural concatenates records in order and appends the
// sentinel.
func EncodeStructural(records []StructuralRecord) []byte {
	data := make([]byte, 0, structuralSize(records)+1)
	for _, record := range records {
		data = append(data, record.Bytes()...)
	}
	return append(data, Sentinel)
}

// DecodeActors decodes the actor stream at the start of data and
// returns the actors in stream order and the bytes consumed, sentinel
// included. Only the first byte of each record is checked for the
// sentinel: the stock data follows it with 0x00 or 0x01, but data
// written by other editors does not.
func DecodeActors(data []byte, set *objectset.Descriptor, context Context) ([]*Actor, int, error) {
	limit := min(len(data), MaxStreamLength)

	var actors []*Actor
	position := 0
	for {
		if position >= limit {
			return nil, 0, fmt.Errorf("%w: no actor sentinel within %d bytes", ErrMalformedStream, limit)
		}
		if data[position] == Sentinel {
			return actors, position + 1, nil
		}
		if position+ActorRecordLength > limit {
			return nil, 0, fmt.Errorf("%w: actor record at offset %d is truncated", ErrMalformedStream, position)
		}
		actors = append(actors, newActor(set, context, data[position:position+ActorRecordLength]))
		position += ActorRecordLength
	}
}

// EncodeActors encodes actors sorted by x and appends the sentinel. The
// sort is stable, so actors sharing an x keep their relative order. The
// game requires the x ordering; actors is not modified.
func EncodeActors(actors []*Actor) []byte {
	return encodeActors(sortedActors(actors))
}

func encodeActors(actors []*Actor) []byte {
	data := make([]byte, 0, len(actors)*ActorRecordLength+1)
	for _, actor := range actors {
		data = append(data, actor.Bytes()...)
	}
	return append(data, Sentinel)
}

func sortedActors(actors []*Actor) []*Actor {
	sorted := slices.Clone(actors)
	slices.SortStableFunc(sorted, func(a, b *Actor) int {
		return cmp.Compare(a.x, b.x)
	})
	return sorted
}

// structuralSize is the encoded size of records without the sentinel.
func structuralSize(records []StructuralRecord) int {
	size := 0
	for _, record := range records {
		switch record := record.(type) {
		case *Object:
			if record.long {
				size += objectset.LongRecord
			} else {
				size += objectset.ShortRecord
			}
		case *Jump:
			size += JumpRecordLength
		}
	}
	return size
}
