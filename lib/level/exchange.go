// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// ExchangePrefixLength is the number of identity bytes (world, level,
// object set) ahead of the header in the exchange form.
const ExchangePrefixLength = 3

// EncodeExchange serializes a level into the portable exchange form:
//
//	[world][level][object set][header:9][structural records][0xFF][actor records, x-sorted][0xFF]
//
// Only a single sentinel byte is written after each stream, even though
// stock ROM data follows the structural sentinel with a second byte.
func EncodeExchange(level *Level) []byte {
	location := level.location
	data := []byte{byte(location.World), byte(location.Level), byte(location.ObjectSet)}
	data = append(data, level.header[:]...)
	data = append(data, EncodeStructural(level.records)...)
	return append(data, EncodeActors(level.actors)...)
}

// DecodeExchange decodes the exchange form. The object set byte selects
// the descriptor from registry. The structural stream's length is not
// stored, so it is decoded first and the actor stream starts after its
// sentinel. The returned level is detached, and its budget is the size
// of the decoded streams.
func DecodeExchange(data []byte, registry *objectset.Registry) (*Level, error) {
	if len(data) < ExchangePrefixLength+HeaderLength+1 {
		return nil, fmt.Errorf("%w: exchange data is %d bytes, need at least %d",
			ErrMalformedStream, len(data), ExchangePrefixLength+HeaderLength+1)
	}

	location := Location{
		World:     int(data[0]),
		Level:     int(data[1]),
		ObjectSet: int(data[2]),
	}
	location.Name = fmt.Sprintf("%d-%d", location.World, location.Level)

	set, err := registry.Lookup(location.ObjectSet)
	if err != nil {
		return nil, err
	}

	header, err := DecodeHeader(data[ExchangePrefixLength:])
	if err != nil {
		return nil, err
	}
	level := &Level{location: location, set: set, header: header}
	level.deriveHeader()

	body := data[ExchangePrefixLength+HeaderLength:]
	records, consumed, err := DecodeStructural(body, set, level.context)
	if err != nil {
		return nil, fmt.Errorf("exchange structural stream: %w", err)
	}
	actors, _, err := DecodeActors(body[consumed:], set, level.context)
	if err != nil {
		return nil, fmt.Errorf("exchange actor stream: %w", err)
	}
	level.records = records
	level.actors = actors
	level.captureBudget()
	return level, nil
}
