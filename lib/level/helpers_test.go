// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// testObjectSet is object set 1 with one 4-byte type (domain 2, type
// 0x10), jumps in domain 7 and 3-byte records everywhere else except
// domain 6, which is left undefined.
func testObjectSet() *objectset.Descriptor {
	descriptor := &objectset.Descriptor{
		Number:      1,
		Name:        "Test",
		Auxiliary:   objectset.AuxiliaryArea{Base: 0x4000, Min: 0x1E512, Max: 0x2000F},
		JumpDomains: []int{7},
		Records: []objectset.RecordRule{
			{Domain: 2, First: 0x10, Last: 0x10, Length: 4, Width: 4, Name: "Long ground"},
			{Domain: 0, First: 0x00, Last: 0x0F, Length: 3, Width: 2, Height: 2, Name: "Block"},
		},
		Actors: []objectset.ActorRule{{Type: 0x72, Height: 2, Name: "Goomba"}},
	}
	for domain := range 6 {
		descriptor.Records = append(descriptor.Records,
			objectset.RecordRule{Domain: domain, First: 0x00, Last: 0xFF, Length: 3})
	}
	return descriptor
}

func testRegistry(t *testing.T) *objectset.Registry {
	t.Helper()
	registry, err := objectset.NewRegistry(testObjectSet())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

const (
	testStructuralOffset = 0x20
	testActorOffset      = 0x80
	testImageSize        = 0x100
)

// testHeader is a horizontal level of length 0x40 with palettes 2/1,
// graphics set 5 and both pointer halves set.
var testHeader = Header{0x00, 0xA0, 0x34, 0x12, 0x23, 0x2A, 0x81, 0x45, 0x83}

// testStructural is a long object, a jump, and a short object, then the
// stock two-byte terminator.
var testStructural = []byte{
	0x45, 0x10, 0x10, 0x07, // domain 2, y 5, x 0x10, type 0x10, length 7
	0xE3, 0x21, 0x04, // jump to screen 3
	0x1A, 0x30, 0x02, // domain 0, y 26, x 0x30, type 0x02
	0xFF, 0x01,
}

// testActors are already sorted by x.
var testActors = []byte{
	0x72, 0x08, 0x19,
	0x6C, 0x20, 0x10,
	0xFF, 0x00,
}

func testImage() []byte {
	image := bytes.Repeat([]byte{0xEA}, testImageSize)
	copy(image[testStructuralOffset:], testHeader[:])
	copy(image[testStructuralOffset+HeaderLength:], testStructural)
	copy(image[testActorOffset:], testActors)
	return image
}

func testLocation() Location {
	return Location{
		World:            1,
		Level:            2,
		Name:             "Test Level",
		ObjectSet:        1,
		StructuralOffset: testStructuralOffset,
		ActorOffset:      testActorOffset,
	}
}

func loadTestLevel(t *testing.T) *Level {
	t.Helper()
	level, err := Load(testImage(), testLocation(), testObjectSet())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return level
}
