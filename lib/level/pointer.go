// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"encoding/binary"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// Fixed file offsets added to the header's pointer halves. The
// structural pointer additionally gets the object set's base.
const (
	StructuralPointerOffset = 0x10010
	ActorPointerOffset      = 0x10
)

// Pointers are the resolved auxiliary pointers of a header.
type Pointers struct {
	// Structural is the file offset of the auxiliary area's structural
	// data.
	Structural int `json:"structural"`
	// Actor is the file offset of the auxiliary area's actor data.
	Actor int `json:"actor"`
	// HasAuxiliaryArea reports whether Structural falls inside the
	// object set's auxiliary range. A pointer outside the range is not
	// an error; the level simply has no auxiliary area.
	HasAuxiliaryArea bool `json:"has_auxiliary_area"`
}

// ResolvePointers computes both auxiliary pointers of header and
// classifies the structural one against area.
func ResolvePointers(header Header, area objectset.AuxiliaryArea) Pointers {
	structural := int(header.StructuralPointerHalves()) + StructuralPointerOffset + area.Base
	return Pointers{
		Structural:       structural,
		Actor:            int(header.ActorPointerHalves()) + ActorPointerOffset,
		HasAuxiliaryArea: area.Contains(structural),
	}
}

// SetStructuralPointer stores the halves that make [ResolvePointers]
// return pointer for the given area. Only the low 16 bits of the
// difference are representable.
func (h *Header) SetStructuralPointer(pointer int, area objectset.AuxiliaryArea) {
	raw := pointer - StructuralPointerOffset - area.Base
	binary.LittleEndian.PutUint16(h[0:2], uint16(raw))
}

// SetActorPointer stores the halves that resolve to pointer.
func (h *Header) SetActorPointer(pointer int) {
	binary.LittleEndian.PutUint16(h[2:4], uint16(pointer-ActorPointerOffset))
}
