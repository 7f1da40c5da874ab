// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"encoding/binary"
	"fmt"
)

// HeaderLength is the size of the packed level header.
const HeaderLength = 9

// Level geometry in tiles. The header stores a length code; the
// orientation flag decides whether the length runs horizontally or
// vertically, and the other dimension takes its default.
const (
	MinimumLength = 0x10
	LengthStep    = 0x10
	DefaultWidth  = 16
	DefaultHeight = 27
)

// Header is the packed 9-byte level header. The bytes are the only
// state: every field below is a view computed on read, and every setter
// clears the field's bits and ORs in the new value, so no setter can
// disturb another field.
//
//	byte 0-1  structural auxiliary pointer, little endian
//	byte 2-3  actor auxiliary pointer, little endian
//	byte 4    SSS- LLLL   start row, length code
//	byte 5    -CCA APPP   start column, actor palette, object palette
//	byte 6    PSSV OOOO   pipe exits (inverted), scroll type, vertical, auxiliary object set
//	byte 7    AAAG GGGG   start action, graphics set
//	byte 8    TT-- MMMM   time budget, music
type Header [HeaderLength]byte

// DecodeHeader copies the first [HeaderLength] bytes of data.
func DecodeHeader(data []byte) (Header, error) {
	var header Header
	if len(data) < HeaderLength {
		return header, fmt.Errorf("%w: header needs %d bytes, have %d", ErrMalformedStream, HeaderLength, len(data))
	}
	copy(header[:], data)
	return header, nil
}

// Bytes returns a copy of the packed header.
func (h Header) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

func (h Header) field(index int, mask byte, shift uint) int {
	return int(h[index]&mask) >> shift
}

func (h *Header) setField(index int, mask byte, shift uint, value int) {
	h[index] = h[index]&^mask | byte(value<<shift)&mask
}

func (h *Header) setFlag(index int, mask byte, set bool) {
	if set {
		h[index] |= mask
	} else {
		h[index] &^= mask
	}
}

// StartRow is the index of the player's starting row (3 bits).
func (h Header) StartRow() int { return h.field(4, 0b1110_0000, 5) }

// SetStartRow sets the start row index.
func (h *Header) SetStartRow(index int) { h.setField(4, 0b1110_0000, 5, index) }

// LengthCode is the raw 4-bit length field.
func (h Header) LengthCode() int { return h.field(4, 0b0000_1111, 0) }

// SetLengthCode sets the raw length field.
func (h *Header) SetLengthCode(code int) { h.setField(4, 0b0000_1111, 0, code) }

// Length is the level length in tiles: 0x10 + code*0x10.
func (h Header) Length() int { return MinimumLength + h.LengthCode()*LengthStep }

// SetLength sets the length code that yields length tiles, rounding down
// to the next 0x10 step. It is the inverse of [Header.Length].
func (h *Header) SetLength(length int) {
	code := (length - MinimumLength) / LengthStep
	h.SetLengthCode(max(code, 0))
}

// StartColumn is the index of the player's starting column (2 bits).
func (h Header) StartColumn() int { return h.field(5, 0b0110_0000, 5) }

// SetStartColumn sets the start column index.
func (h *Header) SetStartColumn(index int) { h.setField(5, 0b0110_0000, 5, index) }

// ActorPalette is the palette index used by actors (2 bits).
func (h Header) ActorPalette() int { return h.field(5, 0b0001_1000, 3) }

// SetActorPalette sets the actor palette index.
func (h *Header) SetActorPalette(index int) { h.setField(5, 0b0001_1000, 3, index) }

// ObjectPalette is the palette index used by structural objects (3 bits).
func (h Header) ObjectPalette() int { return h.field(5, 0b0000_0111, 0) }

// SetObjectPalette sets the object palette index.
func (h *Header) SetObjectPalette(index int) { h.setField(5, 0b0000_0111, 0, index) }

// PipeEndsLevel reports whether entering a pipe exits the level. The
// bit is stored inverted.
func (h Header) PipeEndsLevel() bool { return h[6]&0b1000_0000 == 0 }

// SetPipeEndsLevel sets the pipe exit flag.
func (h *Header) SetPipeEndsLevel(ends bool) { h.setFlag(6, 0b1000_0000, !ends) }

// ScrollType is the scroll behavior index (2 bits).
func (h Header) ScrollType() int { return h.field(6, 0b0110_0000, 5) }

// SetScrollType sets the scroll behavior index.
func (h *Header) SetScrollType(index int) { h.setField(6, 0b0110_0000, 5, index) }

// Vertical reports whether the level scrolls vertically.
func (h Header) Vertical() bool { return h[6]&0b0001_0000 != 0 }

// SetVertical sets the orientation flag.
func (h *Header) SetVertical(vertical bool) { h.setFlag(6, 0b0001_0000, vertical) }

// AuxiliaryObjectSet is the object set of the auxiliary area the
// structural pointer refers to (4 bits).
func (h Header) AuxiliaryObjectSet() int { return h.field(6, 0b0000_1111, 0) }

// SetAuxiliaryObjectSet sets the auxiliary object set index.
func (h *Header) SetAuxiliaryObjectSet(index int) { h.setField(6, 0b0000_1111, 0, index) }

// StartAction is the action the player enters the level with (3 bits).
func (h Header) StartAction() int { return h.field(7, 0b1110_0000, 5) }

// SetStartAction sets the start action index.
func (h *Header) SetStartAction(index int) { h.setField(7, 0b1110_0000, 5, index) }

// GraphicsSet is the graphics set index (5 bits).
func (h Header) GraphicsSet() int { return h.field(7, 0b0001_1111, 0) }

// SetGraphicsSet sets the graphics set index.
func (h *Header) SetGraphicsSet(index int) { h.setField(7, 0b0001_1111, 0, index) }

// TimeIndex selects the level's time budget (2 bits).
func (h Header) TimeIndex() int { return h.field(8, 0b1100_0000, 6) }

// SetTimeIndex sets the time budget index.
func (h *Header) SetTimeIndex(index int) { h.setField(8, 0b1100_0000, 6, index) }

// MusicIndex selects the level music (4 bits).
func (h Header) MusicIndex() int { return h.field(8, 0b0000_1111, 0) }

// SetMusicIndex sets the music index.
func (h *Header) SetMusicIndex(index int) { h.setField(8, 0b0000_1111, 0, index) }

// StructuralPointerHalves is the raw 16-bit structural pointer field.
func (h Header) StructuralPointerHalves() uint16 { return binary.LittleEndian.Uint16(h[0:2]) }

// ActorPointerHalves is the raw 16-bit actor pointer field.
func (h Header) ActorPointerHalves() uint16 { return binary.LittleEndian.Uint16(h[2:4]) }

// Size returns the level dimensions in tiles.
func (h Header) Size() (width, height int) {
	if h.Vertical() {
		return DefaultWidth, h.Length()
	}
	return h.Length(), DefaultHeight
}

// context is the part of the header that entity decoding depends on.
func (h Header) context() Context {
	return Context{
		GraphicsSet:   h.GraphicsSet(),
		ObjectPalette: h.ObjectPalette(),
		ActorPalette:  h.ActorPalette(),
		Vertical:      h.Vertical(),
	}
}
