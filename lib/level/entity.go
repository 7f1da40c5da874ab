// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// Sentinel terminates both the structural and the actor stream.
const Sentinel = 0xFF

// Record lengths that do not depend on the object set.
const (
	ActorRecordLength = 3
	JumpRecordLength  = 3
)

// Vertical levels are stored as a column of screens. Record coordinates
// address screens left to right; level coordinates stack them.
const (
	screenWidth  = 16
	screenHeight = 15
)

// Context is the header state entities are decoded against. Renderers
// resolve palettes and graphics from it; decoding itself only needs the
// orientation.
type Context struct {
	GraphicsSet   int
	ObjectPalette int
	ActorPalette  int
	Vertical      bool
}

// Rect is an axis-aligned box in level tiles.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the tile (x, y) lies inside the box.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

// Entity is anything a level stores: objects, jump markers and actors.
type Entity interface {
	// Bytes returns the encoded record.
	Bytes() []byte
	// Bounds returns the entity's footprint in level coordinates.
	Bounds() Rect
	// Description returns a display name.
	Description() string
}

// StructuralRecord is an entity of the structural stream: an [*Object]
// or a [*Jump].
type StructuralRecord interface {
	Entity
	structuralRecord()
}

// Object is a structural level object.
//
//	byte 0  DDDY YYYY  domain, record y
//	byte 1  record x
//	byte 2  type id
//	byte 3  length (only for 4-byte types)
type Object struct {
	domain  int
	typeID  int
	x, y    int
	long    bool
	length  byte
	context Context
	width   int
	height  int
	name    string
}

func newObject(set *objectset.Descriptor, context Context, data []byte) *Object {
	object := &Object{
		domain:  int(data[0] >> 5),
		typeID:  int(data[2]),
		x:       int(data[1]),
		y:       int(data[0] & 0b0001_1111),
		long:    len(data) == objectset.LongRecord,
		context: context,
	}
	if object.long {
		object.length = data[3]
	}
	object.width, object.height = set.ObjectSize(object.domain, object.typeID)
	object.name = set.ObjectName(object.domain, object.typeID)
	return object
}

func (*Object) structuralRecord() {}

// Domain is the 3-bit domain of the object.
func (o *Object) Domain() int { return o.domain }

// Type is the object's type id within its domain.
func (o *Object) Type() int { return o.typeID }

// Long reports whether the object carries a length byte.
func (o *Object) Long() bool { return o.long }

// Length returns the trailing length byte; zero for 3-byte objects.
func (o *Object) Length() byte { return o.length }

// Context returns the decode context the object was built with.
func (o *Object) Context() Context { return o.context }

// RecordPosition returns the coordinates as stored in the record.
func (o *Object) RecordPosition() (x, y int) { return o.x, o.y }

// Position returns the object's level coordinates.
func (o *Object) Position() (x, y int) {
	return levelPosition(o.x, o.y, o.context.Vertical)
}

// objectRecordPosition converts level coordinates to object record
// coordinates, failing when they do not fit the record fields.
func objectRecordPosition(x, y int, vertical bool) (int, int, error) {
	recordX, recordY := recordPosition(x, y, vertical)
	if recordX < 0 || recordX > 0xFF || recordY < 0 || recordY > 0b0001_1111 {
		return 0, 0, fmt.Errorf("object at (%d, %d): %w", x, y, ErrPositionOutOfRange)
	}
	return recordX, recordY, nil
}

func checkActorPosition(x, y int) error {
	if x < 0 || x > 0xFF || y < 0 || y > 0xFF {
		return fmt.Errorf("actor at (%d, %d): %w", x, y, ErrPositionOutOfRange)
	}
	return nil
}

// Bytes encodes the object record.
func (o *Object) Bytes() []byte {
	data := []byte{byte(o.domain<<5) | byte(o.y)&0b0001_1111, byte(o.x), byte(o.typeID)}
	if o.long {
		data = append(data, o.length)
	}
	return data
}

// Bounds returns the object's footprint.
func (o *Object) Bounds() Rect {
	x, y := o.Position()
	return Rect{X: x, Y: y, Width: o.width, Height: o.height}
}

// Description returns the object's display name.
func (o *Object) Description() string { return o.name }

// Jump is a jump marker: a screen-wide pointer to where the player
// reappears after leaving through a pipe or door.
//
//	byte 0  111- SSSS  domain 7, screen index
//	byte 1  AAAA HHHH  exit action, exit column
//	byte 2  ---- VVVV  exit row
type Jump struct {
	data    [JumpRecordLength]byte
	context Context
}

// NewJump builds a jump marker from its properties.
func NewJump(screen, exitAction, exitHorizontal, exitVertical int) *Jump {
	jump := &Jump{}
	jump.data[0] = 0b1110_0000 | byte(screen)&0x0F
	jump.data[1] = byte(exitAction)<<4 | byte(exitHorizontal)&0x0F
	jump.data[2] = byte(exitVertical) & 0x0F
	return jump
}

func newJump(context Context, data []byte) *Jump {
	jump := &Jump{context: context}
	copy(jump.data[:], data)
	return jump
}

func (*Jump) structuralRecord() {}

// ScreenIndex is the screen the marker applies to.
func (j *Jump) ScreenIndex() int { return int(j.data[0] & 0x0F) }

// ExitAction is the action the player exits with.
func (j *Jump) ExitAction() int { return int(j.data[1] >> 4) }

// ExitHorizontal is the exit column.
func (j *Jump) ExitHorizontal() int { return int(j.data[1] & 0x0F) }

// ExitVertical is the exit row.
func (j *Jump) ExitVertical() int { return int(j.data[2] & 0x0F) }

// Bytes returns the raw jump record.
func (j *Jump) Bytes() []byte { return append([]byte(nil), j.data[:]...) }

// Bounds returns the screen the marker applies to.
func (j *Jump) Bounds() Rect {
	if j.context.Vertical {
		return Rect{X: 0, Y: j.ScreenIndex() * screenHeight, Width: screenWidth, Height: screenHeight}
	}
	return Rect{X: j.ScreenIndex() * screenWidth, Y: 0, Width: screenWidth, Height: DefaultHeight}
}

// Description names the marker by its screen.
func (j *Jump) Description() string {
	return fmt.Sprintf("Jump on screen %d", j.ScreenIndex())
}

// Actor is an enemy or item placed in the actor stream.
//
//	byte 0  type id
//	byte 1  x
//	byte 2  y
type Actor struct {
	typeID  int
	x, y    int
	context Context
	width   int
	height  int
	name    string
}

func newActor(set *objectset.Descriptor, context Context, data []byte) *Actor {
	actor := &Actor{
		typeID:  int(data[0]),
		x:       int(data[1]),
		y:       int(data[2]),
		context: context,
	}
	actor.width, actor.height = set.ActorSize(actor.typeID)
	actor.name = set.ActorName(actor.typeID)
	return actor
}

// Type is the actor's type id.
func (a *Actor) Type() int { return a.typeID }

// Position returns the actor's coordinates.
func (a *Actor) Position() (x, y int) { return a.x, a.y }

// Context returns the decode context the actor was built with.
func (a *Actor) Context() Context { return a.context }

// Bytes encodes the actor record.
func (a *Actor) Bytes() []byte { return []byte{byte(a.typeID), byte(a.x), byte(a.y)} }

// Bounds returns the actor's footprint.
func (a *Actor) Bounds() Rect {
	return Rect{X: a.x, Y: a.y, Width: a.width, Height: a.height}
}

// Description returns the actor's display name.
func (a *Actor) Description() string { return a.name }

func levelPosition(x, y int, vertical bool) (int, int) {
	if !vertical {
		return x, y
	}
	return x % screenWidth, y + (x/screenWidth)*screenHeight
}

func recordPosition(x, y int, vertical bool) (int, int) {
	if !vertical {
		return x, y
	}
	screen := y / screenHeight
	return x + screen*screenWidth, y - screen*screenHeight
}
