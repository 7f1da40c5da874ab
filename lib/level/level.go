// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/foundry/lib/objectset"
)

// DefaultActorType is the actor created by [Level.CreateActorAt].
const DefaultActorType = 0x72

// Location identifies a level and where its streams live in a ROM.
type Location struct {
	World     int
	Level     int
	Name      string
	ObjectSet int
	// StructuralOffset is the file offset of the header. Structural
	// records follow the header.
	StructuralOffset int
	// ActorOffset is the file offset of the first actor record.
	ActorOffset int
}

// DisplayName formats the location for listings.
func (l Location) DisplayName() string {
	if l.World == 0 {
		return l.Name
	}
	return fmt.Sprintf("Level %d-%d, '%s'", l.World, l.Level, l.Name)
}

// Budget is the number of bytes each stream occupied when the level was
// loaded, sentinels excluded. Edits never change it.
type Budget struct {
	Structural int `json:"structural"`
	Actor      int `json:"actor"`
}

// Section is an encoded stream and the file offset it belongs at.
type Section struct {
	Offset int
	Data   []byte
}

// Level is an editable level: one header, the structural stream and the
// actor stream.
//
// Structural records are kept in stream order. Among objects that order
// is the z-order: later objects are drawn on top, and hit-testing walks
// backwards so the topmost object wins. Actors keep insertion order in
// memory and are sorted by x only when encoded.
//
// A Level is not safe for concurrent use.
type Level struct {
	location Location
	attached bool
	set      *objectset.Descriptor

	header   Header
	pointers Pointers
	context  Context

	records []StructuralRecord
	actors  []*Actor

	budget Budget
	dirty  bool
}

// New returns an empty level with the given header. The level is
// detached: it has no ROM offsets.
func New(location Location, set *objectset.Descriptor, header Header) (*Level, error) {
	if err := checkObjectSet(location, set); err != nil {
		return nil, err
	}
	level := &Level{location: location, set: set, header: header}
	level.deriveHeader()
	return level, nil
}

// Load decodes the level at location from a ROM image. The on-disk
// budget is captured from the decoded streams.
func Load(image []byte, location Location, set *objectset.Descriptor) (*Level, error) {
	if err := checkObjectSet(location, set); err != nil {
		return nil, err
	}
	if location.StructuralOffset < 0 || location.StructuralOffset+HeaderLength > len(image) {
		return nil, fmt.Errorf("%s: structural offset 0x%X outside image of %d bytes", location.DisplayName(), location.StructuralOffset, len(image))
	}
	if location.ActorOffset < 0 || location.ActorOffset >= len(image) {
		return nil, fmt.Errorf("%s: actor offset 0x%X outside image of %d bytes", location.DisplayName(), location.ActorOffset, len(image))
	}

	header, err := DecodeHeader(image[location.StructuralOffset:])
	if err != nil {
		return nil, err
	}
	level := &Level{location: location, attached: true, set: set, header: header}
	level.deriveHeader()

	structural := image[location.StructuralOffset+HeaderLength:]
	if err := level.decode(structural, image[location.ActorOffset:]); err != nil {
		return nil, fmt.Errorf("%s: %w", location.DisplayName(), err)
	}
	level.captureBudget()
	return level, nil
}

func checkObjectSet(location Location, set *objectset.Descriptor) error {
	if set == nil {
		return fmt.Errorf("%s: no object set descriptor", location.DisplayName())
	}
	if set.Number != location.ObjectSet {
		return fmt.Errorf("%s: object set %d does not match descriptor %d", location.DisplayName(), location.ObjectSet, set.Number)
	}
	return nil
}

// decode replaces both streams with the decoded contents of structural
// and actors under the current header context.
func (l *Level) decode(structural, actors []byte) error {
	records, _, err := DecodeStructural(structural, l.set, l.context)
	if err != nil {
		return err
	}
	decodedActors, _, err := DecodeActors(actors, l.set, l.context)
	if err != nil {
		return err
	}
	l.records = records
	l.actors = decodedActors
	return nil
}

func (l *Level) captureBudget() {
	l.budget = Budget{
		Structural: structuralSize(l.records),
		Actor:      len(l.actors) * ActorRecordLength,
	}
}

// deriveHeader recomputes every value derived from the header bytes.
func (l *Level) deriveHeader() {
	l.pointers = ResolvePointers(l.header, l.set.Auxiliary)
	l.context = l.header.context()
}

// recompute re-derives the header views and re-decodes both streams
// against the new context. Entities are updated in place so references
// held by callers stay valid. Actors keep their in-memory order.
func (l *Level) recompute() error {
	structural := EncodeStructural(l.records)
	actors := encodeActors(l.actors)

	l.deriveHeader()

	records, _, err := DecodeStructural(structural, l.set, l.context)
	if err != nil {
		return err
	}
	decodedActors, _, err := DecodeActors(actors, l.set, l.context)
	if err != nil {
		return err
	}

	for index, record := range records {
		switch fresh := record.(type) {
		case *Object:
			if existing, ok := l.records[index].(*Object); ok {
				*existing = *fresh
				records[index] = existing
			}
		case *Jump:
			if existing, ok := l.records[index].(*Jump); ok {
				*existing = *fresh
				records[index] = existing
			}
		}
	}
	for index, fresh := range decodedActors {
		*l.actors[index] = *fresh
	}
	l.records = records
	return nil
}

// Location returns the level's identity and offsets.
func (l *Level) Location() Location { return l.location }

// Name returns the display name.
func (l *Level) Name() string { return l.location.DisplayName() }

// Attached reports whether the level has meaningful ROM offsets.
func (l *Level) Attached() bool { return l.attached }

// ObjectSet returns the level's object set descriptor.
func (l *Level) ObjectSet() *objectset.Descriptor { return l.set }

// Header returns a copy of the header.
func (l *Level) Header() Header { return l.header }

// Pointers returns the resolved auxiliary pointers.
func (l *Level) Pointers() Pointers { return l.pointers }

// Context returns the decode context derived from the header.
func (l *Level) Context() Context { return l.context }

// Size returns the level dimensions in tiles.
func (l *Level) Size() (width, height int) { return l.header.Size() }

// Budget returns the on-disk budget captured at load time.
func (l *Level) Budget() Budget { return l.budget }

// Dirty reports whether the level changed since it was loaded or last
// marked clean.
func (l *Level) Dirty() bool { return l.dirty }

// MarkClean clears the dirty flag, typically after a save.
func (l *Level) MarkClean() { l.dirty = false }

// EditHeader applies edit to a copy of the header. If the bytes did not
// change nothing happens. Otherwise the new header is installed and
// everything derived from it is recomputed, including a re-decode of
// both streams. On error the previous header is kept.
func (l *Level) EditHeader(edit func(header *Header)) error {
	next := l.header
	edit(&next)
	if next == l.header {
		return nil
	}

	previous := l.header
	l.header = next
	if err := l.recompute(); err != nil {
		l.header = previous
		l.deriveHeader()
		return fmt.Errorf("applying header edit: %w", err)
	}
	l.dirty = true
	return nil
}

// SetStructuralPointer points the level at a new auxiliary structural
// area.
func (l *Level) SetStructuralPointer(pointer int) error {
	if pointer == l.pointers.Structural {
		return nil
	}
	return l.EditHeader(func(header *Header) {
		header.SetStructuralPointer(pointer, l.set.Auxiliary)
	})
}

// SetActorPointer points the level at a new auxiliary actor area.
func (l *Level) SetActorPointer(pointer int) error {
	if pointer == l.pointers.Actor {
		return nil
	}
	return l.EditHeader(func(header *Header) {
		header.SetActorPointer(pointer)
	})
}

// Reload re-decodes both streams from their current encoding.
func (l *Level) Reload() error {
	return l.recompute()
}

// Records returns the structural stream in order.
func (l *Level) Records() []StructuralRecord { return slices.Clone(l.records) }

// Objects returns the structural objects in z-order.
func (l *Level) Objects() []*Object {
	var objects []*Object
	for _, record := range l.records {
		if object, ok := record.(*Object); ok {
			objects = append(objects, object)
		}
	}
	return objects
}

// Jumps returns the jump markers in stream order.
func (l *Level) Jumps() []*Jump {
	var jumps []*Jump
	for _, record := range l.records {
		if jump, ok := record.(*Jump); ok {
			jumps = append(jumps, jump)
		}
	}
	return jumps
}

// Actors returns the actors in insertion order.
func (l *Level) Actors() []*Actor { return slices.Clone(l.actors) }

// AddObject creates an object at level coordinates (x, y) and inserts
// it before the index-th object; a negative or out-of-range index
// appends. length is stored only when the object set makes the type a
// 4-byte record. Coordinates that do not fit the record fields fail
// with [ErrPositionOutOfRange].
func (l *Level) AddObject(domain, typeID, x, y int, length byte, index int) (*Object, error) {
	kind, err := l.set.Classify(domain, typeID)
	if err != nil {
		return nil, err
	}
	if kind != objectset.KindObject {
		return nil, fmt.Errorf("domain %d type 0x%02X is a %s, not an object", domain, typeID, kind)
	}
	recordLength, err := l.set.RecordLength(domain, typeID)
	if err != nil {
		return nil, err
	}

	recordX, recordY, err := objectRecordPosition(x, y, l.context.Vertical)
	if err != nil {
		return nil, err
	}
	data := []byte{byte(domain<<5) | byte(recordY), byte(recordX), byte(typeID)}
	if recordLength == objectset.LongRecord {
		data = append(data, length)
	}
	object := newObject(l.set, l.context, data)

	l.records = slices.Insert(l.records, l.recordIndexOfObject(index), StructuralRecord(object))
	l.dirty = true
	return object, nil
}

// recordIndexOfObject maps an object index to a position in the
// structural stream.
func (l *Level) recordIndexOfObject(index int) int {
	if index < 0 {
		return len(l.records)
	}
	count := 0
	for position, record := range l.records {
		if _, ok := record.(*Object); ok {
			if count == index {
				return position
			}
			count++
		}
	}
	return len(l.records)
}

// AddJump appends a zeroed jump marker.
func (l *Level) AddJump() *Jump {
	jump := NewJump(0, 0, 0, 0)
	jump.context = l.context
	l.records = append(l.records, jump)
	l.dirty = true
	return jump
}

// AddActor creates an actor and inserts it at index; a negative or
// out-of-range index appends. Coordinates outside 0-255 fail with
// [ErrPositionOutOfRange].
func (l *Level) AddActor(typeID, x, y, index int) (*Actor, error) {
	if err := checkActorPosition(x, y); err != nil {
		return nil, err
	}
	actor := newActor(l.set, l.context, []byte{byte(typeID), byte(x), byte(y)})
	if index < 0 || index > len(l.actors) {
		index = len(l.actors)
	}
	l.actors = slices.Insert(l.actors, index, actor)
	l.dirty = true
	return actor, nil
}

// CreateObjectAt appends an object of the given type with no length.
func (l *Level) CreateObjectAt(x, y, domain, typeID int) (*Object, error) {
	return l.AddObject(domain, typeID, x, y, 0, -1)
}

// CreateActorAt appends a [DefaultActorType] actor.
func (l *Level) CreateActorAt(x, y int) (*Actor, error) {
	return l.AddActor(DefaultActorType, x, y, -1)
}

// Remove deletes entity from the level. Objects and jumps are searched
// first, then actors. Removing nil or an entity the level does not hold
// is a no-op that returns false.
func (l *Level) Remove(entity Entity) bool {
	if entity == nil {
		return false
	}
	if record, ok := entity.(StructuralRecord); ok {
		if index := slices.Index(l.records, record); index >= 0 {
			l.records = slices.Delete(l.records, index, index+1)
			l.dirty = true
			return true
		}
	}
	if actor, ok := entity.(*Actor); ok {
		if index := slices.Index(l.actors, actor); index >= 0 {
			l.actors = slices.Delete(l.actors, index, index+1)
			l.dirty = true
			return true
		}
	}
	return false
}

// Paste adds a fresh copy of entity, which may come from another level,
// at the entity's own position.
func (l *Level) Paste(entity Entity) (Entity, error) {
	bounds := entity.Bounds()
	return l.PasteAt(bounds.X, bounds.Y, entity)
}

// PasteAt adds a fresh copy of entity at level coordinates (x, y). The
// copy is rebuilt from the source's type under this level's object set
// and context; it never aliases the source.
func (l *Level) PasteAt(x, y int, entity Entity) (Entity, error) {
	switch source := entity.(type) {
	case *Object:
		return l.AddObject(source.domain, source.typeID, x, y, source.length, -1)
	case *Actor:
		actor, err := l.AddActor(source.typeID, x, y, -1)
		if err != nil {
			return nil, err
		}
		return actor, nil
	case *Jump:
		jump := newJump(l.context, source.data[:])
		l.records = append(l.records, jump)
		l.dirty = true
		return jump, nil
	default:
		return nil, fmt.Errorf("cannot paste %T", entity)
	}
}

// Move places entity at level coordinates (x, y). It returns false,
// leaving the entity where it was, when the level does not hold entity
// or the coordinates do not fit its record fields. Jumps have no
// position and are not moved.
func (l *Level) Move(entity Entity, x, y int) bool {
	switch target := entity.(type) {
	case *Object:
		if !slices.Contains(l.records, StructuralRecord(target)) {
			return false
		}
		recordX, recordY, err := objectRecordPosition(x, y, target.context.Vertical)
		if err != nil {
			return false
		}
		target.x, target.y = recordX, recordY
	case *Actor:
		if !slices.Contains(l.actors, target) || checkActorPosition(x, y) != nil {
			return false
		}
		target.x, target.y = x, y
	default:
		return false
	}
	l.dirty = true
	return true
}

// IndexOf returns the index of an object among the objects, or the
// object count plus the actor's index for actors, or -1.
func (l *Level) IndexOf(entity Entity) int {
	objects := l.Objects()
	if object, ok := entity.(*Object); ok {
		if index := slices.Index(objects, object); index >= 0 {
			return index
		}
	}
	if actor, ok := entity.(*Actor); ok {
		if index := slices.Index(l.actors, actor); index >= 0 {
			return len(objects) + index
		}
	}
	return -1
}

// Get returns the entity at index. Indices below the object count
// address objects. Larger indices address actors modulo the object
// count, not index minus the object count, so Get is not the inverse of
// [Level.IndexOf] and distinct indices can alias the same actor. Level
// data tools have always indexed this way and callers depend on it.
// Get returns nil when the computed index is out of range or the level
// has no objects.
func (l *Level) Get(index int) Entity {
	objects := l.Objects()
	if index < 0 {
		return nil
	}
	if index < len(objects) {
		return objects[index]
	}
	if len(objects) == 0 {
		return nil
	}
	actorIndex := index % len(objects)
	if actorIndex >= len(l.actors) {
		return nil
	}
	return l.actors[actorIndex]
}

// EntityAt returns the topmost object or actor covering tile (x, y), or
// nil. Actors are above objects.
func (l *Level) EntityAt(x, y int) Entity {
	for index := len(l.actors) - 1; index >= 0; index-- {
		if l.actors[index].Bounds().Contains(x, y) {
			return l.actors[index]
		}
	}
	objects := l.Objects()
	for index := len(objects) - 1; index >= 0; index-- {
		if objects[index].Bounds().Contains(x, y) {
			return objects[index]
		}
	}
	return nil
}

// Names returns the descriptions of all objects followed by all actors.
func (l *Level) Names() []string {
	var names []string
	for _, object := range l.Objects() {
		names = append(names, object.Description())
	}
	for _, actor := range l.actors {
		names = append(names, actor.Description())
	}
	return names
}

// StructuralSize is the current encoded size of the structural records,
// sentinel excluded.
func (l *Level) StructuralSize() int { return structuralSize(l.records) }

// ActorSize is the current encoded size of the actor records, sentinel
// excluded.
func (l *Level) ActorSize() int { return len(l.actors) * ActorRecordLength }

// CapacityExceeded reports whether writing the level back would spill
// past either stream's on-disk budget.
func (l *Level) CapacityExceeded() bool {
	return l.ActorSize() > l.budget.Actor || l.StructuralSize() > l.budget.Structural
}

// Sections returns the encoded header plus structural stream and the
// encoded actor stream with their ROM offsets.
func (l *Level) Sections() (structural, actors Section) {
	structuralData := append(l.header.Bytes(), EncodeStructural(l.records)...)
	return Section{Offset: l.location.StructuralOffset, Data: structuralData},
		Section{Offset: l.location.ActorOffset, Data: EncodeActors(l.actors)}
}

// Attach gives a detached level the offsets and budget of the ROM
// location it will be written to.
func (l *Level) Attach(location Location, budget Budget) error {
	if err := checkObjectSet(location, l.set); err != nil {
		return err
	}
	l.location = location
	l.budget = budget
	l.attached = true
	l.dirty = true
	return nil
}
