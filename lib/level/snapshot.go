// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

// Snapshot is a read-only, serializable view of a level used for CLI
// output (JSON) and tool interchange (CBOR via lib/codec).
type Snapshot struct {
	World     int    `json:"world"`
	Level     int    `json:"level"`
	Name      string `json:"name"`
	ObjectSet int    `json:"object_set"`
	Attached  bool   `json:"attached"`

	StructuralOffset int `json:"structural_offset,omitempty"`
	ActorOffset      int `json:"actor_offset,omitempty"`

	Header   HeaderSnapshot `json:"header"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Pointers Pointers       `json:"pointers"`

	Objects []ObjectSnapshot `json:"objects"`
	Jumps   []JumpSnapshot   `json:"jumps"`
	Actors  []ActorSnapshot  `json:"actors"`

	Budget           Budget `json:"budget"`
	StructuralSize   int    `json:"structural_size"`
	ActorSize        int    `json:"actor_size"`
	CapacityExceeded bool   `json:"capacity_exceeded"`

	// Source identifies the data the level was read from, such as a ROM
	// fingerprint. Set by the caller.
	Source string `json:"source,omitempty"`
}

// HeaderSnapshot lists every semantic header field.
type HeaderSnapshot struct {
	Raw                []byte `json:"raw"`
	StartRow           int    `json:"start_row"`
	Length             int    `json:"length"`
	StartColumn        int    `json:"start_column"`
	ActorPalette       int    `json:"actor_palette"`
	ObjectPalette      int    `json:"object_palette"`
	PipeEndsLevel      bool   `json:"pipe_ends_level"`
	ScrollType         int    `json:"scroll_type"`
	Vertical           bool   `json:"vertical"`
	AuxiliaryObjectSet int    `json:"auxiliary_object_set"`
	StartAction        int    `json:"start_action"`
	GraphicsSet        int    `json:"graphics_set"`
	TimeIndex          int    `json:"time_index"`
	MusicIndex         int    `json:"music_index"`
}

// ObjectSnapshot describes one structural object.
type ObjectSnapshot struct {
	Domain int    `json:"domain"`
	Type   int    `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Length *int   `json:"length,omitempty"`
	Name   string `json:"name"`
}

// JumpSnapshot describes one jump marker.
type JumpSnapshot struct {
	Screen         int `json:"screen"`
	ExitAction     int `json:"exit_action"`
	ExitHorizontal int `json:"exit_horizontal"`
	ExitVertical   int `json:"exit_vertical"`
}

// ActorSnapshot describes one actor.
type ActorSnapshot struct {
	Type int    `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
}

// Snapshot captures the level's current state.
func (l *Level) Snapshot() Snapshot {
	header := l.header
	width, height := header.Size()
	snapshot := Snapshot{
		World:     l.location.World,
		Level:     l.location.Level,
		Name:      l.Name(),
		ObjectSet: l.location.ObjectSet,
		Attached:  l.attached,
		Header: HeaderSnapshot{
			Raw:                header.Bytes(),
			StartRow:           header.StartRow(),
			Length:             header.Length(),
			StartColumn:        header.StartColumn(),
			ActorPalette:       header.ActorPalette(),
			ObjectPalette:      header.ObjectPalette(),
			PipeEndsLevel:      header.PipeEndsLevel(),
			ScrollType:         header.ScrollType(),
			Vertical:           header.Vertical(),
			AuxiliaryObjectSet: header.AuxiliaryObjectSet(),
			StartAction:        header.StartAction(),
			GraphicsSet:        header.GraphicsSet(),
			TimeIndex:          header.TimeIndex(),
			MusicIndex:         header.MusicIndex(),
		},
		Width:            width,
		Height:           height,
		Pointers:         l.pointers,
		Objects:          []ObjectSnapshot{},
		Jumps:            []JumpSnapshot{},
		Actors:           []ActorSnapshot{},
		Budget:           l.budget,
		StructuralSize:   l.StructuralSize(),
		ActorSize:        l.ActorSize(),
		CapacityExceeded: l.CapacityExceeded(),
	}
	if l.attached {
		snapshot.StructuralOffset = l.location.StructuralOffset
		snapshot.ActorOffset = l.location.ActorOffset
	}

	for _, record := range l.records {
		switch record := record.(type) {
		case *Object:
			x, y := record.Position()
			object := ObjectSnapshot{
				Domain: record.domain,
				Type:   record.typeID,
				X:      x,
				Y:      y,
				Name:   record.name,
			}
			if record.long {
				length := int(record.length)
				object.Length = &length
			}
			snapshot.Objects = append(snapshot.Objects, object)
		case *Jump:
			snapshot.Jumps = append(snapshot.Jumps, JumpSnapshot{
				Screen:         record.ScreenIndex(),
				ExitAction:     record.ExitAction(),
				ExitHorizontal: record.ExitHorizontal(),
				ExitVertical:   record.ExitVertical(),
			})
		}
	}
	for _, actor := range l.actors {
		snapshot.Actors = append(snapshot.Actors, ActorSnapshot{
			Type: actor.typeID,
			X:    actor.x,
			Y:    actor.y,
			Name: actor.name,
		})
	}
	return snapshot
}
