// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeStructuralEmptyStream(t *testing.T) {
	records, consumed, err := DecodeStructural([]byte{Sentinel, 0x01}, testObjectSet(), Context{})
	if err != nil {
		t.Fatalf("DecodeStructural: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
	if consumed != 1 {
		t.Errorf("consumed = %d, want 1", consumed)
	}

	if got := EncodeStructural(nil); !bytes.Equal(got, []byte{Sentinel}) {
		t.Errorf("EncodeStructural(nil) = % X, want FF", got)
	}
	if got := EncodeActors(nil); !bytes.Equal(got, []byte{Sentinel}) {
		t.Errorf("EncodeActors(nil) = % X, want FF", got)
	}
}

func TestDecodeStructuralVariableLength(t *testing.T) {
	data := []byte{
		0x45, 0x10, 0x10, 0x07, // domain 2 type 0x10: 4 bytes
		0x45, 0x11, 0x11, // domain 2 type 0x11: 3 bytes
		0x05, 0x20, 0x03, // domain 0 type 0x03: 3 bytes
		Sentinel,
	}
	records, consumed, err := DecodeStructural(data, testObjectSet(), Context{})
	if err != nil {
		t.Fatalf("DecodeStructural: %v", err)
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d", consumed, len(data))
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	long := records[0].(*Object)
	if !long.Long() || long.Length() != 7 {
		t.Errorf("first record: Long = %v, Length = %d, want true, 7", long.Long(), long.Length())
	}
	if long.Domain() != 2 || long.Type() != 0x10 {
		t.Errorf("first record: domain %d type 0x%02X, want 2 0x10", long.Domain(), long.Type())
	}
	x, y := long.RecordPosition()
	if x != 0x10 || y != 5 {
		t.Errorf("first record at (%d, %d), want (16, 5)", x, y)
	}

	short := records[1].(*Object)
	if short.Long() {
		t.Error("domain 2 type 0x11 decoded as a 4-byte record")
	}
	if short.Type() != 0x11 {
		t.Errorf("second record type = 0x%02X, want 0x11", short.Type())
	}

	if got := EncodeStructural(records); !bytes.Equal(got, data) {
		t.Errorf("EncodeStructural = % X, want % X", got, data)
	}
}

func TestDecodeStructuralJumps(t *testing.T) {
	data := append([]byte(nil), testStructural...)
	records, consumed, err := DecodeStructural(data, testObjectSet(), Context{})
	if err != nil {
		t.Fatalf("DecodeStructural: %v", err)
	}
	if consumed != len(testStructural)-1 {
		t.Errorf("consumed = %d, want %d (the byte after the sentinel is not part of the stream)", consumed, len(testStructural)-1)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	jump, ok := records[1].(*Jump)
	if !ok {
		t.Fatalf("records[1] is %T, want *Jump", records[1])
	}
	if jump.ScreenIndex() != 3 || jump.ExitAction() != 2 || jump.ExitHorizontal() != 1 || jump.ExitVertical() != 4 {
		t.Errorf("jump = screen %d action %d exit (%d, %d), want screen 3 action 2 exit (1, 4)",
			jump.ScreenIndex(), jump.ExitAction(), jump.ExitHorizontal(), jump.ExitVertical())
	}
	if jump.Description() != "Jump on screen 3" {
		t.Errorf("Description = %q", jump.Description())
	}

	// Interleaved jumps keep their stream position.
	if got := EncodeStructural(records); !bytes.Equal(got, data[:consumed]) {
		t.Errorf("EncodeStructural = % X, want % X", got, data[:consumed])
	}
}

func TestNewJump(t *testing.T) {
	jump := NewJump(5, 3, 9, 12)
	want := []byte{0xE5, 0x39, 0x0C}
	if got := jump.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("NewJump bytes = % X, want % X", got, want)
	}
	bounds := jump.Bounds()
	if bounds.X != 5*16 || bounds.Width != 16 {
		t.Errorf("jump bounds = %+v, want screen 5", bounds)
	}
}

func TestDecodeStructuralUnknownType(t *testing.T) {
	data := []byte{0x05, 0x20, 0x03, 0xC0, 0x00, 0x00, Sentinel}
	_, _, err := DecodeStructural(data, testObjectSet(), Context{})
	if !errors.Is(err, ErrUnknownRecordType) {
		t.Errorf("error = %v, want ErrUnknownRecordType", err)
	}
}

func TestDecodeStructuralMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"no sentinel", []byte{0x05, 0x20, 0x03, 0x05, 0x21, 0x03}},
		{"truncated short record", []byte{0x05, 0x20}},
		{"truncated long record", []byte{0x45, 0x10, 0x10}},
		{"sentinel past the limit", append(bytes.Repeat([]byte{0x05, 0x20, 0x03}, MaxStreamLength/3+1), Sentinel)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := DecodeStructural(test.data, testObjectSet(), Context{})
			if !errors.Is(err, ErrMalformedStream) {
				t.Errorf("error = %v, want ErrMalformedStream", err)
			}
		})
	}
}

func TestDecodeActors(t *testing.T) {
	actors, consumed, err := DecodeActors(testActors, testObjectSet(), Context{})
	if err != nil {
		t.Fatalf("DecodeActors: %v", err)
	}
	if consumed != 7 {
		t.Errorf("consumed = %d, want 7", consumed)
	}
	if len(actors) != 2 {
		t.Fatalf("got %d actors, want 2", len(actors))
	}
	if actors[0].Type() != 0x72 || actors[0].Description() != "Goomba" {
		t.Errorf("actors[0] = 0x%02X %q, want 0x72 Goomba", actors[0].Type(), actors[0].Description())
	}
	if actors[1].Description() != "actor 0x6C" {
		t.Errorf("actors[1] description = %q, want fallback name", actors[1].Description())
	}
	x, y := actors[1].Position()
	if x != 0x20 || y != 0x10 {
		t.Errorf("actors[1] at (%d, %d), want (32, 16)", x, y)
	}

	// Input is already sorted, so encoding is the identity.
	if got := EncodeActors(actors); !bytes.Equal(got, testActors[:consumed]) {
		t.Errorf("EncodeActors = % X, want % X", got, testActors[:consumed])
	}
}

func TestDecodeActorsSentinelFirstByteOnly(t *testing.T) {
	// A record whose later bytes are 0xFF is not a sentinel.
	data := []byte{0x10, 0xFF, 0xFF, Sentinel}
	actors, consumed, err := DecodeActors(data, testObjectSet(), Context{})
	if err != nil {
		t.Fatalf("DecodeActors: %v", err)
	}
	if len(actors) != 1 || consumed != 4 {
		t.Errorf("got %d actors, consumed %d, want 1 and 4", len(actors), consumed)
	}
}

func TestDecodeActorsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"no sentinel", []byte{0x72, 0x01, 0x02}},
		{"truncated", []byte{0x72, 0x01}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := DecodeActors(test.data, testObjectSet(), Context{})
			if !errors.Is(err, ErrMalformedStream) {
				t.Errorf("error = %v, want ErrMalformedStream", err)
			}
		})
	}
}

func TestEncodeActorsStableSort(t *testing.T) {
	set := testObjectSet()
	var actors []*Actor
	for index, x := range []int{50, 10, 10, 30} {
		actors = append(actors, newActor(set, Context{}, []byte{byte(0x20 + index), byte(x), 0x05}))
	}

	want := []byte{
		0x21, 10, 0x05,
		0x22, 10, 0x05,
		0x23, 30, 0x05,
		0x20, 50, 0x05,
		Sentinel,
	}
	got := EncodeActors(actors)
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeActors = % X, want % X", got, want)
	}

	// The input slice is not reordered.
	if actors[0].Type() != 0x20 {
		t.Error("EncodeActors reordered its input")
	}

	// Encoding already-sorted actors is the identity.
	decoded, _, err := DecodeActors(got, set, Context{})
	if err != nil {
		t.Fatalf("DecodeActors: %v", err)
	}
	if again := EncodeActors(decoded); !bytes.Equal(again, got) {
		t.Errorf("re-encoding sorted actors = % X, want % X", again, got)
	}
}

func TestVerticalRecordPosition(t *testing.T) {
	set := testObjectSet()
	vertical := Context{Vertical: true}

	// Record x 0x13 is column 3 of screen 1; record y 5 becomes 15+5.
	object := newObject(set, vertical, []byte{0x05, 0x13, 0x03})
	x, y := object.Position()
	if x != 3 || y != 20 {
		t.Errorf("vertical Position = (%d, %d), want (3, 20)", x, y)
	}

	horizontal := newObject(set, Context{}, []byte{0x05, 0x13, 0x03})
	x, y = horizontal.Position()
	if x != 0x13 || y != 5 {
		t.Errorf("horizontal Position = (%d, %d), want (19, 5)", x, y)
	}

	for _, position := range [][2]int{{0, 0}, {15, 14}, {3, 20}, {7, 44}} {
		recordX, recordY := recordPosition(position[0], position[1], true)
		gotX, gotY := levelPosition(recordX, recordY, true)
		if gotX != position[0] || gotY != position[1] {
			t.Errorf("round trip of %v gave (%d, %d)", position, gotX, gotY)
		}
	}
}
