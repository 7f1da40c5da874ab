// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package objectset

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownRecordType is returned when no rule of a descriptor covers
// a (domain, type) pair.
var ErrUnknownRecordType = errors.New("unknown record type")

// ErrUnknownObjectSet is returned by [Registry.Lookup] for a set number
// the registry does not describe.
var ErrUnknownObjectSet = errors.New("unknown object set")

// Kind classifies a structural record.
type Kind int

const (
	// KindObject is a drawable level object.
	KindObject Kind = iota
	// KindJump is a jump marker. Jump markers are always 3 bytes.
	KindJump
)

// String returns "object" or "jump".
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindJump:
		return "jump"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Structural record lengths.
const (
	ShortRecord = 3
	LongRecord  = 4
)

// RecordRule assigns a record length, footprint and name to every type
// id in [First, Last] of one domain.
type RecordRule struct {
	Domain int    `yaml:"domain" json:"domain"`
	First  int    `yaml:"first" json:"first"`
	Last   int    `yaml:"last" json:"last"`
	Length int    `yaml:"length" json:"length"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
}

func (r RecordRule) covers(domain, typeID int) bool {
	return r.Domain == domain && r.First <= typeID && typeID <= r.Last
}

// ActorRule describes one actor type.
type ActorRule struct {
	Type   int    `yaml:"type" json:"type"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
}

// AuxiliaryArea locates the secondary level data of an object set.
// Base is added to the header's structural pointer halves; a resolved
// pointer inside [Min, Max] references a real auxiliary area.
type AuxiliaryArea struct {
	Base int `yaml:"base" json:"base"`
	Min  int `yaml:"min" json:"min"`
	Max  int `yaml:"max" json:"max"`
}

// Contains reports whether pointer lies within [Min, Max]. A zero
// range (an object set without auxiliary areas) contains only 0, which
// no resolved pointer can equal.
func (a AuxiliaryArea) Contains(pointer int) bool {
	return a.Min <= pointer && pointer <= a.Max
}

// Descriptor is the table set for one object set.
type Descriptor struct {
	Number      int           `yaml:"number" json:"number"`
	Name        string        `yaml:"name" json:"name"`
	Auxiliary   AuxiliaryArea `yaml:"auxiliary" json:"auxiliary"`
	JumpDomains []int         `yaml:"jump_domains,omitempty" json:"jump_domains,omitempty"`
	Records     []RecordRule  `yaml:"records,omitempty" json:"records,omitempty"`
	Actors      []ActorRule   `yaml:"actors,omitempty" json:"actors,omitempty"`
}

// Classify reports whether (domain, typeID) is an object or a jump
// marker. Jump domains match every type id; everything else must be
// covered by a record rule.
func (d *Descriptor) Classify(domain, typeID int) (Kind, error) {
	if slices.Contains(d.JumpDomains, domain) {
		return KindJump, nil
	}
	if _, ok := d.rule(domain, typeID); !ok {
		return 0, d.unknown(domain, typeID)
	}
	return KindObject, nil
}

// RecordLength returns the encoded length of a structural record, 3 or
// 4 bytes. Jump markers are always 3 bytes.
func (d *Descriptor) RecordLength(domain, typeID int) (int, error) {
	if slices.Contains(d.JumpDomains, domain) {
		return ShortRecord, nil
	}
	rule, ok := d.rule(domain, typeID)
	if !ok {
		return 0, d.unknown(domain, typeID)
	}
	return rule.Length, nil
}

// ObjectSize returns the footprint of an object in tiles. Types without
// a configured size occupy one tile.
func (d *Descriptor) ObjectSize(domain, typeID int) (width, height int) {
	rule, _ := d.rule(domain, typeID)
	return orOne(rule.Width), orOne(rule.Height)
}

// ObjectName returns the display name of an object type.
func (d *Descriptor) ObjectName(domain, typeID int) string {
	if rule, ok := d.rule(domain, typeID); ok && rule.Name != "" {
		return rule.Name
	}
	return fmt.Sprintf("object %d/0x%02X", domain, typeID)
}

// ActorSize returns the footprint of an actor in tiles.
func (d *Descriptor) ActorSize(typeID int) (width, height int) {
	rule, _ := d.actor(typeID)
	return orOne(rule.Width), orOne(rule.Height)
}

// ActorName returns the display name of an actor type.
func (d *Descriptor) ActorName(typeID int) string {
	if rule, ok := d.actor(typeID); ok && rule.Name != "" {
		return rule.Name
	}
	return fmt.Sprintf("actor 0x%02X", typeID)
}

// Validate checks the internal consistency of the descriptor.
func (d *Descriptor) Validate() error {
	for _, domain := range d.JumpDomains {
		if domain < 0 || domain > 7 {
			return fmt.Errorf("object set %d: jump domain %d out of range 0-7", d.Number, domain)
		}
	}
	for index, rule := range d.Records {
		if rule.Domain < 0 || rule.Domain > 7 {
			return fmt.Errorf("object set %d: records[%d]: domain %d out of range 0-7", d.Number, index, rule.Domain)
		}
		if rule.First < 0 || rule.Last > 0xFF || rule.First > rule.Last {
			return fmt.Errorf("object set %d: records[%d]: invalid type range 0x%X-0x%X", d.Number, index, rule.First, rule.Last)
		}
		if rule.Length != ShortRecord && rule.Length != LongRecord {
			return fmt.Errorf("object set %d: records[%d]: length %d, want 3 or 4", d.Number, index, rule.Length)
		}
	}
	if d.Auxiliary.Min > d.Auxiliary.Max {
		return fmt.Errorf("object set %d: auxiliary range 0x%X-0x%X is inverted", d.Number, d.Auxiliary.Min, d.Auxiliary.Max)
	}
	return nil
}

func (d *Descriptor) rule(domain, typeID int) (RecordRule, bool) {
	for _, rule := range d.Records {
		if rule.covers(domain, typeID) {
			return rule, true
		}
	}
	return RecordRule{}, false
}

func (d *Descriptor) actor(typeID int) (ActorRule, bool) {
	for _, rule := range d.Actors {
		if rule.Type == typeID {
			return rule, true
		}
	}
	return ActorRule{}, false
}

func (d *Descriptor) unknown(domain, typeID int) error {
	return fmt.Errorf("object set %d: domain %d type 0x%02X: %w", d.Number, domain, typeID, ErrUnknownRecordType)
}

func orOne(value int) int {
	if value <= 0 {
		return 1
	}
	return value
}
