// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/foundry/lib/level"
	"github.com/bureau-foundation/foundry/lib/objectset"
)

// ActorPrefixLength is the number of bytes between a catalog actor
// offset and the first actor record.
const ActorPrefixLength = 1

// ErrNotFound is returned by [Catalog.Lookup] for a level the catalog
// does not list.
var ErrNotFound = errors.New("level not in catalog")

// Entry describes one level of a ROM.
type Entry struct {
	World     int    `yaml:"world" json:"world"`
	Level     int    `yaml:"level" json:"level"`
	Name      string `yaml:"name" json:"name"`
	ObjectSet int    `yaml:"object_set" json:"object_set"`
	// ObjectOffset is the file offset of the level header.
	ObjectOffset int `yaml:"object_offset" json:"object_offset"`
	// ActorOffset is the file offset of the actor data, which starts
	// with a one-byte prefix ahead of the records.
	ActorOffset int `yaml:"actor_offset" json:"actor_offset"`
}

// Location returns the level location the entry describes, with the
// actor offset moved past the prefix byte.
func (e Entry) Location() level.Location {
	return level.Location{
		World:            e.World,
		Level:            e.Level,
		Name:             e.Name,
		ObjectSet:        e.ObjectSet,
		StructuralOffset: e.ObjectOffset,
		ActorOffset:      e.ActorOffset + ActorPrefixLength,
	}
}

// DisplayName formats the entry for listings.
func (e Entry) DisplayName() string {
	return e.Location().DisplayName()
}

// File is the on-disk layout of a catalog file.
type File struct {
	Levels []Entry `yaml:"levels" json:"levels"`
}

// Catalog is an ordered, validated list of level entries.
type Catalog struct {
	entries []Entry
}

// New validates entries and builds a catalog. A (world, level) pair may
// appear once; offsets must be non-negative.
func New(entries ...Entry) (*Catalog, error) {
	seen := make(map[[2]int]bool, len(entries))
	for index, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("levels[%d]: name is required", index)
		}
		if entry.ObjectOffset < 0 || entry.ActorOffset < 0 {
			return nil, fmt.Errorf("levels[%d] %s: negative offset", index, entry.DisplayName())
		}
		key := [2]int{entry.World, entry.Level}
		if seen[key] {
			return nil, fmt.Errorf("levels[%d]: level %d-%d listed twice", index, entry.World, entry.Level)
		}
		seen[key] = true
	}
	return &Catalog{entries: slices.Clone(entries)}, nil
}

// LoadFile reads a catalog file. Files ending in .json or .jsonc are
// parsed as JSONC; everything else as YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	catalog, err := New(file.Levels...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Entries returns the entries in file order.
func (c *Catalog) Entries() []Entry { return slices.Clone(c.entries) }

// Lookup returns the entry for a world and level number.
func (c *Catalog) Lookup(world, levelNumber int) (Entry, error) {
	for _, entry := range c.entries {
		if entry.World == world && entry.Level == levelNumber {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("level %d-%d: %w", world, levelNumber, ErrNotFound)
}

// World returns the entries of one world in file order.
func (c *Catalog) World(world int) []Entry {
	var entries []Entry
	for _, entry := range c.entries {
		if entry.World == world {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Check verifies that every entry's object set is described by registry
// and that its offsets fit inside an image of imageSize bytes. A zero
// imageSize skips the offset check.
func (c *Catalog) Check(registry *objectset.Registry, imageSize int) error {
	var errs []error
	for _, entry := range c.entries {
		if _, err := registry.Lookup(entry.ObjectSet); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.DisplayName(), err))
		}
		if imageSize == 0 {
			continue
		}
		location := entry.Location()
		if location.StructuralOffset+level.HeaderLength > imageSize || location.ActorOffset >= imageSize {
			errs = append(errs, fmt.Errorf("%s: offsets 0x%X/0x%X outside image of %d bytes",
				entry.DisplayName(), entry.ObjectOffset, entry.ActorOffset, imageSize))
		}
	}
	return errors.Join(errs...)
}
