// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bureau-foundation/foundry/lib/catalog"
	"github.com/bureau-foundation/foundry/lib/config"
	"github.com/bureau-foundation/foundry/lib/objectset"
	"github.com/bureau-foundation/foundry/lib/rom"
)

// SourceParams are the flags shared by commands that read level data.
// Each overrides the matching config file field. Embed in a command's
// parameter struct and call [SourceParams.Load] from Run.
type SourceParams struct {
	Config     string `json:"config"      flag:"config"      desc:"configuration file (default: $FOUNDRY_CONFIG)"`
	ObjectSets string `json:"object_sets" flag:"object-sets" desc:"object set descriptor file, YAML or JSONC (default: embedded tables)"`
	Catalog    string `json:"catalog"     flag:"catalog"     desc:"level catalog file, YAML or JSONC"`
}

// ROMParams extend [SourceParams] with the ROM image and an explicit
// level address for levels the catalog does not list.
type ROMParams struct {
	SourceParams
	ROM string `json:"rom" flag:"rom" desc:"ROM image (default: config rom)"`

	ObjectOffset int `json:"object_offset" flag:"object-offset" desc:"file offset of the level header, instead of a W-L catalog level"`
	ActorOffset  int `json:"actor_offset"  flag:"actor-offset"  desc:"file offset of the actor prefix byte (with --object-offset)"`
	ObjectSet    int `json:"object_set"    flag:"object-set"    desc:"object set number (with --object-offset)"`
}

// Source is the resolved configuration, object set registry and
// optional level catalog for one invocation.
type Source struct {
	Config   *config.Config
	Registry *objectset.Registry
	// Catalog is nil when neither --catalog nor the config names one.
	Catalog *catalog.Catalog
}

// Load resolves the config file, applies flag overrides, and loads the
// object set registry and catalog they name.
func (p *SourceParams) Load() (*Source, error) {
	cfg, err := config.Resolve(p.Config)
	if err != nil {
		return nil, err
	}
	if p.ObjectSets != "" {
		cfg.ObjectSets = p.ObjectSets
	}
	if p.Catalog != "" {
		cfg.Catalog = p.Catalog
	}

	source := &Source{Config: cfg, Registry: objectset.Default()}
	if cfg.ObjectSets != "" {
		source.Registry, err = objectset.LoadFile(cfg.ObjectSets)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Catalog != "" {
		source.Catalog, err = catalog.LoadFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}
	return source, nil
}

// OpenROM opens the ROM named by --rom, falling back to the config.
func (p *ROMParams) OpenROM(source *Source, logger *slog.Logger) (*rom.Image, error) {
	path := p.ROM
	if path == "" {
		path = source.Config.ROM
	}
	if path == "" {
		return nil, errors.New("no ROM image: pass --rom or set rom in the config file")
	}
	return rom.Open(rom.Config{Path: path, Logger: logger})
}

// SplitLevel separates the leading W-L argument from the remaining
// arguments. With --object-offset there is no W-L argument.
func (p *ROMParams) SplitLevel(args []string) (string, []string) {
	if p.ObjectOffset != 0 || len(args) == 0 {
		return "", args
	}
	return args[0], args[1:]
}

// Entry resolves the level a command addresses: the explicit offsets
// when --object-offset is given, otherwise selector ("W-L") looked up
// in the catalog.
func (p *ROMParams) Entry(source *Source, selector string) (catalog.Entry, error) {
	if p.ObjectOffset != 0 {
		return catalog.Entry{
			Name:         fmt.Sprintf("Level at 0x%X", p.ObjectOffset),
			ObjectSet:    p.ObjectSet,
			ObjectOffset: p.ObjectOffset,
			ActorOffset:  p.ActorOffset,
		}, nil
	}
	if selector == "" {
		return catalog.Entry{}, errors.New("level required: pass W-L (e.g. 1-1) or --object-offset")
	}
	world, levelNumber, err := ParseLevel(selector)
	if err != nil {
		return catalog.Entry{}, err
	}
	if source.Catalog == nil {
		return catalog.Entry{}, fmt.Errorf("level %s: no level catalog; pass --catalog or set catalog in the config file", selector)
	}
	return source.Catalog.Lookup(world, levelNumber)
}

// ParseLevel parses "W-L" into a world and level number.
func ParseLevel(selector string) (world, levelNumber int, err error) {
	worldText, levelText, found := strings.Cut(selector, "-")
	if !found {
		return 0, 0, fmt.Errorf("level %q: want W-L, e.g. 1-1", selector)
	}
	world, err = strconv.Atoi(worldText)
	if err != nil || world < 0 {
		return 0, 0, fmt.Errorf("level %q: invalid world %q", selector, worldText)
	}
	levelNumber, err = strconv.Atoi(levelText)
	if err != nil || levelNumber < 0 {
		return 0, 0, fmt.Errorf("level %q: invalid level %q", selector, levelText)
	}
	return world, levelNumber, nil
}
