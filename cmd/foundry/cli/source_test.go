// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/foundry/lib/catalog"
	"github.com/bureau-foundation/foundry/lib/config"
	"github.com/bureau-foundation/foundry/lib/objectset"
	"github.com/bureau-foundation/foundry/lib/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		selector    string
		world       int
		level       int
		errContains string
	}{
		{selector: "1-1", world: 1, level: 1},
		{selector: "8-12", world: 8, level: 12},
		{selector: "0-3", world: 0, level: 3},
		{selector: "11", errContains: "want W-L"},
		{selector: "a-1", errContains: "invalid world"},
		{selector: "1-b", errContains: "invalid level"},
		{selector: "-1-1", errContains: "invalid world"},
	}
	for _, test := range tests {
		t.Run(test.selector, func(t *testing.T) {
			world, level, err := ParseLevel(test.selector)
			if test.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), test.errContains) {
					t.Fatalf("ParseLevel error = %v, want it to contain %q", err, test.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel: %v", err)
			}
			if world != test.world || level != test.level {
				t.Errorf("ParseLevel = %d-%d, want %d-%d", world, level, test.world, test.level)
			}
		})
	}
}

func TestSourceParams_LoadDefaults(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	var params SourceParams
	source, err := params.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source.Catalog != nil {
		t.Error("Catalog loaded without a catalog file")
	}
	if _, err := source.Registry.Lookup(1); err != nil {
		t.Errorf("embedded registry lacks object set 1: %v", err)
	}
	if !source.Config.Write.Backup {
		t.Error("default config should keep backups")
	}
}

func TestSourceParams_LoadFromConfigAndFlags(t *testing.T) {
	directory := t.TempDir()
	catalogPath := testutil.WriteFile(t, directory, "levels.yaml", []byte(testutil.SampleCatalogYAML))
	objectSets := testutil.WriteFile(t, directory, "sets.jsonc", []byte(`{
		// Only the Plains set.
		"object_sets": [
			{"number": 1, "name": "Plains", "auxiliary": {"base": 16384, "min": 124178, "max": 131087}}
		],
		"records": [{"domain": 0, "first": 0, "last": 255, "length": 3}]
	}`))
	configPath := testutil.WriteFile(t, directory, "foundry.yaml", []byte("catalog: "+catalogPath+"\n"))
	t.Setenv(config.EnvironmentVariable, configPath)

	params := SourceParams{ObjectSets: objectSets}
	source, err := params.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source.Catalog == nil || len(source.Catalog.Entries()) != 1 {
		t.Fatalf("catalog from config not loaded: %+v", source.Catalog)
	}
	if source.Config.ObjectSets != objectSets {
		t.Errorf("ObjectSets = %q, want the flag value", source.Config.ObjectSets)
	}
	if _, err := source.Registry.Lookup(3); !errors.Is(err, objectset.ErrUnknownObjectSet) {
		t.Errorf("Lookup(3) error = %v, want ErrUnknownObjectSet from the flag's registry", err)
	}
}

func TestSourceParams_LoadMissingCatalog(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	params := SourceParams{Catalog: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := params.Load(); err == nil {
		t.Error("Load succeeded with a missing catalog file")
	}
}

func TestROMParams_Entry(t *testing.T) {
	sampleCatalog, err := catalog.New(catalog.Entry{
		World: 1, Level: 1, Name: "Sample", ObjectSet: 1,
		ObjectOffset: testutil.SampleLevelOffset, ActorOffset: testutil.SampleActorOffset,
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	withCatalog := &Source{Config: config.Default(), Registry: objectset.Default(), Catalog: sampleCatalog}
	withoutCatalog := &Source{Config: config.Default(), Registry: objectset.Default()}

	var params ROMParams
	entry, err := params.Entry(withCatalog, "1-1")
	if err != nil {
		t.Fatalf("Entry(1-1): %v", err)
	}
	if entry.Name != "Sample" {
		t.Errorf("Entry(1-1) = %+v", entry)
	}

	if _, err := params.Entry(withCatalog, "2-1"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Entry(2-1) error = %v, want ErrNotFound", err)
	}
	if _, err := params.Entry(withoutCatalog, "1-1"); err == nil || !strings.Contains(err.Error(), "no level catalog") {
		t.Errorf("Entry without catalog error = %v", err)
	}
	if _, err := params.Entry(withCatalog, ""); err == nil {
		t.Error("Entry accepted an empty selector")
	}

	explicit := ROMParams{ObjectOffset: 0x1FB92, ActorOffset: 0xC537, ObjectSet: 1}
	entry, err = explicit.Entry(withoutCatalog, "")
	if err != nil {
		t.Fatalf("Entry(explicit): %v", err)
	}
	if entry.ObjectOffset != 0x1FB92 || entry.ActorOffset != 0xC537 || entry.ObjectSet != 1 {
		t.Errorf("explicit entry = %+v", entry)
	}
	if entry.Name != "Level at 0x1FB92" {
		t.Errorf("explicit entry name = %q", entry.Name)
	}
}

func TestROMParams_SplitLevel(t *testing.T) {
	var params ROMParams
	selector, rest := params.SplitLevel([]string{"1-1", "out.m3l"})
	if selector != "1-1" || len(rest) != 1 || rest[0] != "out.m3l" {
		t.Errorf("SplitLevel = %q, %v", selector, rest)
	}

	params.ObjectOffset = 0x20
	selector, rest = params.SplitLevel([]string{"out.m3l"})
	if selector != "" || len(rest) != 1 {
		t.Errorf("SplitLevel with --object-offset = %q, %v", selector, rest)
	}
}

func TestROMParams_OpenROM(t *testing.T) {
	source := &Source{Config: config.Default(), Registry: objectset.Default()}

	var params ROMParams
	if _, err := params.OpenROM(source, nil); err == nil || !strings.Contains(err.Error(), "no ROM image") {
		t.Errorf("OpenROM without a path error = %v", err)
	}

	path := testutil.WriteFile(t, t.TempDir(), "smb3.nes", testutil.SampleROM(t))
	source.Config.ROM = path
	image, err := params.OpenROM(source, nil)
	if err != nil {
		t.Fatalf("OpenROM(config rom): %v", err)
	}
	if image.Path() != path {
		t.Errorf("Path = %q, want %q", image.Path(), path)
	}
}
