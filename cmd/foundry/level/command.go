// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/binhash"
	liblevel "github.com/bureau-foundation/foundry/lib/level"
	"github.com/bureau-foundation/foundry/lib/objectset"
)

// Command returns the "level" command group. Command output goes to
// out; logs go to the logger handed to each command.
func Command(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "level",
		Summary: "Inspect, export and import levels",
		Description: `Work with the levels of an SMB3 ROM image.

Levels are addressed as W-L (world and level number) through a level
catalog, or by explicit ROM offsets with --object-offset, --actor-offset
and --object-set. The ROM, catalog and object set tables come from the
config file ($FOUNDRY_CONFIG or --config) unless given as flags.

Exchange files (.m3l) hold one level independent of any ROM: a three
byte world/level/object set prefix, the header, and both entity streams.`,
		Subcommands: []*cli.Command{
			listCommand(out),
			inspectCommand(out),
			exportCommand(out),
			importCommand(out),
			dumpCommand(out),
			watchCommand(out),
		},
		Examples: []cli.Example{
			{
				Description: "Show the header and capacity of world 1, level 1",
				Command:     "foundry level inspect 1-1 --rom smb3.nes --catalog levels.yaml",
			},
			{
				Description: "Copy a level between ROMs",
				Command:     "foundry level export 1-1 level.m3l --rom a.nes && foundry level import 1-1 level.m3l --rom b.nes",
			},
		},
	}
}

// readExchange decodes an exchange file and returns the level with its
// snapshot, whose Source is the file's digest.
func readExchange(path string, registry *objectset.Registry) (*liblevel.Level, liblevel.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, liblevel.Snapshot{}, err
	}
	decoded, err := liblevel.DecodeExchange(data, registry)
	if err != nil {
		return nil, liblevel.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	snapshot := decoded.Snapshot()
	snapshot.Source = binhash.FormatDigest(binhash.HashBytes(data))
	return decoded, snapshot, nil
}

// capacityLine summarizes stream sizes against their budgets.
func capacityLine(target *liblevel.Level) string {
	budget := target.Budget()
	line := fmt.Sprintf("structural %d/%d bytes, actors %d/%d bytes",
		target.StructuralSize(), budget.Structural, target.ActorSize(), budget.Actor)
	if target.CapacityExceeded() {
		line += " (exceeds capacity)"
	}
	return line
}
