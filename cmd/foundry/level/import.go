// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
)

// CapacityExitCode is the exit status of a dry-run import that would
// exceed the level's on-disk capacity.
const CapacityExitCode = 2

type importParams struct {
	cli.ROMParams
	Output   string `json:"output"    flag:"output,o"  desc:"save to this path instead of overwriting the ROM"`
	Force    bool   `json:"force"     flag:"force"     desc:"write even if the level exceeds its on-disk capacity"`
	NoBackup bool   `json:"no_backup" flag:"no-backup" desc:"do not keep a .bak copy of the file being overwritten"`
	DryRun   bool   `json:"dry_run"   flag:"dry-run"   desc:"report capacity without writing; exit 2 if the level would not fit"`
}

func importCommand(out io.Writer) *cli.Command {
	var params importParams

	return &cli.Command{
		Name:    "import",
		Summary: "Replace a level with the contents of an exchange file",
		Description: `Decode an exchange file and write it over a level of the ROM. The
imported level takes the ROM offsets of the level it replaces and must
fit in that level's on-disk budget: bytes past the budget would clobber
whatever follows the level. Oversized levels are refused unless --force
is given or write.allow_overflow is set in the config.

The ROM is saved atomically under an exclusive lock. Saving over the
file the ROM was read from keeps a .bak copy unless --no-backup is given
or write.backup is false.`,
		Usage:  "foundry level import <W-L> <file.m3l> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Check whether an edited level still fits",
				Command:     "foundry level import 1-1 edited.m3l --dry-run",
			},
			{
				Description: "Import into a copy of the ROM",
				Command:     "foundry level import 1-1 edited.m3l --output smb3-edited.nes",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			selector, rest := params.SplitLevel(args)
			if len(rest) != 1 {
				return errors.New("usage: foundry level import <W-L> <file.m3l>")
			}
			path := rest[0]

			source, err := params.Load()
			if err != nil {
				return err
			}
			image, err := params.OpenROM(source, logger)
			if err != nil {
				return err
			}
			entry, err := params.Entry(source, selector)
			if err != nil {
				return err
			}
			incoming, _, err := readExchange(path, source.Registry)
			if err != nil {
				return err
			}

			if params.DryRun {
				current, err := image.LoadLevel(entry, source.Registry)
				if err != nil {
					return err
				}
				if err := incoming.Attach(entry.Location(), current.Budget()); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", current.Name(), capacityLine(incoming))
				if incoming.CapacityExceeded() {
					return &cli.ExitError{Code: CapacityExitCode}
				}
				return nil
			}

			force := params.Force || source.Config.Write.AllowOverflow
			if err := image.ImportLevel(entry, incoming, source.Registry, force); err != nil {
				return err
			}
			backup := source.Config.Write.Backup && !params.NoBackup
			if err := image.Save(params.Output, backup); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: imported %s into %s (%s)\n",
				incoming.Name(), path, image.Path(), capacityLine(incoming))
			return nil
		},
	}
}
