// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete foundry CLI command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	levelcmd "github.com/bureau-foundation/foundry/cmd/foundry/level"
	romcmd "github.com/bureau-foundation/foundry/cmd/foundry/rom"
	"github.com/bureau-foundation/foundry/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

// Root builds the foundry command tree. Command output goes to out.
func Root(out io.Writer) *cli.Command {
	var versionFlags versionParams

	return &cli.Command{
		Name: "foundry",
		Description: `foundry: level tooling for Super Mario Bros. 3 ROM images.

Decode levels from a ROM, inspect their headers and entity streams,
move them between ROMs through .m3l exchange files, and write them back
within their on-disk budgets.`,
		Subcommands: []*cli.Command{
			levelcmd.Command(out),
			romcmd.Command(out),
			{
				Name:    "version",
				Summary: "Print version information",
				Params:  func() any { return &versionFlags },
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if done, err := versionFlags.EmitJSON(out, version.Current()); done {
						return err
					}
					_, err := fmt.Fprintf(out, "foundry %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List the levels in the configured catalog",
				Command:     "foundry level list",
			},
			{
				Description: "Show the header and capacity of world 1, level 1",
				Command:     "foundry level inspect 1-1 --rom smb3.nes",
			},
			{
				Description: "Export a level, edit it elsewhere, and import it back",
				Command:     "foundry level export 1-1 level.m3l && foundry level import 1-1 level.m3l",
			},
			{
				Description: "Check a ROM against the level catalog",
				Command:     "foundry rom info --rom smb3.nes --catalog levels.yaml",
			},
		},
	}
}
