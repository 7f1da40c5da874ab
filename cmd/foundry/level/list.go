// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/catalog"
)

type listParams struct {
	cli.JSONOutput
	cli.SourceParams
	World int `json:"world" flag:"world" desc:"only list this world" default:"-1"`
}

func listCommand(out io.Writer) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List the levels in the catalog",
		Usage:   "foundry level list [--world N] [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("list takes no positional arguments, got %q", args[0])
			}
			source, err := params.Load()
			if err != nil {
				return err
			}
			if source.Catalog == nil {
				return errors.New("no level catalog; pass --catalog or set catalog in the config file")
			}

			entries := source.Catalog.Entries()
			if params.World >= 0 {
				entries = source.Catalog.World(params.World)
			}
			if done, err := params.EmitJSON(out, entries); done {
				return err
			}
			return writeEntries(out, entries, source)
		},
	}
}

func writeEntries(out io.Writer, entries []catalog.Entry, source *cli.Source) error {
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "LEVEL\tNAME\tOBJECT SET\tHEADER\tACTORS\n")
	for _, entry := range entries {
		setName := "?"
		if descriptor, err := source.Registry.Lookup(entry.ObjectSet); err == nil {
			setName = descriptor.Name
		}
		fmt.Fprintf(writer, "%d-%d\t%s\t%d %s\t0x%05X\t0x%05X\n",
			entry.World, entry.Level, entry.Name, entry.ObjectSet, setName,
			entry.ObjectOffset, entry.ActorOffset)
	}
	return writer.Flush()
}
