// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	liblevel "github.com/bureau-foundation/foundry/lib/level"
)

type exportParams struct {
	cli.ROMParams
}

func exportCommand(out io.Writer) *cli.Command {
	var params exportParams

	return &cli.Command{
		Name:    "export",
		Summary: "Write a level to an exchange (.m3l) file",
		Description: `Decode one level from the ROM and write it in exchange form. Actors
are written sorted by x; everything else is byte-for-byte the ROM data.`,
		Usage:  "foundry level export <W-L> <file.m3l> [flags]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			selector, rest := params.SplitLevel(args)
			if len(rest) != 1 {
				return errors.New("usage: foundry level export <W-L> <file.m3l>")
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
			loaded, err := image.LoadLevel(entry, source.Registry)
			if err != nil {
				return err
			}

			data := liblevel.EncodeExchange(loaded)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("writing exchange file: %w", err)
			}
			logger.Info("level exported", "level", loaded.Name(), "path", path, "size", len(data))
			fmt.Fprintf(out, "%s: wrote %d bytes to %s\n", loaded.Name(), len(data), path)
			return nil
		},
	}
}
