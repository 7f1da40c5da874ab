// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/binhash"
	librom "github.com/bureau-foundation/foundry/lib/rom"
)

type infoParams struct {
	cli.JSONOutput
	cli.ROMParams
}

// infoResult is the JSON form of "rom info".
type infoResult struct {
	Path        string        `json:"path"`
	Size        int           `json:"size"`
	Header      librom.Header `json:"header"`
	Fingerprint string        `json:"fingerprint"`
	Catalog     *catalogCheck `json:"catalog,omitempty"`
}

type catalogCheck struct {
	Levels   int      `json:"levels"`
	Problems []string `json:"problems"`
}

func infoCommand(out io.Writer) *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Show a ROM's iNES header and fingerprint",
		Description: `Print the iNES header fields and BLAKE3 fingerprint of a ROM image.

When a level catalog is configured, every entry is also checked: its
object set must be known and its offsets must lie inside the image.
Problems are listed and the command exits 1.`,
		Usage:  "foundry rom info [--rom <file>] [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Check a ROM against the configured catalog",
				Command:     "foundry rom info --rom smb3.nes --catalog levels.yaml",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("info takes no positional arguments, got %q", args[0])
			}
			source, err := params.Load()
			if err != nil {
				return err
			}
			image, err := params.OpenROM(source, logger)
			if err != nil {
				return err
			}

			result := infoResult{
				Path:        image.Path(),
				Size:        image.Size(),
				Header:      image.Header(),
				Fingerprint: binhash.FormatDigest(image.Fingerprint()),
			}
			if source.Catalog != nil {
				check := &catalogCheck{
					Levels:   len(source.Catalog.Entries()),
					Problems: []string{},
				}
				if err := source.Catalog.Check(source.Registry, image.Size()); err != nil {
					check.Problems = strings.Split(err.Error(), "\n")
				}
				result.Catalog = check
			}

			done, err := params.EmitJSON(out, result)
			if err != nil {
				return err
			}
			if !done {
				if err := writeInfo(out, result); err != nil {
					return err
				}
			}

			if result.Catalog != nil && len(result.Catalog.Problems) > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func writeInfo(out io.Writer, result infoResult) error {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "path\t%s\n", result.Path)
	fmt.Fprintf(writer, "size\t%d bytes\n", result.Size)
	fmt.Fprintf(writer, "PRG ROM\t%d x 16 KiB\n", result.Header.PRGBanks)
	fmt.Fprintf(writer, "CHR ROM\t%d x 8 KiB\n", result.Header.CHRBanks)
	fmt.Fprintf(writer, "mapper\t%d\n", result.Header.Mapper)
	trainer := "no"
	if result.Header.Trainer {
		trainer = "yes"
	}
	fmt.Fprintf(writer, "trainer\t%s\n", trainer)
	fmt.Fprintf(writer, "blake3\t%s\n", result.Fingerprint)
	if result.Catalog != nil {
		status := "ok"
		if count := len(result.Catalog.Problems); count > 0 {
			status = fmt.Sprintf("%d problems", count)
		}
		fmt.Fprintf(writer, "catalog\t%d levels, %s\n", result.Catalog.Levels, status)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if result.Catalog == nil {
		return nil
	}
	for _, problem := range result.Catalog.Problems {
		if _, err := fmt.Fprintf(out, "  %s\n", problem); err != nil {
			return err
		}
	}
	return nil
}
