// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/codec"
)

type dumpParams struct {
	cli.SourceParams
	Format string `json:"format" flag:"format,f" desc:"output format: json, cbor or diag" default:"json"`
	Hex    bool   `json:"hex"    flag:"hex,x"    desc:"hex-encode CBOR output"`
}

func dumpCommand(out io.Writer) *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Print the snapshot of an exchange file",
		Description: `Decode an exchange file and print its snapshot: identity, every header
field, resolved pointers, all entities and capacity figures. The
snapshot's "source" is the BLAKE3 digest of the file.

Formats:
  json   indented JSON (default)
  cbor   Core Deterministic CBOR, raw bytes unless --hex is given
  diag   CBOR diagnostic notation (RFC 8949)`,
		Usage:  "foundry level dump <file.m3l> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Pipe a snapshot through jq",
				Command:     "foundry level dump level.m3l | jq '.actors'",
			},
			{
				Description: "Inspect the CBOR form",
				Command:     "foundry level dump level.m3l --format diag",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("usage: foundry level dump <file.m3l>")
			}
			source, err := params.Load()
			if err != nil {
				return err
			}
			_, snapshot, err := readExchange(args[0], source.Registry)
			if err != nil {
				return err
			}

			switch params.Format {
			case "json":
				return cli.WriteJSON(out, snapshot)
			case "cbor", "diag":
				data, err := codec.Marshal(snapshot)
				if err != nil {
					return err
				}
				if params.Format == "diag" {
					notation, err := codec.Diagnose(data)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, notation)
					return err
				}
				if params.Hex {
					_, err = fmt.Fprintln(out, hex.EncodeToString(data))
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unknown format %q (want json, cbor or diag)", params.Format)
			}
		},
	}
}
