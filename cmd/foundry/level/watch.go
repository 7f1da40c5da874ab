// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/codec"
	"github.com/bureau-foundation/foundry/lib/objectset"
	"github.com/bureau-foundation/foundry/lib/watch"
)

type watchParams struct {
	cli.SourceParams
	Debounce time.Duration `json:"debounce" flag:"debounce" desc:"quiet period before re-decoding" default:"100ms"`
	CBOR     bool          `json:"cbor"     flag:"cbor"     desc:"write each snapshot to stdout as a CBOR sequence"`
}

func watchCommand(out io.Writer) *cli.Command {
	var params watchParams

	return &cli.Command{
		Name:    "watch",
		Summary: "Re-decode an exchange file whenever it changes",
		Description: `Decode an exchange file, then decode it again every time it is
rewritten, logging entity counts and capacity. Decoding errors are
logged and watching continues, so a half-written file does not stop
the watch. Runs until interrupted.

With --cbor, each snapshot is also written to stdout as one item of a
CBOR sequence, for tools that follow an editor's output.`,
		Usage:  "foundry level watch <file.m3l> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("usage: foundry level watch <file.m3l>")
			}
			path := args[0]
			source, err := params.Load()
			if err != nil {
				return err
			}

			// Start watching before the first decode so a write between
			// the two is not missed.
			watcher, err := watch.Start(ctx, watch.Config{
				Path:     path,
				Debounce: params.Debounce,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			var encoder *codec.Encoder
			if params.CBOR {
				encoder = codec.NewEncoder(out)
			}
			logger = logger.With("path", watcher.Path())

			if err := reportExchange(path, source.Registry, encoder, logger); err != nil {
				return err
			}
			watchErrors := watcher.Errors()
			for {
				select {
				case <-ctx.Done():
					<-watcher.Done()
					return nil
				case _, ok := <-watcher.Changes():
					if !ok {
						return nil
					}
					if err := reportExchange(path, source.Registry, encoder, logger); err != nil {
						return err
					}
				case err, ok := <-watchErrors:
					if !ok {
						watchErrors = nil
						continue
					}
					logger.Warn("watch error", "error", err)
				}
			}
		},
	}
}

// reportExchange decodes the file and logs (and optionally encodes) its
// snapshot. Only write failures on the CBOR stream are returned.
func reportExchange(path string, registry *objectset.Registry, encoder *codec.Encoder, logger *slog.Logger) error {
	decoded, snapshot, err := readExchange(path, registry)
	if err != nil {
		logger.Warn("decoding exchange file", "error", err)
		return nil
	}
	logger.Info("level decoded",
		"level", decoded.Name(),
		"objects", len(snapshot.Objects),
		"jumps", len(snapshot.Jumps),
		"actors", len(snapshot.Actors),
		"structural_size", snapshot.StructuralSize,
		"actor_size", snapshot.ActorSize,
		"source", snapshot.Source,
	)
	if encoder == nil {
		return nil
	}
	return encoder.Encode(snapshot)
}
