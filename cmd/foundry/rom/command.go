// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"io"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
)

// Command returns the "rom" command group.
func Command(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "rom",
		Summary: "Inspect ROM images",
		Description: `Commands that operate on a whole ROM image rather than a single
level.`,
		Subcommands: []*cli.Command{
			infoCommand(out),
		},
	}
}
