// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/cmd/foundry/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (like "level import
		// --dry-run") return an ExitError with the desired exit code.
		// Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verbose, args := splitVerbose(os.Args[1:])
	logger := cli.NewCommandLogger(verbose)
	return commands.Root(os.Stdout).Execute(ctx, args, logger)
}

// splitVerbose strips a leading -v or --verbose, which applies to every
// command and so precedes the command name.
func splitVerbose(args []string) (bool, []string) {
	if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		return true, args[1:]
	}
	return false, args
}
