// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// foundry is the command-line tool for Super Mario Bros. 3 level data.
//
// It decodes levels from an iNES ROM image, reports their headers and
// entity streams, converts them to and from .m3l exchange files, and
// writes them back in place, refusing edits that outgrow a level's
// on-disk budget unless forced.
//
// Usage:
//
//	foundry [-v] <command> [subcommand] [flags]
//
// Run "foundry --help" for the command list. Logs go to stderr: text
// on a terminal, JSON otherwise. Command output goes to stdout.
package main
