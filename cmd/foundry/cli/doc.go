// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for foundry.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct or
// [pflag.FlagSet] factory, and a Run function. Commands are assembled
// into a tree by cmd/foundry/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing and
// structured help output with examples.
//
// Parameter structs declare flags with struct tags (see [BindFlags]).
// Embedding [JSONOutput] adds --json.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
package cli
